package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context, hackathonID string) (*models.DashboardStats, error)
}

type dashboardService struct {
	hackathonRepo  repositories.HackathonRepository
	roleRepo       repositories.RoleRepository
	teamRepo       repositories.TeamRepository
	projectRepo    repositories.ProjectRepository
	submissionRepo repositories.SubmissionRepository
	scoreRepo      repositories.ScoreRepository
}

func NewDashboardService(
	hackathonRepo repositories.HackathonRepository,
	roleRepo repositories.RoleRepository,
	teamRepo repositories.TeamRepository,
	projectRepo repositories.ProjectRepository,
	submissionRepo repositories.SubmissionRepository,
	scoreRepo repositories.ScoreRepository,
) DashboardService {
	return &dashboardService{
		hackathonRepo:  hackathonRepo,
		roleRepo:       roleRepo,
		teamRepo:       teamRepo,
		projectRepo:    projectRepo,
		submissionRepo: submissionRepo,
		scoreRepo:      scoreRepo,
	}
}

// GetStats aggregates counts and the leaderboard for one hackathon. The
// independent reads fan out concurrently.
func (s *dashboardService) GetStats(ctx context.Context, hackathonID string) (*models.DashboardStats, error) {
	hackathon, err := s.hackathonRepo.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	var (
		assignments []models.HackathonParticipant
		teams       []models.Team
		projects    []models.Project
		submissions []models.Submission
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.roleRepo.ListByHackathon(gCtx, hackathonID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByHackathon(gCtx, hackathonID)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.projectRepo.ListByHackathon(gCtx, hackathonID)
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = s.submissionRepo.ListByHackathon(gCtx, hackathonID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projectsByID := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	var scoresTotal int
	leaderboard := make([]models.LeaderboardEntry, 0, len(submissions))
	for _, sub := range submissions {
		scores, err := s.scoreRepo.ListBySubmission(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		scoresTotal += len(scores)
		if len(scores) == 0 {
			continue
		}
		var sum float64
		for _, sc := range scores {
			sum += sc.TotalScore
		}
		entry := models.LeaderboardEntry{
			SubmissionID: sub.ID,
			ProjectID:    sub.ProjectID,
			AvgScore:     sum / float64(len(scores)),
			ScoreCount:   len(scores),
		}
		if p, ok := projectsByID[sub.ProjectID]; ok {
			entry.ProjectName = p.Name
			entry.TeamName = teamNames[p.TeamID]
		}
		leaderboard = append(leaderboard, entry)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		return leaderboard[i].AvgScore > leaderboard[j].AvgScore
	})

	return &models.DashboardStats{
		HackathonID:       hackathonID,
		Status:            hackathon.Status,
		ParticipantsTotal: len(assignments),
		TeamsTotal:        len(teams),
		ProjectsTotal:     len(projects),
		SubmissionsTotal:  len(submissions),
		ScoresTotal:       scoresTotal,
		Leaderboard:       leaderboard,
	}, nil
}
