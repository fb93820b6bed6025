package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
)

type CreateTeamInput struct {
	Name    string  `json:"name"`
	TrackID *string `json:"track_id"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, hackathonID, actorID string, input CreateTeamInput) (*models.Team, error)
	JoinTeam(ctx context.Context, teamID, actorID string) (*models.TeamMember, error)
	LeaveTeam(ctx context.Context, teamID, actorID string) error
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	ListTeams(ctx context.Context, hackathonID string) ([]models.Team, error)
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	roleRepo  repositories.RoleRepository
	trackRepo repositories.TrackRepository
	logger    *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	roleRepo repositories.RoleRepository,
	trackRepo repositories.TrackRepository,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		roleRepo:  roleRepo,
		trackRepo: trackRepo,
		logger:    logger,
	}
}

// CreateTeam makes the acting participant the team lead. One team per
// participant per hackathon.
func (s *teamService) CreateTeam(ctx context.Context, hackathonID, actorID string, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.roleRepo.FindByHackathonAndParticipant(ctx, hackathonID, actorID); err != nil {
		if errors.Is(err, repositories.ErrRoleAssignmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	if input.TrackID != nil {
		track, err := s.trackRepo.FindByID(ctx, *input.TrackID)
		if err != nil {
			return nil, err
		}
		if track.HackathonID != hackathonID {
			return nil, errors.New("track does not belong to this hackathon")
		}
	}

	if _, err := s.teamRepo.FindMembership(ctx, hackathonID, actorID); err == nil {
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, repositories.ErrTeamMemberNotFound) {
		return nil, err
	}

	team := &models.Team{
		HackathonID: hackathonID,
		TrackID:     input.TrackID,
		Name:        input.Name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	lead := &models.TeamMember{
		TeamID:        team.ID,
		ParticipantID: actorID,
		Role:          models.TeamRoleLead,
	}
	if err := s.teamRepo.AddMember(ctx, lead); err != nil {
		// The team row exists without its lead; report it so the caller
		// can recover by joining or cleaning up.
		s.logger.Error("team created without lead member",
			slog.String("team_id", team.ID),
			slog.Any("error", err),
		)
		return nil, err
	}
	team.Members = []models.TeamMember{*lead}

	return team, nil
}

func (s *teamService) JoinTeam(ctx context.Context, teamID, actorID string) (*models.TeamMember, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if _, err := s.roleRepo.FindByHackathonAndParticipant(ctx, team.HackathonID, actorID); err != nil {
		if errors.Is(err, repositories.ErrRoleAssignmentNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	if _, err := s.teamRepo.FindMembership(ctx, team.HackathonID, actorID); err == nil {
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, repositories.ErrTeamMemberNotFound) {
		return nil, err
	}

	member := &models.TeamMember{
		TeamID:        teamID,
		ParticipantID: actorID,
		Role:          models.TeamRoleMember,
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *teamService) LeaveTeam(ctx context.Context, teamID, actorID string) error {
	member, err := s.teamRepo.FindMember(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if member.Role == models.TeamRoleLead {
		return ErrLeadCannotLeave
	}
	return s.teamRepo.RemoveMember(ctx, teamID, actorID)
}

func (s *teamService) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, hackathonID string) ([]models.Team, error) {
	return s.teamRepo.ListByHackathon(ctx, hackathonID)
}
