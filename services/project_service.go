package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
	"github.com/forgehq/hackforge/search"
	"github.com/forgehq/hackforge/store"
)

// projectStatusOrder makes the idea -> building -> submitted flow
// forward-only.
var projectStatusOrder = map[models.ProjectStatus]int{
	models.ProjectIdea:      0,
	models.ProjectBuilding:  1,
	models.ProjectSubmitted: 2,
}

type CreateProjectInput struct {
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	RepoURL     *string `json:"repo_url"`
	DemoURL     *string `json:"demo_url"`
}

type UpdateProjectInput struct {
	Status  *models.ProjectStatus `json:"status"`
	RepoURL *string               `json:"repo_url"`
	DemoURL *string               `json:"demo_url"`
}

type ProjectService interface {
	CreateProject(ctx context.Context, actorID string, input CreateProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID, actorID string, input UpdateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, hackathonID string) ([]models.Project, error)
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	teamRepo    repositories.TeamRepository
	indexer     *search.Indexer
	logger      *slog.Logger
}

// NewProjectService takes a nil indexer when the semantic mirror is
// disabled.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	indexer *search.Indexer,
	logger *slog.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		indexer:     indexer,
		logger:      logger,
	}
}

func (s *projectService) CreateProject(ctx context.Context, actorID string, input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}
	team, err := s.teamRepo.FindByID(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.FindMember(ctx, input.TeamID, actorID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, err
	}

	project := &models.Project{
		HackathonID: team.HackathonID,
		TeamID:      input.TeamID,
		Name:        input.Name,
		Description: input.Description,
		Status:      models.ProjectIdea,
		RepoURL:     input.RepoURL,
		DemoURL:     input.DemoURL,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.IndexProject(ctx, project)
	}
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID, actorID string, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.FindMember(ctx, project.TeamID, actorID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, err
	}

	patch := store.Row{}
	if input.Status != nil {
		next := *input.Status
		if !next.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		if projectStatusOrder[next] < projectStatusOrder[project.Status] {
			return nil, ErrProjectStatusBackward
		}
		patch["status"] = string(next)
		project.Status = next
	}
	if input.RepoURL != nil {
		patch["repo_url"] = *input.RepoURL
		project.RepoURL = input.RepoURL
	}
	if input.DemoURL != nil {
		patch["demo_url"] = *input.DemoURL
		project.DemoURL = input.DemoURL
	}
	if len(patch) == 0 {
		return project, nil
	}

	if err := s.projectRepo.Update(ctx, projectID, patch); err != nil {
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.IndexProject(ctx, project)
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context, hackathonID string) ([]models.Project, error) {
	return s.projectRepo.ListByHackathon(ctx, hackathonID)
}
