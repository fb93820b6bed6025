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

type CreateSubmissionInput struct {
	ProjectID string                `json:"project_id"`
	Narrative string                `json:"narrative"`
	Artifacts []models.ArtifactLink `json:"artifacts"`
}

type SubmissionService interface {
	CreateSubmission(ctx context.Context, actorID string, input CreateSubmissionInput) (*models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.Submission, error)
	SearchSubmissions(ctx context.Context, hackathonID, query string, limit int) ([]search.Hit, error)
}

type submissionService struct {
	submissionRepo repositories.SubmissionRepository
	projectRepo    repositories.ProjectRepository
	teamRepo       repositories.TeamRepository
	indexer        *search.Indexer
	logger         *slog.Logger
}

func NewSubmissionService(
	submissionRepo repositories.SubmissionRepository,
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	indexer *search.Indexer,
	logger *slog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		projectRepo:    projectRepo,
		teamRepo:       teamRepo,
		indexer:        indexer,
		logger:         logger,
	}
}

// CreateSubmission writes an immutable submission stamped with its
// namespace, then marks the project submitted. The namespace is
// validated before anything is written.
func (s *submissionService) CreateSubmission(ctx context.Context, actorID string, input CreateSubmissionInput) (*models.Submission, error) {
	if input.Narrative == "" {
		return nil, ErrNarrativeRequired
	}
	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.FindMember(ctx, project.TeamID, actorID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, err
	}

	namespace, err := search.Namespace(project.HackathonID, search.TypeSubmissions)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		ProjectID:   project.ID,
		HackathonID: project.HackathonID,
		Narrative:   input.Narrative,
		Artifacts:   input.Artifacts,
		Namespace:   namespace,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	if project.Status != models.ProjectSubmitted {
		if err := s.projectRepo.Update(ctx, project.ID, store.Row{"status": string(models.ProjectSubmitted)}); err != nil {
			// The submission row exists; the status patch can be retried
			// by resubmitting or fixed by an organizer.
			s.logger.Error("failed to mark project submitted",
				slog.String("project_id", project.ID),
				slog.Any("error", err),
			)
		}
	}

	if s.indexer != nil {
		s.indexer.IndexSubmission(ctx, submission)
	}
	return submission, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	return s.submissionRepo.FindByID(ctx, id)
}

func (s *submissionService) ListByHackathon(ctx context.Context, hackathonID string) ([]models.Submission, error) {
	return s.submissionRepo.ListByHackathon(ctx, hackathonID)
}

func (s *submissionService) SearchSubmissions(ctx context.Context, hackathonID, query string, limit int) ([]search.Hit, error) {
	if s.indexer == nil {
		return nil, ErrNotImplemented
	}
	return s.indexer.Search(ctx, hackathonID, search.TypeSubmissions, query, limit)
}
