package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrSubmissionNotFound = errors.New("submission not found")

const tableSubmissions = "submissions"

// SubmissionRepository is append-only: submissions are immutable once
// created, so there is no update or delete.
type SubmissionRepository interface {
	Create(ctx context.Context, s *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.Submission, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Submission, error)
}

type storeSubmissionRepository struct {
	client store.Client
}

func NewStoreSubmissionRepository(client store.Client) SubmissionRepository {
	return &storeSubmissionRepository{client: client}
}

func (r *storeSubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	row := store.Row{
		"project_id":   s.ProjectID,
		"hackathon_id": s.HackathonID,
		"narrative":    s.Narrative,
		"artifacts":    s.Artifacts,
		"namespace":    s.Namespace,
	}
	inserted, err := r.client.InsertRows(ctx, tableSubmissions, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created submission")
	}
	return store.DecodeRow(inserted[0], s)
}

func (r *storeSubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	row, err := queryOne(ctx, r.client, tableSubmissions, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	if row == nil {
		return nil, ErrSubmissionNotFound
	}
	s := &models.Submission{}
	if err := store.DecodeRow(row, s); err != nil {
		return nil, fmt.Errorf("failed to decode submission row: %w", err)
	}
	return s, nil
}

func (r *storeSubmissionRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]models.Submission, error) {
	return r.list(ctx, store.Filter{"hackathon_id": hackathonID})
}

func (r *storeSubmissionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Submission, error) {
	return r.list(ctx, store.Filter{"project_id": projectID})
}

func (r *storeSubmissionRepository) list(ctx context.Context, filter store.Filter) ([]models.Submission, error) {
	rows, err := r.client.QueryRows(ctx, tableSubmissions, store.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	submissions := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		var s models.Submission
		if err := store.DecodeRow(row, &s); err != nil {
			return nil, fmt.Errorf("failed to decode submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}
