package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrRubricNotFound = errors.New("rubric not found")

const tableRubrics = "rubrics"

type RubricRepository interface {
	Create(ctx context.Context, rub *models.Rubric) error
	FindByHackathon(ctx context.Context, hackathonID string) (*models.Rubric, error)
}

type storeRubricRepository struct {
	client store.Client
}

func NewStoreRubricRepository(client store.Client) RubricRepository {
	return &storeRubricRepository{client: client}
}

func (r *storeRubricRepository) Create(ctx context.Context, rub *models.Rubric) error {
	row := store.Row{
		"hackathon_id": rub.HackathonID,
		"name":         rub.Name,
		"criteria":     rub.Criteria,
	}
	inserted, err := r.client.InsertRows(ctx, tableRubrics, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create rubric: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created rubric")
	}
	return store.DecodeRow(inserted[0], rub)
}

func (r *storeRubricRepository) FindByHackathon(ctx context.Context, hackathonID string) (*models.Rubric, error) {
	row, err := queryOne(ctx, r.client, tableRubrics, store.Filter{"hackathon_id": hackathonID})
	if err != nil {
		return nil, fmt.Errorf("failed to find rubric: %w", err)
	}
	if row == nil {
		return nil, ErrRubricNotFound
	}
	rub := &models.Rubric{}
	if err := store.DecodeRow(row, rub); err != nil {
		return nil, fmt.Errorf("failed to decode rubric row: %w", err)
	}
	return rub, nil
}
