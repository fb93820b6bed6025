package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrHackathonNotFound = errors.New("hackathon not found")

const tableHackathons = "hackathons"

type ListHackathonsFilter struct {
	Status *models.HackathonStatus
	Limit  int
	Offset int
}

type HackathonRepository interface {
	Create(ctx context.Context, h *models.Hackathon) error
	FindByID(ctx context.Context, id string) (*models.Hackathon, error)
	List(ctx context.Context, filter ListHackathonsFilter) ([]models.Hackathon, error)
	UpdateStatus(ctx context.Context, id string, status models.HackathonStatus) error
	UpdateLogoKey(ctx context.Context, id, logoKey string) error
}

type storeHackathonRepository struct {
	client store.Client
}

func NewStoreHackathonRepository(client store.Client) HackathonRepository {
	return &storeHackathonRepository{client: client}
}

func (r *storeHackathonRepository) Create(ctx context.Context, h *models.Hackathon) error {
	row := store.Row{
		"name":        h.Name,
		"description": h.Description,
		"status":      string(h.Status),
		"start_date":  h.StartDate,
		"end_date":    h.EndDate,
	}
	inserted, err := r.client.InsertRows(ctx, tableHackathons, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create hackathon: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created hackathon")
	}
	return store.DecodeRow(inserted[0], h)
}

func (r *storeHackathonRepository) FindByID(ctx context.Context, id string) (*models.Hackathon, error) {
	row, err := queryOne(ctx, r.client, tableHackathons, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find hackathon: %w", err)
	}
	if row == nil {
		return nil, ErrHackathonNotFound
	}
	h := &models.Hackathon{}
	if err := store.DecodeRow(row, h); err != nil {
		return nil, fmt.Errorf("failed to decode hackathon row: %w", err)
	}
	return h, nil
}

func (r *storeHackathonRepository) List(ctx context.Context, filter ListHackathonsFilter) ([]models.Hackathon, error) {
	f := store.Filter{}
	if filter.Status != nil {
		f["status"] = string(*filter.Status)
	}
	rows, err := r.client.QueryRows(ctx, tableHackathons, store.QueryOptions{
		Filter: f,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hackathons: %w", err)
	}
	hackathons := make([]models.Hackathon, 0, len(rows))
	for _, row := range rows {
		var h models.Hackathon
		if err := store.DecodeRow(row, &h); err != nil {
			return nil, fmt.Errorf("failed to decode hackathon row: %w", err)
		}
		hackathons = append(hackathons, h)
	}
	return hackathons, nil
}

func (r *storeHackathonRepository) UpdateStatus(ctx context.Context, id string, status models.HackathonStatus) error {
	count, err := r.client.UpdateRows(ctx, tableHackathons,
		store.Filter{"id": id},
		store.Row{"status": string(status)},
	)
	if err != nil {
		return fmt.Errorf("failed to update hackathon status: %w", err)
	}
	return checkUpdatedRows(count, ErrHackathonNotFound)
}

func (r *storeHackathonRepository) UpdateLogoKey(ctx context.Context, id, logoKey string) error {
	count, err := r.client.UpdateRows(ctx, tableHackathons,
		store.Filter{"id": id},
		store.Row{"logo_key": logoKey},
	)
	if err != nil {
		return fmt.Errorf("failed to update hackathon logo: %w", err)
	}
	return checkUpdatedRows(count, ErrHackathonNotFound)
}
