package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrParticipantNotFound = errors.New("participant not found")

const tableParticipants = "participants"

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	FindByID(ctx context.Context, id string) (*models.Participant, error)
	FindByEmail(ctx context.Context, email string) (*models.Participant, error)
}

type storeParticipantRepository struct {
	client store.Client
}

func NewStoreParticipantRepository(client store.Client) ParticipantRepository {
	return &storeParticipantRepository{client: client}
}

func (r *storeParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	row := store.Row{
		"name":         p.Name,
		"email":        p.Email,
		"organization": p.Organization,
	}
	inserted, err := r.client.InsertRows(ctx, tableParticipants, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created participant")
	}
	return store.DecodeRow(inserted[0], p)
}

func (r *storeParticipantRepository) FindByID(ctx context.Context, id string) (*models.Participant, error) {
	return r.findOne(ctx, store.Filter{"id": id})
}

func (r *storeParticipantRepository) FindByEmail(ctx context.Context, email string) (*models.Participant, error) {
	return r.findOne(ctx, store.Filter{"email": email})
}

func (r *storeParticipantRepository) findOne(ctx context.Context, filter store.Filter) (*models.Participant, error) {
	row, err := queryOne(ctx, r.client, tableParticipants, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	if row == nil {
		return nil, ErrParticipantNotFound
	}
	p := &models.Participant{}
	if err := store.DecodeRow(row, p); err != nil {
		return nil, fmt.Errorf("failed to decode participant row: %w", err)
	}
	return p, nil
}
