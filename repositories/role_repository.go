package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrRoleAssignmentNotFound = errors.New("role assignment not found")

const tableHackathonParticipants = "hackathon_participants"

// RoleRepository is the RoleStore: a single-row lookup on
// (hackathon_id, participant_id). At most one role per pair.
type RoleRepository interface {
	Assign(ctx context.Context, hp *models.HackathonParticipant) error
	FindByHackathonAndParticipant(ctx context.Context, hackathonID, participantID string) (*models.HackathonParticipant, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.HackathonParticipant, error)
}

type storeRoleRepository struct {
	client store.Client
}

func NewStoreRoleRepository(client store.Client) RoleRepository {
	return &storeRoleRepository{client: client}
}

func (r *storeRoleRepository) Assign(ctx context.Context, hp *models.HackathonParticipant) error {
	row := store.Row{
		"hackathon_id":   hp.HackathonID,
		"participant_id": hp.ParticipantID,
		"role":           string(hp.Role),
	}
	inserted, err := r.client.InsertRows(ctx, tableHackathonParticipants, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for role assignment")
	}
	return store.DecodeRow(inserted[0], hp)
}

func (r *storeRoleRepository) FindByHackathonAndParticipant(ctx context.Context, hackathonID, participantID string) (*models.HackathonParticipant, error) {
	row, err := queryOne(ctx, r.client, tableHackathonParticipants, store.Filter{
		"hackathon_id":   hackathonID,
		"participant_id": participantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find role assignment: %w", err)
	}
	if row == nil {
		return nil, ErrRoleAssignmentNotFound
	}
	hp := &models.HackathonParticipant{}
	if err := store.DecodeRow(row, hp); err != nil {
		return nil, fmt.Errorf("failed to decode role assignment row: %w", err)
	}
	return hp, nil
}

func (r *storeRoleRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]models.HackathonParticipant, error) {
	rows, err := r.client.QueryRows(ctx, tableHackathonParticipants, store.QueryOptions{
		Filter: store.Filter{"hackathon_id": hackathonID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}
	assignments := make([]models.HackathonParticipant, 0, len(rows))
	for _, row := range rows {
		var hp models.HackathonParticipant
		if err := store.DecodeRow(row, &hp); err != nil {
			return nil, fmt.Errorf("failed to decode role assignment row: %w", err)
		}
		assignments = append(assignments, hp)
	}
	return assignments, nil
}
