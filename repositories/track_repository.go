package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrTrackNotFound = errors.New("track not found")

const tableTracks = "tracks"

type TrackRepository interface {
	Create(ctx context.Context, t *models.Track) error
	FindByID(ctx context.Context, id string) (*models.Track, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.Track, error)
}

type storeTrackRepository struct {
	client store.Client
}

func NewStoreTrackRepository(client store.Client) TrackRepository {
	return &storeTrackRepository{client: client}
}

func (r *storeTrackRepository) Create(ctx context.Context, t *models.Track) error {
	row := store.Row{
		"hackathon_id": t.HackathonID,
		"name":         t.Name,
		"description":  t.Description,
	}
	inserted, err := r.client.InsertRows(ctx, tableTracks, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created track")
	}
	return store.DecodeRow(inserted[0], t)
}

func (r *storeTrackRepository) FindByID(ctx context.Context, id string) (*models.Track, error) {
	row, err := queryOne(ctx, r.client, tableTracks, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	if row == nil {
		return nil, ErrTrackNotFound
	}
	t := &models.Track{}
	if err := store.DecodeRow(row, t); err != nil {
		return nil, fmt.Errorf("failed to decode track row: %w", err)
	}
	return t, nil
}

func (r *storeTrackRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]models.Track, error) {
	rows, err := r.client.QueryRows(ctx, tableTracks, store.QueryOptions{
		Filter: store.Filter{"hackathon_id": hackathonID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	tracks := make([]models.Track, 0, len(rows))
	for _, row := range rows {
		var t models.Track
		if err := store.DecodeRow(row, &t); err != nil {
			return nil, fmt.Errorf("failed to decode track row: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
