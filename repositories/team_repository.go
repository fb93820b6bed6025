package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
)

const (
	tableTeams       = "teams"
	tableTeamMembers = "team_members"
)

type TeamRepository interface {
	Create(ctx context.Context, t *models.Team) error
	FindByID(ctx context.Context, id string) (*models.Team, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.Team, error)
	AddMember(ctx context.Context, m *models.TeamMember) error
	RemoveMember(ctx context.Context, teamID, participantID string) error
	FindMember(ctx context.Context, teamID, participantID string) (*models.TeamMember, error)
	FindMembership(ctx context.Context, hackathonID, participantID string) (*models.TeamMember, error)
	ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)
}

type storeTeamRepository struct {
	client store.Client
}

func NewStoreTeamRepository(client store.Client) TeamRepository {
	return &storeTeamRepository{client: client}
}

func (r *storeTeamRepository) Create(ctx context.Context, t *models.Team) error {
	row := store.Row{
		"hackathon_id": t.HackathonID,
		"name":         t.Name,
	}
	if t.TrackID != nil {
		row["track_id"] = *t.TrackID
	}
	inserted, err := r.client.InsertRows(ctx, tableTeams, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created team")
	}
	return store.DecodeRow(inserted[0], t)
}

func (r *storeTeamRepository) FindByID(ctx context.Context, id string) (*models.Team, error) {
	row, err := queryOne(ctx, r.client, tableTeams, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if row == nil {
		return nil, ErrTeamNotFound
	}
	t := &models.Team{}
	if err := store.DecodeRow(row, t); err != nil {
		return nil, fmt.Errorf("failed to decode team row: %w", err)
	}
	return t, nil
}

func (r *storeTeamRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]models.Team, error) {
	rows, err := r.client.QueryRows(ctx, tableTeams, store.QueryOptions{
		Filter: store.Filter{"hackathon_id": hackathonID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		var t models.Team
		if err := store.DecodeRow(row, &t); err != nil {
			return nil, fmt.Errorf("failed to decode team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *storeTeamRepository) AddMember(ctx context.Context, m *models.TeamMember) error {
	row := store.Row{
		"team_id":        m.TeamID,
		"participant_id": m.ParticipantID,
		"role":           string(m.Role),
	}
	inserted, err := r.client.InsertRows(ctx, tableTeamMembers, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for added team member")
	}
	return store.DecodeRow(inserted[0], m)
}

func (r *storeTeamRepository) RemoveMember(ctx context.Context, teamID, participantID string) error {
	count, err := r.client.DeleteRows(ctx, tableTeamMembers, store.Filter{
		"team_id":        teamID,
		"participant_id": participantID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return checkUpdatedRows(count, ErrTeamMemberNotFound)
}

func (r *storeTeamRepository) FindMember(ctx context.Context, teamID, participantID string) (*models.TeamMember, error) {
	row, err := queryOne(ctx, r.client, tableTeamMembers, store.Filter{
		"team_id":        teamID,
		"participant_id": participantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	if row == nil {
		return nil, ErrTeamMemberNotFound
	}
	m := &models.TeamMember{}
	if err := store.DecodeRow(row, m); err != nil {
		return nil, fmt.Errorf("failed to decode team member row: %w", err)
	}
	return m, nil
}

// FindMembership locates a participant's team within one hackathon. The
// store filters team_members by team_id only, so membership is resolved
// against the hackathon's team list.
func (r *storeTeamRepository) FindMembership(ctx context.Context, hackathonID, participantID string) (*models.TeamMember, error) {
	teams, err := r.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		m, err := r.FindMember(ctx, t.ID, participantID)
		if err != nil {
			if errors.Is(err, ErrTeamMemberNotFound) {
				continue
			}
			return nil, err
		}
		return m, nil
	}
	return nil, ErrTeamMemberNotFound
}

func (r *storeTeamRepository) ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	rows, err := r.client.QueryRows(ctx, tableTeamMembers, store.QueryOptions{
		Filter: store.Filter{"team_id": teamID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	members := make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		var m models.TeamMember
		if err := store.DecodeRow(row, &m); err != nil {
			return nil, fmt.Errorf("failed to decode team member row: %w", err)
		}
		members = append(members, m)
	}
	return members, nil
}
