package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrProjectNotFound = errors.New("project not found")

const tableProjects = "projects"

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]models.Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Project, error)
	Update(ctx context.Context, id string, patch store.Row) error
}

type storeProjectRepository struct {
	client store.Client
}

func NewStoreProjectRepository(client store.Client) ProjectRepository {
	return &storeProjectRepository{client: client}
}

func (r *storeProjectRepository) Create(ctx context.Context, p *models.Project) error {
	row := store.Row{
		"hackathon_id": p.HackathonID,
		"team_id":      p.TeamID,
		"name":         p.Name,
		"description":  p.Description,
		"status":       string(p.Status),
	}
	if p.RepoURL != nil {
		row["repo_url"] = *p.RepoURL
	}
	if p.DemoURL != nil {
		row["demo_url"] = *p.DemoURL
	}
	inserted, err := r.client.InsertRows(ctx, tableProjects, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created project")
	}
	return store.DecodeRow(inserted[0], p)
}

func (r *storeProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	row, err := queryOne(ctx, r.client, tableProjects, store.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if row == nil {
		return nil, ErrProjectNotFound
	}
	p := &models.Project{}
	if err := store.DecodeRow(row, p); err != nil {
		return nil, fmt.Errorf("failed to decode project row: %w", err)
	}
	return p, nil
}

func (r *storeProjectRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]models.Project, error) {
	return r.list(ctx, store.Filter{"hackathon_id": hackathonID})
}

func (r *storeProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Project, error) {
	return r.list(ctx, store.Filter{"team_id": teamID})
}

func (r *storeProjectRepository) list(ctx context.Context, filter store.Filter) ([]models.Project, error) {
	rows, err := r.client.QueryRows(ctx, tableProjects, store.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		var p models.Project
		if err := store.DecodeRow(row, &p); err != nil {
			return nil, fmt.Errorf("failed to decode project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *storeProjectRepository) Update(ctx context.Context, id string, patch store.Row) error {
	count, err := r.client.UpdateRows(ctx, tableProjects, store.Filter{"id": id}, patch)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkUpdatedRows(count, ErrProjectNotFound)
}
