package services

import (
	"context"
	"errors"
	"testing"

	"github.com/forgehq/hackforge/models"
)

func newProjectFixture() (ProjectService, *fakeProjectRepo, *fakeTeamRepo) {
	projectRepo := newFakeProjectRepo()
	teamRepo := newFakeTeamRepo()
	teamRepo.teams["team-1"] = &models.Team{ID: "team-1", HackathonID: "h1", Name: "alpha"}
	teamRepo.members = append(teamRepo.members, models.TeamMember{
		ID: "m1", TeamID: "team-1", ParticipantID: "p1", Role: models.TeamRoleLead,
	})
	svc := NewProjectService(projectRepo, teamRepo, nil, testLogger())
	return svc, projectRepo, teamRepo
}

func TestCreateProjectStartsAsIdea(t *testing.T) {
	svc, _, _ := newProjectFixture()

	project, err := svc.CreateProject(context.Background(), "p1", CreateProjectInput{
		TeamID: "team-1",
		Name:   "demo",
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if project.Status != models.ProjectIdea {
		t.Errorf("status = %s, want idea", project.Status)
	}
	if project.HackathonID != "h1" {
		t.Errorf("hackathon id = %s, want inherited from team", project.HackathonID)
	}
}

func TestCreateProjectRequiresMembership(t *testing.T) {
	svc, _, _ := newProjectFixture()
	_, err := svc.CreateProject(context.Background(), "outsider", CreateProjectInput{TeamID: "team-1", Name: "demo"})
	if !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("error = %v, want ErrNotTeamMember", err)
	}
}

func TestUpdateProjectStatusForwardOnly(t *testing.T) {
	building := models.ProjectBuilding
	submitted := models.ProjectSubmitted
	idea := models.ProjectIdea
	bogus := models.ProjectStatus("archived")

	tests := []struct {
		name    string
		from    models.ProjectStatus
		to      *models.ProjectStatus
		wantErr error
	}{
		{"idea to building", models.ProjectIdea, &building, nil},
		{"building to submitted", models.ProjectBuilding, &submitted, nil},
		{"idea to submitted skips ahead", models.ProjectIdea, &submitted, nil},
		{"submitted back to building", models.ProjectSubmitted, &building, ErrProjectStatusBackward},
		{"building back to idea", models.ProjectBuilding, &idea, ErrProjectStatusBackward},
		{"unknown status", models.ProjectIdea, &bogus, ErrInvalidProjectStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projectRepo, _ := newProjectFixture()
			projectRepo.projects["project-1"] = &models.Project{
				ID: "project-1", HackathonID: "h1", TeamID: "team-1", Name: "demo", Status: tt.from,
			}

			project, err := svc.UpdateProject(context.Background(), "project-1", "p1", UpdateProjectInput{Status: tt.to})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && project.Status != *tt.to {
				t.Errorf("status = %s, want %s", project.Status, *tt.to)
			}
			if tt.wantErr != nil && projectRepo.projects["project-1"].Status != tt.from {
				t.Error("stored status must not change on a rejected update")
			}
		})
	}
}

func TestUpdateProjectURLs(t *testing.T) {
	svc, projectRepo, _ := newProjectFixture()
	projectRepo.projects["project-1"] = &models.Project{
		ID: "project-1", HackathonID: "h1", TeamID: "team-1", Name: "demo", Status: models.ProjectBuilding,
	}

	repoURL := "https://github.com/forgehq/demo"
	project, err := svc.UpdateProject(context.Background(), "project-1", "p1", UpdateProjectInput{RepoURL: &repoURL})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if project.RepoURL == nil || *project.RepoURL != repoURL {
		t.Errorf("repo url = %v, want %q", project.RepoURL, repoURL)
	}
	if project.Status != models.ProjectBuilding {
		t.Errorf("status = %s, want unchanged", project.Status)
	}
}

func TestUpdateProjectEmptyPatchIsNoOp(t *testing.T) {
	svc, projectRepo, _ := newProjectFixture()
	projectRepo.projects["project-1"] = &models.Project{
		ID: "project-1", HackathonID: "h1", TeamID: "team-1", Name: "demo", Status: models.ProjectIdea,
	}

	project, err := svc.UpdateProject(context.Background(), "project-1", "p1", UpdateProjectInput{})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if project.Status != models.ProjectIdea {
		t.Errorf("status = %s, want unchanged", project.Status)
	}
}
