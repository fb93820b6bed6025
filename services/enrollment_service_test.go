package services

import (
	"context"
	"errors"
	"testing"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
)

func newEnrollmentFixture() (EnrollmentService, *fakeParticipantRepo, *fakeRoleRepo, *fakeHackathonRepo) {
	participantRepo := newFakeParticipantRepo()
	roleRepo := &fakeRoleRepo{}
	hackathonRepo := newFakeHackathonRepo()
	hackathonRepo.hackathons["h1"] = &models.Hackathon{ID: "h1", Status: models.StatusLive}
	svc := NewEnrollmentService(participantRepo, roleRepo, hackathonRepo, testLogger())
	return svc, participantRepo, roleRepo, hackathonRepo
}

func TestEnrollCreatesParticipant(t *testing.T) {
	svc, participantRepo, roleRepo, _ := newEnrollmentFixture()

	assignment, err := svc.Enroll(context.Background(), "h1", EnrollInput{
		Name:  "Dana",
		Email: "  Dana@Example.COM ",
		Role:  models.RoleBuilder,
	})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if assignment.Role != models.RoleBuilder {
		t.Errorf("role = %s, want builder", assignment.Role)
	}
	if assignment.Participant == nil || assignment.Participant.Email != "dana@example.com" {
		t.Errorf("participant = %+v, want normalized email", assignment.Participant)
	}
	if len(participantRepo.participants) != 1 {
		t.Errorf("participants created = %d, want 1", len(participantRepo.participants))
	}
	if len(roleRepo.assignments) != 1 {
		t.Errorf("assignments created = %d, want 1", len(roleRepo.assignments))
	}
}

func TestEnrollReusesExistingParticipant(t *testing.T) {
	svc, participantRepo, _, _ := newEnrollmentFixture()
	existing := &models.Participant{Name: "Dana", Email: "dana@example.com"}
	if err := participantRepo.Create(context.Background(), existing); err != nil {
		t.Fatal(err)
	}

	// Name is only required when the participant does not exist yet.
	assignment, err := svc.Enroll(context.Background(), "h1", EnrollInput{
		Email: "dana@example.com",
		Role:  models.RoleJudge,
	})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if assignment.ParticipantID != existing.ID {
		t.Errorf("participant id = %s, want %s", assignment.ParticipantID, existing.ID)
	}
	if len(participantRepo.participants) != 1 {
		t.Error("no new participant row may be created for a known email")
	}
}

func TestEnrollSameRoleIsIdempotent(t *testing.T) {
	svc, _, roleRepo, _ := newEnrollmentFixture()
	input := EnrollInput{Name: "Dana", Email: "dana@example.com", Role: models.RoleBuilder}

	first, err := svc.Enroll(context.Background(), "h1", input)
	if err != nil {
		t.Fatalf("first Enroll() error = %v", err)
	}
	second, err := svc.Enroll(context.Background(), "h1", input)
	if err != nil {
		t.Fatalf("second Enroll() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second enroll returned assignment %s, want existing %s", second.ID, first.ID)
	}
	if len(roleRepo.assignments) != 1 {
		t.Errorf("assignments = %d, want 1", len(roleRepo.assignments))
	}
}

func TestEnrollDifferentRoleConflicts(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	if _, err := svc.Enroll(context.Background(), "h1", EnrollInput{Name: "Dana", Email: "dana@example.com", Role: models.RoleBuilder}); err != nil {
		t.Fatalf("first Enroll() error = %v", err)
	}

	_, err := svc.Enroll(context.Background(), "h1", EnrollInput{Name: "Dana", Email: "dana@example.com", Role: models.RoleJudge})
	if !errors.Is(err, ErrRoleConflict) {
		t.Fatalf("error = %v, want ErrRoleConflict", err)
	}
}

func TestEnrollValidation(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	tests := []struct {
		name        string
		hackathonID string
		input       EnrollInput
		wantErr     error
	}{
		{"missing email", "h1", EnrollInput{Name: "Dana", Role: models.RoleBuilder}, ErrEmailRequired},
		{"blank email", "h1", EnrollInput{Name: "Dana", Email: "   ", Role: models.RoleBuilder}, ErrEmailRequired},
		{"bad role", "h1", EnrollInput{Name: "Dana", Email: "dana@example.com", Role: "sponsor"}, ErrInvalidRole},
		{"unknown hackathon", "nope", EnrollInput{Name: "Dana", Email: "dana@example.com", Role: models.RoleBuilder}, repositories.ErrHackathonNotFound},
		{"new participant without name", "h1", EnrollInput{Email: "new@example.com", Role: models.RoleBuilder}, ErrNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Enroll(context.Background(), tt.hackathonID, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetRole(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	assignment, err := svc.Enroll(context.Background(), "h1", EnrollInput{Name: "Dana", Email: "dana@example.com", Role: models.RoleOrganizer})
	if err != nil {
		t.Fatal(err)
	}

	role, err := svc.GetRole(context.Background(), "h1", assignment.ParticipantID)
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	if role != models.RoleOrganizer {
		t.Errorf("role = %s, want organizer", role)
	}

	if _, err := svc.GetRole(context.Background(), "h1", "stranger"); !errors.Is(err, repositories.ErrRoleAssignmentNotFound) {
		t.Errorf("error = %v, want ErrRoleAssignmentNotFound", err)
	}
}

func TestListParticipantsEnriches(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	for _, in := range []EnrollInput{
		{Name: "Dana", Email: "dana@example.com", Role: models.RoleBuilder},
		{Name: "Riley", Email: "riley@example.com", Role: models.RoleJudge},
	} {
		if _, err := svc.Enroll(context.Background(), "h1", in); err != nil {
			t.Fatal(err)
		}
	}

	participants, err := svc.ListParticipants(context.Background(), "h1")
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(participants))
	}
	for _, p := range participants {
		if p.Participant == nil {
			t.Errorf("assignment %s missing embedded participant", p.ID)
		}
	}
}
