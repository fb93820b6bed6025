package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
)

type EnrollInput struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Organization string               `json:"organization"`
	Role         models.HackathonRole `json:"role"`
}

type EnrollmentService interface {
	Enroll(ctx context.Context, hackathonID string, input EnrollInput) (*models.HackathonParticipant, error)
	ListParticipants(ctx context.Context, hackathonID string) ([]models.HackathonParticipant, error)
	GetRole(ctx context.Context, hackathonID, participantID string) (models.HackathonRole, error)
}

type enrollmentService struct {
	participantRepo repositories.ParticipantRepository
	roleRepo        repositories.RoleRepository
	hackathonRepo   repositories.HackathonRepository
	logger          *slog.Logger
}

func NewEnrollmentService(
	participantRepo repositories.ParticipantRepository,
	roleRepo repositories.RoleRepository,
	hackathonRepo repositories.HackathonRepository,
	logger *slog.Logger,
) EnrollmentService {
	return &enrollmentService{
		participantRepo: participantRepo,
		roleRepo:        roleRepo,
		hackathonRepo:   hackathonRepo,
		logger:          logger,
	}
}

// Enroll looks up or creates the participant by email, then assigns the
// role. One role per (hackathon, participant): enrolling again with the
// same role is idempotent, with a different role it is a conflict.
func (s *enrollmentService) Enroll(ctx context.Context, hackathonID string, input EnrollInput) (*models.HackathonParticipant, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.hackathonRepo.FindByID(ctx, hackathonID); err != nil {
		return nil, err
	}

	participant, err := s.participantRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, err
		}
		if input.Name == "" {
			return nil, ErrNameRequired
		}
		participant = &models.Participant{
			Name:         input.Name,
			Email:        email,
			Organization: input.Organization,
		}
		if err := s.participantRepo.Create(ctx, participant); err != nil {
			return nil, err
		}
	}

	existing, err := s.roleRepo.FindByHackathonAndParticipant(ctx, hackathonID, participant.ID)
	if err == nil {
		if existing.Role == input.Role {
			existing.Participant = participant
			return existing, nil
		}
		return nil, ErrRoleConflict
	}
	if !errors.Is(err, repositories.ErrRoleAssignmentNotFound) {
		return nil, err
	}

	assignment := &models.HackathonParticipant{
		HackathonID:   hackathonID,
		ParticipantID: participant.ID,
		Role:          input.Role,
	}
	if err := s.roleRepo.Assign(ctx, assignment); err != nil {
		return nil, err
	}
	assignment.Participant = participant

	s.logger.Info("participant enrolled",
		slog.String("hackathon_id", hackathonID),
		slog.String("participant_id", participant.ID),
		slog.String("role", string(input.Role)),
	)

	return assignment, nil
}

func (s *enrollmentService) ListParticipants(ctx context.Context, hackathonID string) ([]models.HackathonParticipant, error) {
	assignments, err := s.roleRepo.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		participant, err := s.participantRepo.FindByID(ctx, assignments[i].ParticipantID)
		if err != nil {
			if errors.Is(err, repositories.ErrParticipantNotFound) {
				continue
			}
			return nil, err
		}
		assignments[i].Participant = participant
	}
	return assignments, nil
}

// GetRole is the RoleStore lookup behind the route guard's second phase.
func (s *enrollmentService) GetRole(ctx context.Context, hackathonID, participantID string) (models.HackathonRole, error) {
	assignment, err := s.roleRepo.FindByHackathonAndParticipant(ctx, hackathonID, participantID)
	if err != nil {
		return "", err
	}
	return assignment.Role, nil
}
