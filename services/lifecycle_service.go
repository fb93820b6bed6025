package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/forgehq/hackforge/metrics"
	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/notify"
	"github.com/forgehq/hackforge/repositories"
)

// statusTransitions is the exhaustive transition table. Closed is
// terminal.
var statusTransitions = map[models.HackathonStatus][]models.HackathonStatus{
	models.StatusDraft:  {models.StatusLive},
	models.StatusLive:   {models.StatusClosed},
	models.StatusClosed: {},
}

// CanTransition reports whether current -> next is a legal move. Pure.
func CanTransition(current, next models.HackathonStatus) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidTransitions returns the statuses reachable from current, so a UI
// can disable illegal actions before submitting anything.
func ValidTransitions(current models.HackathonStatus) []models.HackathonStatus {
	allowed := statusTransitions[current]
	out := make([]models.HackathonStatus, len(allowed))
	copy(out, allowed)
	return out
}

// InvalidTransitionError reports a rejected status change along with
// what would have been allowed. A blocked transition is never a silent
// no-op.
type InvalidTransitionError struct {
	From    models.HackathonStatus
	To      models.HackathonStatus
	Allowed []models.HackathonStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid hackathon status transition %s -> %s (allowed: %v)", e.From, e.To, e.Allowed)
}

// SetupError reports a partial CreateHackathonWithSetup failure with the
// state created before the failure, so the caller can retry or clean up
// by hand. There is no automatic rollback.
type SetupError struct {
	HackathonID   string
	TracksCreated []string
	Err           error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("hackathon setup failed after partial creation (hackathon %s, %d tracks created): %v",
		e.HackathonID, len(e.TracksCreated), e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

type CreateHackathonInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type CreateTrackInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateRubricInput struct {
	Name     string                            `json:"name"`
	Criteria map[string]models.RubricCriterion `json:"criteria"`
}

type HackathonSetup struct {
	Hackathon *models.Hackathon `json:"hackathon"`
	Tracks    []models.Track    `json:"tracks"`
	Rubric    *models.Rubric    `json:"rubric"`
}

type LifecycleService interface {
	CreateHackathonWithSetup(ctx context.Context, input CreateHackathonInput, tracks []CreateTrackInput, rubric CreateRubricInput) (*HackathonSetup, error)
	Transition(ctx context.Context, hackathonID string, current, next models.HackathonStatus) (*models.Hackathon, error)
	GetHackathon(ctx context.Context, id string) (*models.Hackathon, error)
	ListHackathons(ctx context.Context, filter repositories.ListHackathonsFilter) ([]models.Hackathon, error)
	SetLogo(ctx context.Context, hackathonID, logoKey string) error
}

type lifecycleService struct {
	hackathonRepo repositories.HackathonRepository
	trackRepo     repositories.TrackRepository
	rubricRepo    repositories.RubricRepository
	broadcaster   Broadcaster
	notifier      notify.Notifier
	logger        *slog.Logger
}

func NewLifecycleService(
	hackathonRepo repositories.HackathonRepository,
	trackRepo repositories.TrackRepository,
	rubricRepo repositories.RubricRepository,
	broadcaster Broadcaster,
	notifier notify.Notifier,
	logger *slog.Logger,
) LifecycleService {
	return &lifecycleService{
		hackathonRepo: hackathonRepo,
		trackRepo:     trackRepo,
		rubricRepo:    rubricRepo,
		broadcaster:   broadcaster,
		notifier:      notifier,
		logger:        logger,
	}
}

const weightSumTolerance = 0.01

// validateRubricInput checks criteria presence, weight bounds, max
// scores and the weight-sum invariant before anything is written.
func validateRubricInput(rubric CreateRubricInput) error {
	if len(rubric.Criteria) == 0 {
		return ErrRubricCriteriaRequired
	}
	var weightSum float64
	for name, criterion := range rubric.Criteria {
		if criterion.Weight <= 0 || criterion.Weight > 1 {
			return fmt.Errorf("%w: criterion %q has weight %v", ErrRubricWeightOutOfRange, name, criterion.Weight)
		}
		if criterion.MaxScore <= 0 {
			return fmt.Errorf("%w: criterion %q has max score %v", ErrRubricMaxScoreInvalid, name, criterion.MaxScore)
		}
		weightSum += criterion.Weight
	}
	if math.Abs(weightSum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.3f", ErrRubricWeightsUnbalanced, weightSum)
	}
	return nil
}

// CreateHackathonWithSetup creates the hackathon in draft, then the
// tracks sequentially, then the rubric. All input validation happens
// before the first external write; a failure after the hackathon exists
// is reported with the partial state via SetupError.
func (s *lifecycleService) CreateHackathonWithSetup(ctx context.Context, input CreateHackathonInput, tracks []CreateTrackInput, rubric CreateRubricInput) (*HackathonSetup, error) {
	if input.Name == "" {
		return nil, ErrHackathonNameRequired
	}
	if !input.EndDate.IsZero() && !input.StartDate.IsZero() && !input.EndDate.After(input.StartDate) {
		return nil, ErrHackathonDatesInvalid
	}
	if len(tracks) == 0 {
		return nil, ErrTracksRequired
	}
	for _, t := range tracks {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: track name is required", ErrValidationFailed)
		}
	}
	if err := validateRubricInput(rubric); err != nil {
		return nil, err
	}

	hackathon := &models.Hackathon{
		Name:        input.Name,
		Description: input.Description,
		Status:      models.StatusDraft,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := s.hackathonRepo.Create(ctx, hackathon); err != nil {
		return nil, err
	}

	created := make([]models.Track, 0, len(tracks))
	createdIDs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		track := &models.Track{
			HackathonID: hackathon.ID,
			Name:        t.Name,
			Description: t.Description,
		}
		if err := s.trackRepo.Create(ctx, track); err != nil {
			s.notifier.Warn(ctx, "hackathon was created but some tracks were not, retry the setup")
			return nil, &SetupError{HackathonID: hackathon.ID, TracksCreated: createdIDs, Err: err}
		}
		created = append(created, *track)
		createdIDs = append(createdIDs, track.ID)
	}

	rubricName := rubric.Name
	if rubricName == "" {
		rubricName = hackathon.Name + " rubric"
	}
	rub := &models.Rubric{
		HackathonID: hackathon.ID,
		Name:        rubricName,
		Criteria:    rubric.Criteria,
	}
	if err := s.rubricRepo.Create(ctx, rub); err != nil {
		s.notifier.Warn(ctx, "hackathon and tracks were created but the rubric was not, retry the setup")
		return nil, &SetupError{HackathonID: hackathon.ID, TracksCreated: createdIDs, Err: err}
	}

	s.logger.Info("hackathon created",
		slog.String("hackathon_id", hackathon.ID),
		slog.Int("tracks", len(created)),
	)

	return &HackathonSetup{Hackathon: hackathon, Tracks: created, Rubric: rub}, nil
}

// Transition moves a hackathon to the next status. The caller supplies
// the status it believes is current; a mismatch with the stored row is a
// stale read, not an invalid transition.
func (s *lifecycleService) Transition(ctx context.Context, hackathonID string, current, next models.HackathonStatus) (*models.Hackathon, error) {
	if !next.Valid() || !current.Valid() {
		return nil, fmt.Errorf("%w: unknown hackathon status", ErrValidationFailed)
	}
	if !CanTransition(current, next) {
		return nil, &InvalidTransitionError{From: current, To: next, Allowed: ValidTransitions(current)}
	}

	hackathon, err := s.hackathonRepo.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if hackathon.Status != current {
		return nil, fmt.Errorf("%w: have %s, expected %s", ErrStaleHackathonStatus, hackathon.Status, current)
	}

	if err := s.hackathonRepo.UpdateStatus(ctx, hackathonID, next); err != nil {
		return nil, err
	}
	hackathon.Status = next

	metrics.LifecycleTransitions.WithLabelValues(string(next)).Inc()
	s.broadcaster.Publish(hackathonID, EventStatusChanged, map[string]string{
		"hackathon_id": hackathonID,
		"status":       string(next),
	})
	s.logger.Info("hackathon status changed",
		slog.String("hackathon_id", hackathonID),
		slog.String("from", string(current)),
		slog.String("to", string(next)),
	)

	return hackathon, nil
}

func (s *lifecycleService) GetHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	hackathon, err := s.hackathonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tracks, err := s.trackRepo.ListByHackathon(ctx, id)
	if err != nil {
		return nil, err
	}
	hackathon.Tracks = tracks
	if rubric, err := s.rubricRepo.FindByHackathon(ctx, id); err == nil {
		hackathon.Rubric = rubric
	} else if !errors.Is(err, repositories.ErrRubricNotFound) {
		return nil, err
	}
	return hackathon, nil
}

func (s *lifecycleService) ListHackathons(ctx context.Context, filter repositories.ListHackathonsFilter) ([]models.Hackathon, error) {
	return s.hackathonRepo.List(ctx, filter)
}

func (s *lifecycleService) SetLogo(ctx context.Context, hackathonID, logoKey string) error {
	return s.hackathonRepo.UpdateLogoKey(ctx, hackathonID, logoKey)
}
