package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgehq/hackforge/metrics"
	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
)

// JudgingPhase tags where a scoring attempt failed, so callers can tell
// "fix the input" from "retry the same request".
type JudgingPhase string

const (
	PhaseValidation  JudgingPhase = "validation"
	PhaseRubricFetch JudgingPhase = "rubric_fetch"
	PhaseScoreCreate JudgingPhase = "score_create"
)

// JudgingError is the single failure type of the judging flow.
// Validation failures are never retryable; rubric fetch and score
// persistence may fail transiently.
type JudgingError struct {
	Phase     JudgingPhase
	CanRetry  bool
	Criterion string
	Err       error
}

func (e *JudgingError) Error() string {
	if e.Criterion != "" {
		return fmt.Sprintf("judging failed in %s phase (criterion %q): %v", e.Phase, e.Criterion, e.Err)
	}
	return fmt.Sprintf("judging failed in %s phase: %v", e.Phase, e.Err)
}

func (e *JudgingError) Unwrap() error { return e.Err }

func validationError(err error) *JudgingError {
	return &JudgingError{Phase: PhaseValidation, CanRetry: false, Err: err}
}

func criterionError(criterion string, err error) *JudgingError {
	return &JudgingError{Phase: PhaseValidation, CanRetry: false, Criterion: criterion, Err: err}
}

type ScoreInput struct {
	SubmissionID   string             `json:"submission_id"`
	CriteriaScores map[string]float64 `json:"criteria_scores"`
	Feedback       string             `json:"feedback"`
}

type JudgingService interface {
	Score(ctx context.Context, hackathonID, judgeID string, input ScoreInput) (*models.Score, error)
	Queue(ctx context.Context, hackathonID string) ([]models.Submission, error)
}

type judgingService struct {
	rubricRepo     repositories.RubricRepository
	scoreRepo      repositories.ScoreRepository
	submissionRepo repositories.SubmissionRepository
	roleRepo       repositories.RoleRepository
	broadcaster    Broadcaster
	logger         *slog.Logger
}

func NewJudgingService(
	rubricRepo repositories.RubricRepository,
	scoreRepo repositories.ScoreRepository,
	submissionRepo repositories.SubmissionRepository,
	roleRepo repositories.RoleRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) JudgingService {
	return &judgingService{
		rubricRepo:     rubricRepo,
		scoreRepo:      scoreRepo,
		submissionRepo: submissionRepo,
		roleRepo:       roleRepo,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// Score validates a judge's per-criterion scores against the hackathon's
// rubric, computes the weighted total on a 0-100 scale, and persists the
// score row. No writes happen before validation passes.
func (s *judgingService) Score(ctx context.Context, hackathonID, judgeID string, input ScoreInput) (*models.Score, error) {
	if input.SubmissionID == "" {
		return nil, validationError(errors.New("submission id is required"))
	}
	if judgeID == "" {
		return nil, validationError(errors.New("judge id is required"))
	}
	if len(input.CriteriaScores) == 0 {
		return nil, validationError(errors.New("criteria scores are required"))
	}

	// The route layer gates /judging paths already, but the role check
	// belongs to the scoring operation itself.
	assignment, err := s.roleRepo.FindByHackathonAndParticipant(ctx, hackathonID, judgeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoleAssignmentNotFound) {
			return nil, validationError(ErrForbiddenOperation)
		}
		return nil, &JudgingError{Phase: PhaseValidation, CanRetry: true, Err: err}
	}
	if assignment.Role != models.RoleJudge {
		return nil, validationError(ErrForbiddenOperation)
	}

	submission, err := s.submissionRepo.FindByID(ctx, input.SubmissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, validationError(err)
		}
		return nil, &JudgingError{Phase: PhaseValidation, CanRetry: true, Err: err}
	}
	if submission.HackathonID != hackathonID {
		return nil, validationError(errors.New("submission does not belong to this hackathon"))
	}

	if existing, err := s.scoreRepo.FindBySubmissionAndJudge(ctx, input.SubmissionID, judgeID); err == nil && existing != nil {
		return nil, validationError(ErrAlreadyScored)
	} else if err != nil && !errors.Is(err, repositories.ErrScoreNotFound) {
		return nil, &JudgingError{Phase: PhaseValidation, CanRetry: true, Err: err}
	}

	// Rubric absence may be a transient read failure; the caller may
	// retry the identical request.
	rubric, err := s.rubricRepo.FindByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, &JudgingError{Phase: PhaseRubricFetch, CanRetry: true, Err: err}
	}
	if len(rubric.Criteria) == 0 {
		return nil, validationError(errors.New("rubric has no criteria"))
	}
	for name, criterion := range rubric.Criteria {
		if criterion.MaxScore <= 0 || criterion.Weight < 0 {
			return nil, criterionError(name, errors.New("malformed rubric criterion"))
		}
	}

	total, err := computeTotal(rubric.Criteria, input.CriteriaScores)
	if err != nil {
		return nil, err
	}

	score := &models.Score{
		SubmissionID:   input.SubmissionID,
		JudgeID:        judgeID,
		CriteriaScores: input.CriteriaScores,
		TotalScore:     total,
		Feedback:       input.Feedback,
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, &JudgingError{Phase: PhaseScoreCreate, CanRetry: true, Err: err}
	}

	metrics.ScoresSubmitted.Inc()
	s.broadcaster.Publish(hackathonID, EventScoreCreated, map[string]interface{}{
		"submission_id": score.SubmissionID,
		"total_score":   score.TotalScore,
	})
	s.logger.Info("score recorded",
		slog.String("hackathon_id", hackathonID),
		slog.String("submission_id", score.SubmissionID),
		slog.Float64("total", score.TotalScore),
	)

	return score, nil
}

// computeTotal normalizes each score by its criterion's max, weights it,
// and scales the weighted average to 0-100. A rubric whose weights sum
// to zero yields 0 rather than dividing by zero.
func computeTotal(criteria map[string]models.RubricCriterion, scores map[string]float64) (float64, error) {
	var weightedSum, weightTotal float64
	for name, criterion := range criteria {
		value, ok := scores[name]
		if !ok {
			return 0, criterionError(name, errors.New("missing score for rubric criterion"))
		}
		if value < 0 || value > criterion.MaxScore {
			return 0, criterionError(name, fmt.Errorf("score %v out of range [0, %v]", value, criterion.MaxScore))
		}
		weightedSum += (value / criterion.MaxScore) * criterion.Weight
		weightTotal += criterion.Weight
	}
	if weightTotal == 0 {
		return 0, nil
	}
	return (weightedSum / weightTotal) * 100, nil
}

// Queue lists the submissions a judge can pick from.
func (s *judgingService) Queue(ctx context.Context, hackathonID string) ([]models.Submission, error) {
	return s.submissionRepo.ListByHackathon(ctx, hackathonID)
}
