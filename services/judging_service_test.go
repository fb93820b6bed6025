package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/forgehq/hackforge/models"
)

const (
	testHackathonID = "hackathon-1"
	testJudgeID     = "judge-1"
)

func newJudgingFixture(t *testing.T) (JudgingService, *fakeRubricRepo, *fakeScoreRepo, *fakeSubmissionRepo, *fakeRoleRepo, *fakeBroadcaster) {
	t.Helper()
	rubricRepo := newFakeRubricRepo()
	rubricRepo.rubrics[testHackathonID] = &models.Rubric{
		ID:          "rubric-1",
		HackathonID: testHackathonID,
		Criteria: map[string]models.RubricCriterion{
			"innovation": {Weight: 0.5, MaxScore: 10},
			"execution":  {Weight: 0.3, MaxScore: 10},
			"impact":     {Weight: 0.2, MaxScore: 5},
		},
	}

	submissionRepo := newFakeSubmissionRepo()
	submissionRepo.submissions["submission-1"] = &models.Submission{
		ID:          "submission-1",
		ProjectID:   "project-1",
		HackathonID: testHackathonID,
	}

	roleRepo := &fakeRoleRepo{assignments: []models.HackathonParticipant{
		{ID: "a1", HackathonID: testHackathonID, ParticipantID: testJudgeID, Role: models.RoleJudge},
		{ID: "a2", HackathonID: testHackathonID, ParticipantID: "builder-1", Role: models.RoleBuilder},
	}}

	scoreRepo := &fakeScoreRepo{}
	broadcaster := &fakeBroadcaster{}
	svc := NewJudgingService(rubricRepo, scoreRepo, submissionRepo, roleRepo, broadcaster, testLogger())
	return svc, rubricRepo, scoreRepo, submissionRepo, roleRepo, broadcaster
}

func TestScoreComputesWeightedTotal(t *testing.T) {
	svc, _, scoreRepo, _, _, broadcaster := newJudgingFixture(t)

	// (8/10)*0.5 + (7/10)*0.3 + (4/5)*0.2 = 0.77 -> 77.0
	score, err := svc.Score(context.Background(), testHackathonID, testJudgeID, ScoreInput{
		SubmissionID: "submission-1",
		CriteriaScores: map[string]float64{
			"innovation": 8,
			"execution":  7,
			"impact":     4,
		},
		Feedback: "solid demo",
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score.TotalScore-77.0) > 1e-9 {
		t.Errorf("TotalScore = %v, want 77.0", score.TotalScore)
	}
	if len(scoreRepo.scores) != 1 {
		t.Fatalf("persisted scores = %d, want 1", len(scoreRepo.scores))
	}
	if got := broadcaster.published(); len(got) != 1 || got[0] != EventScoreCreated {
		t.Errorf("published events = %v, want [%s]", got, EventScoreCreated)
	}
}

func TestScoreBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]float64
		want   float64
	}{
		{"all max", map[string]float64{"innovation": 10, "execution": 10, "impact": 5}, 100},
		{"all zero", map[string]float64{"innovation": 0, "execution": 0, "impact": 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _, _ := newJudgingFixture(t)
			score, err := svc.Score(context.Background(), testHackathonID, testJudgeID, ScoreInput{
				SubmissionID:   "submission-1",
				CriteriaScores: tt.scores,
			})
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(score.TotalScore-tt.want) > 1e-9 {
				t.Errorf("TotalScore = %v, want %v", score.TotalScore, tt.want)
			}
		})
	}
}

func TestScoreValidationFailures(t *testing.T) {
	valid := map[string]float64{"innovation": 8, "execution": 7, "impact": 4}

	tests := []struct {
		name          string
		judgeID       string
		input         ScoreInput
		wantCriterion string
	}{
		{"missing submission id", testJudgeID, ScoreInput{CriteriaScores: valid}, ""},
		{"missing judge id", "", ScoreInput{SubmissionID: "submission-1", CriteriaScores: valid}, ""},
		{"empty criteria scores", testJudgeID, ScoreInput{SubmissionID: "submission-1"}, ""},
		{"unknown submission", testJudgeID, ScoreInput{SubmissionID: "nope", CriteriaScores: valid}, ""},
		{
			"missing criterion",
			testJudgeID,
			ScoreInput{SubmissionID: "submission-1", CriteriaScores: map[string]float64{"innovation": 8, "execution": 7}},
			"impact",
		},
		{
			"score above max",
			testJudgeID,
			ScoreInput{SubmissionID: "submission-1", CriteriaScores: map[string]float64{"innovation": 11, "execution": 7, "impact": 4}},
			"innovation",
		},
		{
			"negative score",
			testJudgeID,
			ScoreInput{SubmissionID: "submission-1", CriteriaScores: map[string]float64{"innovation": -1, "execution": 7, "impact": 4}},
			"innovation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, scoreRepo, _, _, _ := newJudgingFixture(t)
			_, err := svc.Score(context.Background(), testHackathonID, tt.judgeID, tt.input)
			var judgingErr *JudgingError
			if !errors.As(err, &judgingErr) {
				t.Fatalf("error = %v, want *JudgingError", err)
			}
			if judgingErr.Phase != PhaseValidation {
				t.Errorf("Phase = %s, want %s", judgingErr.Phase, PhaseValidation)
			}
			if judgingErr.CanRetry {
				t.Error("validation failures must not be retryable")
			}
			if judgingErr.Criterion != tt.wantCriterion {
				t.Errorf("Criterion = %q, want %q", judgingErr.Criterion, tt.wantCriterion)
			}
			if len(scoreRepo.scores) != 0 {
				t.Error("no score row may be written on validation failure")
			}
		})
	}
}

func TestScoreRequiresJudgeRole(t *testing.T) {
	svc, _, _, _, _, _ := newJudgingFixture(t)
	input := ScoreInput{
		SubmissionID:   "submission-1",
		CriteriaScores: map[string]float64{"innovation": 8, "execution": 7, "impact": 4},
	}

	for _, actor := range []string{"builder-1", "stranger"} {
		_, err := svc.Score(context.Background(), testHackathonID, actor, input)
		if !errors.Is(err, ErrForbiddenOperation) {
			t.Errorf("actor %q: error = %v, want ErrForbiddenOperation", actor, err)
		}
	}
}

func TestScoreRejectsDuplicate(t *testing.T) {
	svc, _, _, _, _, _ := newJudgingFixture(t)
	input := ScoreInput{
		SubmissionID:   "submission-1",
		CriteriaScores: map[string]float64{"innovation": 8, "execution": 7, "impact": 4},
	}

	if _, err := svc.Score(context.Background(), testHackathonID, testJudgeID, input); err != nil {
		t.Fatalf("first Score() error = %v", err)
	}
	_, err := svc.Score(context.Background(), testHackathonID, testJudgeID, input)
	if !errors.Is(err, ErrAlreadyScored) {
		t.Fatalf("second Score() error = %v, want ErrAlreadyScored", err)
	}
}

func TestScoreRubricFetchFailureIsRetryable(t *testing.T) {
	svc, rubricRepo, _, _, _, _ := newJudgingFixture(t)
	rubricRepo.failFind = errors.New("store unavailable")

	_, err := svc.Score(context.Background(), testHackathonID, testJudgeID, ScoreInput{
		SubmissionID:   "submission-1",
		CriteriaScores: map[string]float64{"innovation": 8, "execution": 7, "impact": 4},
	})
	var judgingErr *JudgingError
	if !errors.As(err, &judgingErr) {
		t.Fatalf("error = %v, want *JudgingError", err)
	}
	if judgingErr.Phase != PhaseRubricFetch {
		t.Errorf("Phase = %s, want %s", judgingErr.Phase, PhaseRubricFetch)
	}
	if !judgingErr.CanRetry {
		t.Error("rubric fetch failures must be retryable")
	}
}

func TestScorePersistFailureIsRetryable(t *testing.T) {
	svc, _, scoreRepo, _, _, broadcaster := newJudgingFixture(t)
	scoreRepo.failCreate = errors.New("store unavailable")

	_, err := svc.Score(context.Background(), testHackathonID, testJudgeID, ScoreInput{
		SubmissionID:   "submission-1",
		CriteriaScores: map[string]float64{"innovation": 8, "execution": 7, "impact": 4},
	})
	var judgingErr *JudgingError
	if !errors.As(err, &judgingErr) {
		t.Fatalf("error = %v, want *JudgingError", err)
	}
	if judgingErr.Phase != PhaseScoreCreate {
		t.Errorf("Phase = %s, want %s", judgingErr.Phase, PhaseScoreCreate)
	}
	if !judgingErr.CanRetry {
		t.Error("score persistence failures must be retryable")
	}
	if len(broadcaster.published()) != 0 {
		t.Error("no event may be published when persistence fails")
	}
}

func TestComputeTotalZeroWeights(t *testing.T) {
	criteria := map[string]models.RubricCriterion{
		"a": {Weight: 0, MaxScore: 10},
	}
	total, err := computeTotal(criteria, map[string]float64{"a": 10})
	if err != nil {
		t.Fatalf("computeTotal() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0 when weights sum to zero", total)
	}
}

func TestQueue(t *testing.T) {
	svc, _, _, submissionRepo, _, _ := newJudgingFixture(t)
	submissionRepo.submissions["submission-2"] = &models.Submission{
		ID:          "submission-2",
		HackathonID: "other-hackathon",
	}

	queue, err := svc.Queue(context.Background(), testHackathonID)
	if err != nil {
		t.Fatalf("Queue() error = %v", err)
	}
	if len(queue) != 1 || queue[0].ID != "submission-1" {
		t.Errorf("Queue() = %v, want only submission-1", queue)
	}
}
