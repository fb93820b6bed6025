package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/store"
)

var ErrScoreNotFound = errors.New("score not found")

const tableScores = "scores"

type ScoreRepository interface {
	Create(ctx context.Context, s *models.Score) error
	FindBySubmissionAndJudge(ctx context.Context, submissionID, judgeID string) (*models.Score, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]models.Score, error)
}

type storeScoreRepository struct {
	client store.Client
}

func NewStoreScoreRepository(client store.Client) ScoreRepository {
	return &storeScoreRepository{client: client}
}

func (r *storeScoreRepository) Create(ctx context.Context, s *models.Score) error {
	row := store.Row{
		"submission_id":   s.SubmissionID,
		"judge_id":        s.JudgeID,
		"criteria_scores": s.CriteriaScores,
		"total_score":     s.TotalScore,
		"feedback":        s.Feedback,
	}
	inserted, err := r.client.InsertRows(ctx, tableScores, []store.Row{row})
	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("store returned no row for created score")
	}
	return store.DecodeRow(inserted[0], s)
}

func (r *storeScoreRepository) FindBySubmissionAndJudge(ctx context.Context, submissionID, judgeID string) (*models.Score, error) {
	row, err := queryOne(ctx, r.client, tableScores, store.Filter{
		"submission_id": submissionID,
		"judge_id":      judgeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find score: %w", err)
	}
	if row == nil {
		return nil, ErrScoreNotFound
	}
	s := &models.Score{}
	if err := store.DecodeRow(row, s); err != nil {
		return nil, fmt.Errorf("failed to decode score row: %w", err)
	}
	return s, nil
}

func (r *storeScoreRepository) ListBySubmission(ctx context.Context, submissionID string) ([]models.Score, error) {
	rows, err := r.client.QueryRows(ctx, tableScores, store.QueryOptions{
		Filter: store.Filter{"submission_id": submissionID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	scores := make([]models.Score, 0, len(rows))
	for _, row := range rows {
		var s models.Score
		if err := store.DecodeRow(row, &s); err != nil {
			return nil, fmt.Errorf("failed to decode score row: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}
