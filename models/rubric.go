package models

import "time"

// RubricCriterion weights a single scoring dimension. Weight is in (0,1]
// and weights across a rubric sum to 1.0 (tolerance 0.01, checked at
// creation). MaxScore is the raw ceiling a judge may award.
type RubricCriterion struct {
	Weight   float64 `json:"weight"`
	MaxScore float64 `json:"max_score"`
}

// Rubric holds the named criteria for one hackathon. Exactly one rubric
// per hackathon is expected.
type Rubric struct {
	ID          string                     `json:"id"`
	HackathonID string                     `json:"hackathon_id"`
	Name        string                     `json:"name"`
	Criteria    map[string]RubricCriterion `json:"criteria"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// Score is one judge's evaluation of one submission. TotalScore is on a
// 0-100 scale, computed from the rubric weights.
type Score struct {
	ID             string             `json:"id"`
	SubmissionID   string             `json:"submission_id"`
	JudgeID        string             `json:"judge_id"`
	CriteriaScores map[string]float64 `json:"criteria_scores"`
	TotalScore     float64            `json:"total_score"`
	Feedback       string             `json:"feedback,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
