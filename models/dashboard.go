package models

// LeaderboardEntry aggregates scores per submission for dashboards.
type LeaderboardEntry struct {
	SubmissionID string  `json:"submission_id"`
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name"`
	TeamName     string  `json:"team_name,omitempty"`
	AvgScore     float64 `json:"avg_score"`
	ScoreCount   int     `json:"score_count"`
}

type DashboardStats struct {
	HackathonID       string             `json:"hackathon_id"`
	Status            HackathonStatus    `json:"status"`
	ParticipantsTotal int                `json:"participants_total"`
	TeamsTotal        int                `json:"teams_total"`
	ProjectsTotal     int                `json:"projects_total"`
	SubmissionsTotal  int                `json:"submissions_total"`
	ScoresTotal       int                `json:"scores_total"`
	Leaderboard       []LeaderboardEntry `json:"leaderboard"`
}
