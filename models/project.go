package models

import "time"

// ProjectStatus follows the build flow: idea -> building -> submitted.
type ProjectStatus string

const (
	ProjectIdea      ProjectStatus = "idea"
	ProjectBuilding  ProjectStatus = "building"
	ProjectSubmitted ProjectStatus = "submitted"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectIdea, ProjectBuilding, ProjectSubmitted:
		return true
	}
	return false
}

type Project struct {
	ID          string        `json:"id"`
	HackathonID string        `json:"hackathon_id"`
	TeamID      string        `json:"team_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	RepoURL     *string       `json:"repo_url,omitempty"`
	DemoURL     *string       `json:"demo_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type ArtifactLink struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// Submission is immutable once created. Namespace is the semantic-search
// partition key, validated before any write.
type Submission struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id"`
	HackathonID string         `json:"hackathon_id"`
	Narrative   string         `json:"narrative"`
	Artifacts   []ArtifactLink `json:"artifacts,omitempty"`
	Namespace   string         `json:"namespace"`
	CreatedAt   time.Time      `json:"created_at"`
}
