package models

import "time"

// HackathonStatus mirrors the status enum stored in the hackathons table.
type HackathonStatus string

const (
	StatusDraft  HackathonStatus = "draft"
	StatusLive   HackathonStatus = "live"
	StatusClosed HackathonStatus = "closed"
)

func (s HackathonStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusLive, StatusClosed:
		return true
	}
	return false
}

type Hackathon struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      HackathonStatus `json:"status"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	LogoKey     *string         `json:"logo_key,omitempty"`
	LogoURL     *string         `json:"logo_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Optional related entities, populated on detail reads only.
	Tracks []Track `json:"tracks,omitempty"`
	Rubric *Rubric `json:"rubric,omitempty"`
}

type Track struct {
	ID          string    `json:"id"`
	HackathonID string    `json:"hackathon_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
