package models

import "time"

type TeamRole string

const (
	TeamRoleLead   TeamRole = "lead"
	TeamRoleMember TeamRole = "member"
)

type Team struct {
	ID          string    `json:"id"`
	HackathonID string    `json:"hackathon_id"`
	TrackID     *string   `json:"track_id,omitempty"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`

	Members []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"team_id"`
	ParticipantID string    `json:"participant_id"`
	Role          TeamRole  `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}
