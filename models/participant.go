package models

import "time"

// HackathonRole is the per-hackathon role stored in hackathon_participants.
type HackathonRole string

const (
	RoleBuilder   HackathonRole = "builder"
	RoleOrganizer HackathonRole = "organizer"
	RoleJudge     HackathonRole = "judge"
	RoleMentor    HackathonRole = "mentor"
)

func (r HackathonRole) Valid() bool {
	switch r {
	case RoleBuilder, RoleOrganizer, RoleJudge, RoleMentor:
		return true
	}
	return false
}

type Participant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HackathonParticipant is a role assignment: one row per
// (hackathon, participant) pair, at most one role.
type HackathonParticipant struct {
	ID            string        `json:"id"`
	HackathonID   string        `json:"hackathon_id"`
	ParticipantID string        `json:"participant_id"`
	Role          HackathonRole `json:"role"`
	CreatedAt     time.Time     `json:"created_at"`

	Participant *Participant `json:"participant,omitempty"`
}
