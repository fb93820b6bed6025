package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrHackathonNameRequired   = errors.New("hackathon name is required")
	ErrHackathonDatesInvalid   = errors.New("hackathon end date must be after start date")
	ErrTracksRequired          = errors.New("at least one track is required")
	ErrRubricCriteriaRequired  = errors.New("rubric must have at least one criterion")
	ErrRubricWeightOutOfRange  = errors.New("rubric criterion weight must be in (0,1]")
	ErrRubricMaxScoreInvalid   = errors.New("rubric criterion max score must be positive")
	ErrRubricWeightsUnbalanced = errors.New("rubric criterion weights must sum to 1.0")
	ErrEmailRequired           = errors.New("participant email is required")
	ErrNameRequired            = errors.New("participant name is required")
	ErrInvalidRole             = errors.New("invalid hackathon role")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrProjectNameRequired     = errors.New("project name is required")
	ErrNarrativeRequired       = errors.New("submission narrative is required")
	ErrInvalidProjectStatus    = errors.New("invalid project status")
	ErrProjectStatusBackward   = errors.New("project status cannot move backwards")

	// Conflicts
	ErrRoleConflict         = errors.New("participant already holds a different role in this hackathon")
	ErrAlreadyInTeam        = errors.New("participant is already in a team for this hackathon")
	ErrAlreadyScored        = errors.New("judge has already scored this submission")
	ErrStaleHackathonStatus = errors.New("hackathon status changed since it was read")

	// Authorization
	ErrForbiddenOperation = errors.New("operation not allowed for the current participant")
	ErrLeadCannotLeave    = errors.New("the team lead cannot leave the team")
	ErrNotTeamMember      = errors.New("participant is not a member of this team")
	ErrNotEnrolled        = errors.New("participant is not enrolled in this hackathon")

	// Deliberate stubs keep their calling contract and fail with this
	// until the feature lands.
	ErrNotImplemented = errors.New("not yet implemented")
)
