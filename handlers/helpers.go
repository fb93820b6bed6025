package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgehq/hackforge/repositories"
	"github.com/forgehq/hackforge/search"
	"github.com/forgehq/hackforge/services"
	"github.com/forgehq/hackforge/store"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // programmer error: non-pointer destination
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	// Raw error detail goes to the diagnostic log only; the client gets
	// a generic safe message.
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

func notImplementedResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotImplemented, services.ErrNotImplemented.Error())
}

// mapServiceErrorToHTTP translates service-layer errors into responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var judgingErr *services.JudgingError
	var transitionErr *services.InvalidTransitionError
	var setupErr *services.SetupError
	var storeErr *store.Error

	switch {
	// Judging failures come first so the phase and retry hint survive
	// even when the wrapped cause is a sentinel matched below. The
	// wrapped cause still picks the status.
	case errors.As(err, &judgingErr):
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, services.ErrAlreadyScored):
			status = http.StatusConflict
		case errors.Is(err, services.ErrForbiddenOperation):
			status = http.StatusForbidden
		case errors.Is(err, repositories.ErrSubmissionNotFound):
			status = http.StatusNotFound
		case judgingErr.CanRetry:
			status = http.StatusServiceUnavailable
		}
		body := jsonResponse{
			"message":   judgingErr.Error(),
			"phase":     judgingErr.Phase,
			"can_retry": judgingErr.CanRetry,
		}
		if judgingErr.Criterion != "" {
			body["criterion"] = judgingErr.Criterion
		}
		errorResponse(w, r, status, body)

	// Not found
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, repositories.ErrHackathonNotFound),
		errors.Is(err, repositories.ErrTrackNotFound),
		errors.Is(err, repositories.ErrParticipantNotFound),
		errors.Is(err, repositories.ErrRoleAssignmentNotFound),
		errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrTeamMemberNotFound),
		errors.Is(err, repositories.ErrProjectNotFound),
		errors.Is(err, repositories.ErrSubmissionNotFound),
		errors.Is(err, repositories.ErrRubricNotFound),
		errors.Is(err, repositories.ErrScoreNotFound):
		notFoundResponse(w, r)

	// Conflicts
	case errors.Is(err, services.ErrRoleConflict),
		errors.Is(err, services.ErrAlreadyInTeam),
		errors.Is(err, services.ErrAlreadyScored),
		errors.Is(err, services.ErrStaleHackathonStatus):
		conflictResponse(w, r, err.Error())

	// Validation and business rules
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrHackathonNameRequired),
		errors.Is(err, services.ErrHackathonDatesInvalid),
		errors.Is(err, services.ErrTracksRequired),
		errors.Is(err, services.ErrRubricCriteriaRequired),
		errors.Is(err, services.ErrRubricWeightOutOfRange),
		errors.Is(err, services.ErrRubricMaxScoreInvalid),
		errors.Is(err, services.ErrRubricWeightsUnbalanced),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrNarrativeRequired),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrProjectStatusBackward),
		errors.Is(err, search.ErrInvalidNamespace),
		errors.Is(err, search.ErrInvalidDocumentID):
		badRequestResponse(w, r, err)

	// Authorization
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrLeadCannotLeave),
		errors.Is(err, services.ErrNotTeamMember),
		errors.Is(err, services.ErrNotEnrolled):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrNotImplemented):
		notImplementedResponse(w, r)

	// Structured errors
	case errors.As(err, &transitionErr):
		errorResponse(w, r, http.StatusBadRequest, jsonResponse{
			"message": transitionErr.Error(),
			"from":    transitionErr.From,
			"to":      transitionErr.To,
			"allowed": transitionErr.Allowed,
		})

	case errors.As(err, &setupErr):
		// Partial creation: report what exists so the caller can retry
		// or clean up manually.
		errorResponse(w, r, http.StatusInternalServerError, jsonResponse{
			"message":        "hackathon setup failed after partial creation",
			"hackathon_id":   setupErr.HackathonID,
			"tracks_created": setupErr.TracksCreated,
		})

	case errors.As(err, &storeErr):
		if storeErr.Retryable {
			errorResponse(w, r, http.StatusServiceUnavailable, "the data store is temporarily unavailable, please retry")
			return
		}
		serverErrorResponse(w, r, err)

	default:
		serverErrorResponse(w, r, err)
	}
}
