package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/services"
)

type ParticipantHandler struct {
	enrollmentService services.EnrollmentService
}

func NewParticipantHandler(es services.EnrollmentService) *ParticipantHandler {
	return &ParticipantHandler{enrollmentService: es}
}

// EnrollHandler handles POST /hackathons/{hackathonID}/participants.
func (h *ParticipantHandler) EnrollHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	var input services.EnrollInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.enrollmentService.Enroll(r.Context(), hackathonID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"enrollment": assignment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /hackathons/{hackathonID}/participants.
func (h *ParticipantHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	assignments, err := h.enrollmentService.ListParticipants(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": assignments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
