package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/middleware"
	"github.com/forgehq/hackforge/services"
)

type JudgingHandler struct {
	judgingService services.JudgingService
}

func NewJudgingHandler(js services.JudgingService) *JudgingHandler {
	return &JudgingHandler{judgingService: js}
}

// QueueHandler handles GET /hackathons/{hackathonID}/judging/queue.
func (h *JudgingHandler) QueueHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	submissions, err := h.judgingService.Queue(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"submissions": submissions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScoreHandler handles POST /hackathons/{hackathonID}/judging/scores.
func (h *JudgingHandler) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	judgeID, err := middleware.ParticipantIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.judgingService.Score(r.Context(), hackathonID, judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
