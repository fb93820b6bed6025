package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forgehq/hackforge/middleware"
	"github.com/forgehq/hackforge/services"
	"github.com/forgehq/hackforge/storage"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	uploader          storage.FileUploader
}

func NewSubmissionHandler(ss services.SubmissionService, uploader storage.FileUploader) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: ss,
		uploader:          uploader,
	}
}

// CreateHandler handles POST /hackathons/{hackathonID}/submissions.
func (h *SubmissionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ParticipantIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateSubmissionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	submission, err := h.submissionService.CreateSubmission(r.Context(), actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"submission": submission}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionID")

	submission, err := h.submissionService.GetSubmission(r.Context(), submissionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"submission": submission}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	submissions, err := h.submissionService.ListByHackathon(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"submissions": submissions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SearchHandler handles GET /hackathons/{hackathonID}/submissions/search?q=.
func (h *SubmissionHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	query := r.URL.Query().Get("q")
	if query == "" {
		badRequestResponse(w, r, errors.New("q query parameter is required"))
		return
	}
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		limit = parsed
	}

	hits, err := h.submissionService.SearchSubmissions(r.Context(), hackathonID, query, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hits": hits}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

const maxArtifactSize = 25 << 20 // 25MB

// UploadArtifactHandler handles POST /hackathons/{hackathonID}/submissions/artifacts.
// The returned URL goes into the artifact links of a later submission.
func (h *SubmissionHandler) UploadArtifactHandler(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		notImplementedResponse(w, r)
		return
	}
	hackathonID := chi.URLParam(r, "hackathonID")

	if _, err := middleware.ParticipantIDFromContext(r.Context()); err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxArtifactSize); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("artifact")
	if err != nil {
		badRequestResponse(w, r, errors.New("artifact file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("hackathons/%s/artifacts/%s", hackathonID, uuid.NewString())
	result, err := h.uploader.Upload(r.Context(), key, contentType, file)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"artifact_url": result.Location, "key": result.Key}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
