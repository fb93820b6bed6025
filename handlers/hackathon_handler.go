package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/middleware"
	"github.com/forgehq/hackforge/models"
	"github.com/forgehq/hackforge/repositories"
	"github.com/forgehq/hackforge/services"
	"github.com/forgehq/hackforge/storage"
)

type HackathonHandler struct {
	lifecycleService services.LifecycleService
	uploader         storage.FileUploader
}

// NewHackathonHandler takes a nil uploader when R2 is not configured.
func NewHackathonHandler(ls services.LifecycleService, uploader storage.FileUploader) *HackathonHandler {
	return &HackathonHandler{
		lifecycleService: ls,
		uploader:         uploader,
	}
}

type createHackathonRequest struct {
	Hackathon services.CreateHackathonInput `json:"hackathon"`
	Tracks    []services.CreateTrackInput   `json:"tracks"`
	Rubric    services.CreateRubricInput    `json:"rubric"`
}

// CreateHandler handles POST /hackathons: the composite create with
// tracks and rubric.
func (h *HackathonHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input createHackathonRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	setup, err := h.lifecycleService.CreateHackathonWithSetup(r.Context(), input.Hackathon, input.Tracks, input.Rubric)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"setup": setup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type transitionRequest struct {
	Current models.HackathonStatus `json:"current"`
	Next    models.HackathonStatus `json:"next"`
}

// TransitionHandler handles POST /hackathons/{hackathonID}/setup/transition.
func (h *HackathonHandler) TransitionHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	var input transitionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.lifecycleService.Transition(r.Context(), hackathonID, input.Current, input.Next)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hackathon": hackathon}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	hackathon, err := h.lifecycleService.GetHackathon(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.fillLogoURL(hackathon)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hackathon": hackathon}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathons, err := h.lifecycleService.ListHackathons(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	for i := range hackathons {
		h.fillLogoURL(&hackathons[i])
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hackathons": hackathons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublicListHandler handles GET /public-hackathons: live events only, no
// authentication.
func (h *HackathonHandler) PublicListHandler(w http.ResponseWriter, r *http.Request) {
	live := models.StatusLive
	hackathons, err := h.lifecycleService.ListHackathons(r.Context(), repositories.ListHackathonsFilter{Status: &live})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	for i := range hackathons {
		h.fillLogoURL(&hackathons[i])
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hackathons": hackathons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

const maxLogoSize = 5 << 20 // 5MB

// UploadLogoHandler handles POST /hackathons/{hackathonID}/setup/logo as
// a multipart upload.
func (h *HackathonHandler) UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		notImplementedResponse(w, r)
		return
	}
	hackathonID := chi.URLParam(r, "hackathonID")

	if _, err := middleware.ParticipantIDFromContext(r.Context()); err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("logo file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("hackathons/%s/logo", hackathonID)
	result, err := h.uploader.Upload(r.Context(), key, contentType, file)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := h.lifecycleService.SetLogo(r.Context(), hackathonID, result.Key); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"logo_url": result.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) fillLogoURL(hackathon *models.Hackathon) {
	// Clients see the public URL only; the storage key never leaves
	// the service.
	key := hackathon.LogoKey
	hackathon.LogoKey = nil
	if h.uploader == nil || key == nil || *key == "" {
		return
	}
	url := h.uploader.GetPublicURL(*key)
	hackathon.LogoURL = &url
}

func parseListFilter(r *http.Request) (repositories.ListHackathonsFilter, error) {
	var filter repositories.ListHackathonsFilter
	query := r.URL.Query()

	if statusStr := query.Get("status"); statusStr != "" {
		status := models.HackathonStatus(statusStr)
		if !status.Valid() {
			return filter, errors.New("invalid status query parameter")
		}
		filter.Status = &status
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return filter, errors.New("invalid limit query parameter")
		}
		filter.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filter, errors.New("invalid offset query parameter")
		}
		filter.Offset = offset
	}
	return filter, nil
}
