package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/middleware"
	"github.com/forgehq/hackforge/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(ps services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// CreateHandler handles POST /hackathons/{hackathonID}/projects.
func (h *ProjectHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.ParticipantIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateProjectInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"project": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PATCH /hackathons/{hackathonID}/projects/{projectID}.
func (h *ProjectHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	actorID, err := middleware.ParticipantIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.UpdateProjectInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), projectID, actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"project": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProjectHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	project, err := h.projectService.GetProject(r.Context(), projectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"project": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProjectHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	projects, err := h.projectService.ListProjects(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"projects": projects}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
