package handlers

import "net/http"

// PrizeHandler is a deliberate stub. The routes exist so the calling
// contract is stable; every operation reports not-implemented until the
// prize feature lands.
type PrizeHandler struct{}

func NewPrizeHandler() *PrizeHandler {
	return &PrizeHandler{}
}

func (h *PrizeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	notImplementedResponse(w, r)
}

func (h *PrizeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	notImplementedResponse(w, r)
}
