package handlers

import (
	"net/http"

	"ekkles/internal/presentation"
	"ekkles/internal/surface"
)

// PresentationResponse is what each surface currently shows.
type PresentationResponse struct {
	Version    uint64              `json:"version"`
	Status     presentation.Status `json:"status"`
	Controller presentation.View   `json:"controller"`
	Presenter  presentation.View   `json:"presenter"`
}

// GetPresentation returns the live presentation state.
func (h *Handlers) GetPresentation(w http.ResponseWriter, _ *http.Request) {
	snap := h.presentationSnapshot()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, PresentationResponse{
		Version:    snap.Version,
		Status:     snap.State.Status(),
		Controller: snap.State.ControllerView(),
		Presenter:  snap.State.PresenterView(),
	})
}

// presentationSnapshot reads through the shared http reader; requests are
// served concurrently so the reader is guarded.
func (h *Handlers) presentationSnapshot() surface.Snapshot {
	if h.presentation == nil {
		return surface.Snapshot{}
	}
	h.presentationMu.Lock()
	defer h.presentationMu.Unlock()
	return h.presentation.Snapshot()
}
