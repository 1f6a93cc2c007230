package handlers

import (
	"errors"
	"net/http"

	"ekkles/internal/playlist"
)

// ListPlaylists returns all stored playlists
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.db.ListPlaylists(r.Context())
	if err != nil {
		writeJSONError(w, "Failed to get playlists", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, playlists)
}

// GetPlaylist returns a playlist with its parts
func (h *Handlers) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, ok := h.loadPlaylist(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, pl)
}

// GetPlaylistSlides resolves a playlist and returns its slide sequence. A
// part that fails to resolve is reported with 422 and its index.
func (h *Handlers) GetPlaylistSlides(w http.ResponseWriter, r *http.Request) {
	pl, ok := h.loadPlaylist(w, r)
	if !ok {
		return
	}

	result, err := h.resolver.Resolve(r.Context(), pl)
	if err != nil {
		var resErr *playlist.ResolutionError
		if errors.As(err, &resErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			writeJSON(w, map[string]interface{}{
				"error":     resErr.Error(),
				"partIndex": resErr.PartIndex,
				"kind":      resErr.Kind,
			})
			return
		}
		writeJSONError(w, "Failed to resolve playlist", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}

func (h *Handlers) loadPlaylist(w http.ResponseWriter, r *http.Request) (*playlist.Playlist, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	pl, err := h.db.GetPlaylist(r.Context(), id)
	if errors.Is(err, playlist.ErrNotFound) {
		writeJSONError(w, "Playlist not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		writeJSONError(w, "Failed to get playlist", http.StatusInternalServerError)
		return nil, false
	}
	return pl, true
}
