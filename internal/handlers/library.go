package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ekkles/internal/song"
)

// ListSongs returns the song library. The optional q parameter filters by
// title.
func (h *Handlers) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.db.ListSongs(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeJSONError(w, "Failed to get songs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, songs)
}

// GetSong returns one song with its lyrics.
func (h *Handlers) GetSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.db.GetSong(r.Context(), id)
	if errors.Is(err, song.ErrNotFound) {
		writeJSONError(w, "Song not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeJSONError(w, "Failed to get song", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, s)
}

// ListTranslations returns the bible translations with verse counts.
func (h *Handlers) ListTranslations(w http.ResponseWriter, r *http.Request) {
	translations, err := h.db.ListTranslations(r.Context())
	if err != nil {
		writeJSONError(w, "Failed to get translations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, translations)
}
