package handlers

import (
	"net/http"
	"strconv"
	"testing"
)

func TestListSongs(t *testing.T) {
	f := setupTestHandlers(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/songs", 1},
		{"/api/songs?q=grace", 1},
		{"/api/songs?q=psalm", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(f.h.ListSongs, tt.path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var songs []map[string]interface{}
			decode(t, w, &songs)
			if len(songs) != tt.want {
				t.Errorf("got %d songs, want %d", len(songs), tt.want)
			}
		})
	}
}

func TestGetSong(t *testing.T) {
	f := setupTestHandlers(t)

	id := strconv.FormatInt(f.songID, 10)
	w := serve(f.h.GetSong, "/api/songs/"+id, map[string]string{"id": id})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var s struct {
		Title string            `json:"title"`
		Order []string          `json:"order"`
		Parts map[string]string `json:"parts"`
	}
	decode(t, w, &s)
	if s.Title != "Amazing Grace" || len(s.Order) != 2 || s.Parts["C"] != "I once was lost" {
		t.Errorf("GetSong() = %+v", s)
	}

	w = serve(f.h.GetSong, "/api/songs/404", map[string]string{"id": "404"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown song status = %d, want 404", w.Code)
	}
}

func TestListTranslations(t *testing.T) {
	f := setupTestHandlers(t)

	w := serve(f.h.ListTranslations, "/api/translations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list []struct {
		Name   string `json:"name"`
		Verses int    `json:"verses"`
	}
	decode(t, w, &list)
	if len(list) != 1 || list[0].Name != "KJV" || list[0].Verses != 3 {
		t.Errorf("ListTranslations() = %+v", list)
	}
}
