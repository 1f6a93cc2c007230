package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ekkles/internal/database"
	"ekkles/internal/handlers"
	"ekkles/internal/logging"
	"ekkles/internal/playlist"
	"ekkles/internal/startup"
)

func TestPlaylistArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		configured int64
		want       int64
		wantErr    bool
	}{
		{name: "argument", args: []string{"7"}, want: 7},
		{name: "argument wins over config", args: []string{"7"}, configured: 3, want: 7},
		{name: "config fallback", configured: 3, want: 3},
		{name: "missing", wantErr: true},
		{name: "not a number", args: []string{"sunday"}, wantErr: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "negative", args: []string{"-2"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := playlistArg(tt.args, tt.configured)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("playlistArg(%v) = %d, want error", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("playlistArg(%v) error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("playlistArg(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestSetupRouter(t *testing.T) {
	t.Parallel()

	h := handlers.New(nil, nil, nil)

	tests := []struct {
		name           string
		metricsEnabled bool
		wantMetrics    bool
	}{
		{name: "metrics enabled", metricsEnabled: true, wantMetrics: true},
		{name: "metrics disabled", metricsEnabled: false, wantMetrics: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			routes, err := startup.GetRoutes(setupRouter(h, tt.metricsEnabled))
			if err != nil {
				t.Fatalf("GetRoutes error: %v", err)
			}

			registered := make(map[string]bool)
			for _, r := range routes {
				registered[r.Method+" "+r.Path] = true
			}

			for _, want := range []string{
				"GET /health",
				"GET /livez",
				"HEAD /livez",
				"GET /readyz",
				"GET /version",
				"GET /api/playlists",
				"GET /api/playlists/{id:[0-9]+}",
				"GET /api/playlists/{id:[0-9]+}/slides",
				"GET /api/songs",
				"GET /api/songs/{id:[0-9]+}",
				"GET /api/translations",
				"GET /api/presentation",
			} {
				if !registered[want] {
					t.Errorf("route %q not registered", want)
				}
			}

			if got := registered["GET /metrics"]; got != tt.wantMetrics {
				t.Errorf("metrics route registered = %v, want %v", got, tt.wantMetrics)
			}
		})
	}
}

func TestPrepareRefusesEmptyPlaylistOnTerminal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	var terminal bytes.Buffer
	logging.SetOutput(&terminal)
	level := logging.GetLevel()
	logging.SetLevel(logging.LevelInfo)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.SetLevel(level)
	})

	dir := t.TempDir()
	config := &startup.Config{
		DatabasePath:   filepath.Join(dir, "ekkles.db"),
		LogFile:        filepath.Join(dir, "logs", "ekkles.log"),
		VersesPerSlide: 1,
		ResolveWorkers: 1,
	}

	ctx := context.Background()
	db, err := database.New(ctx, config.DatabasePath)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	p, err := db.CreatePlaylist(ctx, "Empty")
	if err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}
	db.Close()

	sess, err := prepare(ctx, config, p.ID)
	if err == nil {
		sess.db.Close()
		t.Fatal("prepare() should refuse an empty playlist")
	}
	if !errors.Is(err, playlist.ErrEmpty) {
		t.Errorf("prepare() error = %v, want %v", err, playlist.ErrEmpty)
	}
	if !strings.Contains(err.Error(), `"Empty"`) {
		t.Errorf("prepare() error %q does not name the playlist", err)
	}

	if _, statErr := os.Stat(config.LogFile); !os.IsNotExist(statErr) {
		t.Errorf("log file created before the controller started: %v", statErr)
	}
	if !strings.Contains(terminal.String(), "[INFO]") {
		t.Errorf("startup logging did not reach the terminal: %q", terminal.String())
	}
}
