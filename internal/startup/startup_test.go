package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
	if info.OS == "" || info.Arch == "" {
		t.Errorf("Expected OS and Arch to be set, got %q/%q", info.OS, info.Arch)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EKKLES_TEST_SET", "custom")
	t.Setenv("EKKLES_TEST_EMPTY", "")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"Returns env value when set", "EKKLES_TEST_SET", "custom"},
		{"Returns default when empty", "EKKLES_TEST_EMPTY", "default"},
		{"Returns default when unset", "EKKLES_TEST_UNSET", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getEnv(tt.key, "default"); got != tt.want {
				t.Errorf("getEnv(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"empty uses default", "", true, true},
		{"invalid uses default", "maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EKKLES_TEST_BOOL", tt.value)
			if got := getEnvBool("EKKLES_TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "12", 12},
		{"negative", "-3", -3},
		{"empty uses default", "", 7},
		{"invalid uses default", "twelve", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EKKLES_TEST_INT", tt.value)
			if got := getEnvInt("EKKLES_TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"valid", "250ms", 250 * time.Millisecond},
		{"empty uses default", "", time.Second},
		{"invalid uses default", "soon", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EKKLES_TEST_DURATION", tt.value)
			if got := getEnvDuration("EKKLES_TEST_DURATION", time.Second); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("DATABASE_DIR", dir)
	t.Setenv("PLAYLIST_ID", "4")
	t.Setenv("PORT", "9999")
	t.Setenv("VERSES_PER_SLIDE", "2")
	t.Setenv("LINES_PER_SLIDE", "-1")
	t.Setenv("FRAME_INTERVAL", "0s")
	t.Setenv("SKIP_FAILED_PARTS", "true")
	t.Setenv("PRESENTER_OUTPUT", "")
	t.Setenv("LOG_FILE", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("database directory was not created: %v", err)
	}
	if config.DatabasePath != filepath.Join(dir, DatabaseFile) {
		t.Errorf("DatabasePath = %q", config.DatabasePath)
	}
	if config.LogFile != filepath.Join(dir, "ekkles.log") {
		t.Errorf("LogFile = %q", config.LogFile)
	}
	if config.PlaylistID != 4 || config.Port != "9999" {
		t.Errorf("PlaylistID %d Port %q", config.PlaylistID, config.Port)
	}
	if config.VersesPerSlide != 2 {
		t.Errorf("VersesPerSlide = %d, want 2", config.VersesPerSlide)
	}
	if config.LinesPerSlide != 0 {
		t.Errorf("negative LinesPerSlide should reset to 0, got %d", config.LinesPerSlide)
	}
	if config.FrameInterval != 50*time.Millisecond {
		t.Errorf("zero FrameInterval should reset to 50ms, got %v", config.FrameInterval)
	}
	if !config.SkipFailedParts {
		t.Error("SkipFailedParts = false")
	}
	if config.ResolveWorkers < 1 {
		t.Errorf("ResolveWorkers = %d", config.ResolveWorkers)
	}
}

func TestLoadConfigDatabaseDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("DATABASE_DIR", path)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when DATABASE_DIR is a file")
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET", "HEAD").Name("healthz")
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playlists/{id}", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET")

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}

	found := map[string]bool{}
	for _, r := range routes {
		found[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{"GET /healthz", "HEAD /healthz", "GET /api/playlists/{id}"} {
		if !found[want] {
			t.Errorf("route %q not found in %v", want, routes)
		}
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := map[string]string{
		"/healthz":                "healthz",
		"/api/playlists/{id}":     "api/playlists",
		"/api/songs":              "api/songs",
		"/":                       "",
		"/metrics":                "metrics",
		"/api/translations/{id}/": "api/translations",
	}
	for path, want := range tests {
		if got := getRouteGroup(path); got != want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLifecycleLogging(_ *testing.T) {
	// Should not panic
	LogDatabaseInit(time.Millisecond)
	LogPlaylistResolved("Sunday", 3, 12, 1, time.Millisecond)
	LogPresenterInit("", time.Second)
	LogPresenterInit("/dev/pts/3", 50*time.Millisecond)
	LogHTTPRoutes(mux.NewRouter(), true)
	LogServerStarted(ServerConfig{Port: "8080", MetricsEnabled: true})
	LogShutdownInitiated("SIGTERM")
	LogShutdownStep("Closing database")
	LogShutdownStepComplete("Database closed")
	LogShutdownComplete()
}
