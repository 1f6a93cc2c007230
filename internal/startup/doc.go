// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - DATABASE_DIR: Directory holding ekkles.db (default: ./data)
//   - PLAYLIST_ID: Playlist to present when none is given on the command line
//   - PORT: Status/API HTTP server port (default: 8080)
//   - METRICS_ENABLED: Expose /metrics (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//   - PRESENTER_OUTPUT: Terminal device the audience surface renders to (default: disabled)
//   - FRAME_INTERVAL: Presenter render tick as Go duration (default: 50ms)
//   - VERSES_PER_SLIDE: Verses grouped on one scripture slide (default: 1)
//   - LINES_PER_SLIDE: Lines per song slide, 0 keeps each part whole (default: 0)
//   - SKIP_FAILED_PARTS: Skip unresolvable playlist parts instead of refusing (default: false)
//   - RESOLVE_WORKERS: Override the resolver worker count
//   - LOG_FILE: Log destination while the controller owns the terminal
//     (default: ekkles.log in DATABASE_DIR)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// Invalid values are logged and replaced by their defaults.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//
//	go build -ldflags "-X ekkles/internal/startup.Version=1.2.0 -X ekkles/internal/startup.Commit=$(git rev-parse --short HEAD)"
//
// # Lifecycle Logging
//
// Each phase logs a section header followed by indented detail lines and
// an [OK] marker on success: [LogDatabaseInit], [LogPlaylistResolved],
// [LogPresenterInit], [LogHTTPRoutes], [LogServerStarted] and the
// shutdown helpers.
package startup
