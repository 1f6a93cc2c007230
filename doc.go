// Package main provides the entry point for ekkles, a worship presentation
// engine that turns a stored playlist of songs and Bible passages into a
// sequence of slides and shows them on two terminal surfaces.
//
// # Application Lifecycle
//
//  1. Configuration Loading: reads environment variables and prepares the
//     data directory
//  2. Database Initialization: opens the SQLite library of songs, Bible
//     translations and playlists, running pending migrations
//  3. Playlist Resolution: loads the playlist named on the command line (or
//     PLAYLIST_ID) and expands every part into slides
//  4. Surfaces:
//     - Controller: interactive bubbletea UI on the current terminal
//     - Presenter: full-screen output written to PRESENTER_OUTPUT, usually
//     a second terminal device
//  5. HTTP Server: read-only API, health probes and Prometheus metrics
//  6. Shutdown: quitting the controller or SIGINT/SIGTERM stops every
//     component
//
// Both surfaces read the same published presentation snapshot. The
// controller is the only writer.
//
// # Controller Keys
//
//	up, k            previous slide
//	down, j, space   next slide
//	home, end        first and last slide
//	<digits> enter   jump to slide
//	b, f, n          blank, freeze, back to normal
//	r                reload the playlist from the database
//	q, ctrl+c        quit
//
// # HTTP Endpoints
//
//	GET /health, /healthz        health with library statistics
//	GET /livez, /readyz          liveness and readiness probes
//	GET /version                 build information
//	GET /metrics                 Prometheus metrics (METRICS_ENABLED)
//	GET /api/playlists           playlist summaries
//	GET /api/playlists/{id}      one playlist with its parts
//	GET /api/playlists/{id}/slides
//	GET /api/songs, /api/songs/{id}
//	GET /api/translations
//	GET /api/presentation        current controller and presenter view
//
// # Environment Variables
//
//	DATABASE_DIR        data directory (default ./data)
//	PLAYLIST_ID         playlist to present when no argument is given
//	PORT                HTTP port (default 8080)
//	METRICS_ENABLED     expose /metrics (default true)
//	LOG_HEALTH_CHECKS   log probe requests (default false)
//	LOG_LEVEL           debug, info, warn or error
//	LOG_FILE            log destination once the controller starts (default DATABASE_DIR/ekkles.log)
//	PRESENTER_OUTPUT    device or file for the presenter surface
//	FRAME_INTERVAL      presenter poll interval (default 50ms)
//	VERSES_PER_SLIDE    verses grouped on one Bible slide (default 1)
//	LINES_PER_SLIDE     split song parts after this many lines (0 keeps parts whole)
//	SKIP_FAILED_PARTS   present what resolves and report the rest
//
// The library is maintained with the ekklesctl command.
package main
