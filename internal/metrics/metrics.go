package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ekkles_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ekkles_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ekkles_db_transaction_duration_seconds",
			Help:    "Database transaction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"type"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DBSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ekkles_db_size_bytes",
			Help: "Size of SQLite database files in bytes",
		},
		[]string{"file"}, // "main", "wal", "shm"
	)
)

// Playlist resolution metrics
var (
	ResolveRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_resolve_runs_total",
			Help: "Total number of playlist resolutions by outcome",
		},
		[]string{"status"}, // "success", "degraded", "error"
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ekkles_resolve_duration_seconds",
			Help:    "Playlist resolution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ResolvePartFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_resolve_part_failures_total",
			Help: "Total number of playlist parts that failed to resolve",
		},
		[]string{"kind", "reason"},
	)

	ResolvedSlides = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_resolved_slides",
			Help: "Number of slides produced by the last successful resolution",
		},
	)
)

// Surface synchronization metrics
var (
	SurfaceCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_surface_commands_total",
			Help: "Total number of presentation commands applied",
		},
		[]string{"command"},
	)

	SurfaceDroppedWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ekkles_surface_dropped_writes_total",
			Help: "Total number of presentation commands dropped because the state was busy",
		},
	)

	SurfaceContendedReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ekkles_surface_contended_reads_total",
			Help: "Total number of snapshot reads that found the state locked and used the last published snapshot",
		},
		[]string{"consumer"},
	)

	SurfaceSnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_surface_snapshot_version",
			Help: "Version of the latest published presentation snapshot",
		},
	)

	PresenterFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ekkles_presenter_frames_total",
			Help: "Total number of frames rendered by the presenter surface",
		},
	)

	PresenterOutputStallsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ekkles_presenter_output_stalls_total",
			Help: "Total number of presenter frame writes that timed out or were dropped behind a stalled write",
		},
	)
)

// Library metrics
var (
	LibrarySongsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_library_songs_total",
			Help: "Total number of stored songs",
		},
	)

	LibraryTranslationsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_library_translations_total",
			Help: "Total number of stored bible translations",
		},
	)

	LibraryVersesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_library_verses_total",
			Help: "Total number of stored verses",
		},
	)

	LibraryPlaylistsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ekkles_library_playlists_total",
			Help: "Total number of stored playlists",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ekkles_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
