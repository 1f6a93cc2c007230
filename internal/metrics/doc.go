// Package metrics provides Prometheus instrumentation for ekkles.
//
// All metrics are prefixed with "ekkles_" and registered with the default
// registry through promauto.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Database Metrics
//
//   - DBQueryTotal: Counter of queries by operation and status
//   - DBQueryDuration: Histogram of query duration by operation
//   - DBTransactionDuration: Histogram of transaction duration by outcome
//   - DBConnectionsOpen: Gauge of open database connections
//   - DBSizeBytes: Gauge of database file sizes (main, WAL, SHM)
//
// ## Resolution Metrics
//
//   - ResolveRunsTotal: Counter of playlist resolutions by outcome (success/degraded/error)
//   - ResolveDuration: Histogram of resolution time
//   - ResolvePartFailures: Counter of failed parts by kind and reason
//   - ResolvedSlides: Gauge of slides produced by the last resolution
//
// ## Surface Metrics
//
//   - SurfaceCommandsTotal: Counter of applied presentation commands by command
//   - SurfaceDroppedWrites: Counter of commands dropped because the state was busy
//   - SurfaceContendedReads: Counter of snapshot reads that found the state locked, by consumer
//   - SurfaceSnapshotVersion: Gauge of the latest published snapshot version
//   - PresenterFramesTotal: Counter of frames drawn by the presenter
//   - PresenterOutputStallsTotal: Counter of frame writes lost to a stalled output
//
// ## Library Metrics
//
//   - LibrarySongsTotal, LibraryTranslationsTotal, LibraryVersesTotal,
//     LibraryPlaylistsTotal: Gauges refreshed by the [Collector]
//
// # Collector
//
// [Collector] periodically reads [Stats] from a [StatsProvider] and
// updates the library gauges and database file sizes:
//
//	collector := metrics.NewCollector(db, dbPath, 1*time.Minute)
//	collector.Start()
//	defer collector.Stop()
//
// # Prometheus Queries
//
// Dropped navigation commands per minute:
//
//	rate(ekkles_surface_dropped_writes_total[1m]) * 60
//
// Share of presenter reads that found the state locked:
//
//	rate(ekkles_surface_contended_reads_total{consumer="presenter"}[5m]) /
//	rate(ekkles_presenter_frames_total[5m])
//
// Failed parts by reason:
//
//	sum(increase(ekkles_resolve_part_failures_total[1h])) by (reason)
package metrics
