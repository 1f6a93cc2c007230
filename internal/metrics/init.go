package metrics

import "ekkles/internal/presentation"

// Label sets pre-populated by InitializeMetrics.
var (
	DBOperations = []string{
		"initialize_schema", "migrate_verse_order", "get_song", "list_songs", "add_song", "delete_song",
		"add_translation", "list_translations", "get_translation", "list_books", "add_verses",
		"lookup_verse", "verses_between", "create_playlist", "rename_playlist", "delete_playlist",
		"list_playlists", "get_playlist", "save_playlist", "get_stats",
		"begin_transaction", "commit", "rollback",
	}
	PartKinds      = []string{"song", "bible"}
	FailureReasons = []string{"missing_part", "unknown_song", "reference_not_found", "reversed_range", "store_error"}
	Consumers      = []string{"controller", "presenter", "http"}
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Database storage ---
	for _, file := range []string{"main", "wal", "shm"} {
		DBSizeBytes.WithLabelValues(file)
	}

	for _, op := range DBOperations {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, t := range []string{"commit", "rollback"} {
		DBTransactionDuration.WithLabelValues(t)
	}

	// --- Resolution ---
	for _, status := range []string{"success", "degraded", "error"} {
		ResolveRunsTotal.WithLabelValues(status)
	}
	for _, kind := range PartKinds {
		for _, reason := range FailureReasons {
			ResolvePartFailures.WithLabelValues(kind, reason)
		}
	}

	// --- Surfaces ---
	for _, cmd := range presentation.CommandNames() {
		SurfaceCommandsTotal.WithLabelValues(cmd)
	}
	for _, consumer := range Consumers {
		SurfaceContendedReads.WithLabelValues(consumer)
	}
}
