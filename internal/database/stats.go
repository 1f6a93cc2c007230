package database

import (
	"context"

	"ekkles/internal/logging"
	"ekkles/internal/metrics"
)

// GetStats returns library counts for the metrics collector.
func (d *Database) GetStats() metrics.Stats {
	done := observeQuery("get_stats")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var stats metrics.Stats
	err := d.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM songs),
			(SELECT COUNT(*) FROM translations),
			(SELECT COUNT(*) FROM verses),
			(SELECT COUNT(*) FROM playlists)
	`).Scan(&stats.Songs, &stats.Translations, &stats.Verses, &stats.Playlists)
	done(err)
	if err != nil {
		logging.Warn("Failed to collect library stats: %v", err)
		return metrics.Stats{}
	}
	return stats
}
