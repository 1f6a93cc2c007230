package metrics

import (
	"os"
	"sync"
	"time"

	"ekkles/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// DBMetricsUpdater refreshes connection pool gauges.
type DBMetricsUpdater interface {
	UpdateDBMetrics()
}

// Stats holds the current library statistics
type Stats struct {
	Songs        int `json:"songs"`
	Translations int `json:"translations"`
	Verses       int `json:"verses"`
	Playlists    int `json:"playlists"`
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	dbUpdater     DBMetricsUpdater
	dbPath        string
	interval      time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewCollector creates a new metrics collector. If provider also implements
// DBMetricsUpdater it is used to refresh the connection gauges.
func NewCollector(provider StatsProvider, dbPath string, interval time.Duration) *Collector {
	c := &Collector{
		statsProvider: provider,
		dbPath:        dbPath,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
	if updater, ok := provider.(DBMetricsUpdater); ok {
		c.dbUpdater = updater
	}
	return c
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection. It is safe to call more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	c.collectDBSize()

	if c.dbUpdater != nil {
		c.dbUpdater.UpdateDBMetrics()
	}

	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	LibrarySongsTotal.Set(float64(stats.Songs))
	LibraryTranslationsTotal.Set(float64(stats.Translations))
	LibraryVersesTotal.Set(float64(stats.Verses))
	LibraryPlaylistsTotal.Set(float64(stats.Playlists))

	logging.Debug("Metrics collected: songs=%d, translations=%d, verses=%d, playlists=%d",
		stats.Songs, stats.Translations, stats.Verses, stats.Playlists)
}

// collectDBSize records the size of the database file and its WAL and SHM
// companions. Missing files are reported as zero.
func (c *Collector) collectDBSize() {
	if c.dbPath == "" {
		return
	}

	for file, path := range map[string]string{
		"main": c.dbPath,
		"wal":  c.dbPath + "-wal",
		"shm":  c.dbPath + "-shm",
	} {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		DBSizeBytes.WithLabelValues(file).Set(float64(size))
	}
}
