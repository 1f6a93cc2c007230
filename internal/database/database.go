package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"ekkles/internal/logging"
	"ekkles/internal/metrics"
	"ekkles/internal/scripture"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database manages all database operations for ekkles.
type Database struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// New creates a new Database instance.
// dbPath is the full path to the database file; its parent directory must
// already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Info("Database path: %s", dbPath)

	if err := diagnoseDatabasePermissions(dbPath); err != nil {
		logging.Warn("Database permission diagnostics: %v", err)
	}

	// busy_timeout helps prevent "database is locked" errors
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_temp_store=MEMORY&_busy_timeout=5000&_foreign_keys=on", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Database initialized successfully at %s", dbPath)
	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("initialize_schema", start, err) }()

	schema := `
	CREATE TABLE IF NOT EXISTS songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		part_order TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS song_parts (
		song_id INTEGER NOT NULL,
		tag TEXT NOT NULL,
		lyrics TEXT NOT NULL,
		PRIMARY KEY (song_id, tag),
		FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS translations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		book_order INTEGER NOT NULL UNIQUE,
		title TEXT NOT NULL UNIQUE COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS verses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		translation_id INTEGER NOT NULL,
		book_id INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		number INTEGER NOT NULL,
		content TEXT NOT NULL,
		verse_order INTEGER,
		UNIQUE (translation_id, book_id, chapter, number),
		FOREIGN KEY (translation_id) REFERENCES translations(id) ON DELETE CASCADE,
		FOREIGN KEY (book_id) REFERENCES books(id)
	);

	CREATE TABLE IF NOT EXISTS playlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE TABLE IF NOT EXISTS playlist_parts (
		playlist_id INTEGER NOT NULL,
		part_order INTEGER NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('song', 'bible')),
		PRIMARY KEY (playlist_id, part_order),
		FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS playlist_songs (
		playlist_id INTEGER NOT NULL,
		part_order INTEGER NOT NULL,
		song_id INTEGER NOT NULL,
		PRIMARY KEY (playlist_id, part_order),
		FOREIGN KEY (playlist_id, part_order) REFERENCES playlist_parts(playlist_id, part_order) ON DELETE CASCADE,
		FOREIGN KEY (song_id) REFERENCES songs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_playlist_songs_song ON playlist_songs(song_id);

	CREATE TABLE IF NOT EXISTS playlist_passages (
		playlist_id INTEGER NOT NULL,
		part_order INTEGER NOT NULL,
		translation_id INTEGER NOT NULL,
		start_book_id INTEGER NOT NULL,
		start_chapter INTEGER NOT NULL,
		start_number INTEGER NOT NULL,
		end_book_id INTEGER NOT NULL,
		end_chapter INTEGER NOT NULL,
		end_number INTEGER NOT NULL,
		PRIMARY KEY (playlist_id, part_order),
		FOREIGN KEY (playlist_id, part_order) REFERENCES playlist_parts(playlist_id, part_order) ON DELETE CASCADE,
		FOREIGN KEY (translation_id) REFERENCES translations(id),
		FOREIGN KEY (start_book_id) REFERENCES books(id),
		FOREIGN KEY (end_book_id) REFERENCES books(id)
	);
	`

	if _, err = d.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	if err = d.seedBooks(ctx); err != nil {
		return err
	}

	err = d.runMigrations(ctx)
	return err
}

// seedBooks inserts the canonical books. Existing rows are left alone.
func (d *Database) seedBooks(ctx context.Context) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO books (id, book_order, title) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare book insert: %w", err)
		}
		defer stmt.Close()

		for i, title := range scripture.Books {
			if _, err := stmt.ExecContext(ctx, i+1, i+1, title); err != nil {
				return fmt.Errorf("failed to seed book %s: %w", title, err)
			}
		}
		return nil
	})
}

// runMigrations applies database schema migrations
func (d *Database) runMigrations(ctx context.Context) error {
	// Migration 1: verse_order for databases created before verses were
	// ordered translation-wide.
	var columnExists bool
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info('verses')
		WHERE name='verse_order'
	`).Scan(&columnExists)
	if err != nil {
		return fmt.Errorf("failed to check for verse_order column: %w", err)
	}

	var unordered int
	if columnExists {
		err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM verses WHERE verse_order IS NULL").Scan(&unordered)
		if err != nil {
			return fmt.Errorf("failed to count unordered verses: %w", err)
		}
	}

	if !columnExists || unordered > 0 {
		start := time.Now()
		logging.Info("Migrating database: assigning verse_order to verses")

		err = d.withTx(ctx, func(tx *sql.Tx) error {
			if !columnExists {
				if _, err := tx.ExecContext(ctx, "ALTER TABLE verses ADD COLUMN verse_order INTEGER"); err != nil {
					return fmt.Errorf("failed to add verse_order column: %w", err)
				}
			}
			return renumberVerses(ctx, tx, 0)
		})
		recordQuery("migrate_verse_order", start, err)
		if err != nil {
			return err
		}

		logging.Info("Migration complete: verse_order assigned")
	}

	_, err = d.db.ExecContext(ctx,
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_verses_order ON verses(translation_id, verse_order)")
	if err != nil {
		return fmt.Errorf("failed to create verse_order index: %w", err)
	}

	return nil
}

// renumberVerses reassigns verse_order densely from 1 in canonical order.
// A translationID of 0 renumbers every translation. Values go through a
// negative intermediate so the unique index never sees a collision.
func renumberVerses(ctx context.Context, tx *sql.Tx, translationID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE verses SET verse_order = -o.rn
		FROM (
			SELECT v.id, ROW_NUMBER() OVER (
				PARTITION BY v.translation_id
				ORDER BY b.book_order, v.chapter, v.number
			) AS rn
			FROM verses v JOIN books b ON b.id = v.book_id
			WHERE ? = 0 OR v.translation_id = ?
		) AS o
		WHERE o.id = verses.id
	`, translationID, translationID)
	if err != nil {
		return fmt.Errorf("failed to renumber verses: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE verses SET verse_order = -verse_order
		WHERE verse_order < 0 AND (? = 0 OR translation_id = ?)
	`, translationID, translationID)
	if err != nil {
		return fmt.Errorf("failed to finalize verse order: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// withTx runs fn in a write transaction, committing when it returns nil and
// rolling back otherwise.
func (d *Database) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	txStart := time.Now()
	tx, err := d.db.BeginTx(ctx, nil)
	recordQuery("begin_transaction", txStart, err)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		metrics.DBTransactionDuration.WithLabelValues("rollback").Observe(time.Since(txStart).Seconds())
		rbStart := time.Now()
		rbErr := tx.Rollback()
		recordQuery("rollback", rbStart, rbErr)
		if rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback also failed: %w", rbErr))
		}
		return err
	}

	commitStart := time.Now()
	err = tx.Commit()
	recordQuery("commit", commitStart, err)
	metrics.DBTransactionDuration.WithLabelValues("commit").Observe(time.Since(txStart).Seconds())
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// observeQuery starts timing operation and returns the function that
// records it.
func observeQuery(operation string) func(error) {
	start := time.Now()
	return func(err error) {
		recordQuery(operation, start, err)
	}
}

// UpdateDBMetrics updates database connection metrics
func (d *Database) UpdateDBMetrics() {
	stats := d.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}

// Ping checks that the database answers.
func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return d.db.PingContext(ctx)
}

// diagnoseDatabasePermissions checks database directory and file permissions
func diagnoseDatabasePermissions(dbPath string) error {
	dir := filepath.Dir(dbPath)

	dirInfo, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot stat database directory: %w", err)
	}

	logging.Debug("Database directory: %s (mode: %v)", dir, dirInfo.Mode())

	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		logging.Debug("Database file exists: %s (mode: %v, size: %d bytes)", path, info.Mode(), info.Size())
		if info.Mode().Perm()&0o200 == 0 {
			logging.Warn("Database file %s is read-only! Mode: %v - writes will fail", path, info.Mode())
		}
	}

	return nil
}
