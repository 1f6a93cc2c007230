package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ekkles/internal/song"
)

// GetSong returns the song with id and all of its parts.
func (d *Database) GetSong(ctx context.Context, id int64) (*song.Song, error) {
	done := observeQuery("get_song")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s := &song.Song{ID: id, Parts: make(map[string]string)}
	var order string
	err := d.db.QueryRowContext(ctx,
		"SELECT title, author, part_order FROM songs WHERE id = ?", id,
	).Scan(&s.Title, &s.Author, &order)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return nil, fmt.Errorf("song %d: %w", id, song.ErrNotFound)
	}
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to load song %d: %w", id, err)
	}
	s.Order = song.ParseOrder(order)

	rows, err := d.db.QueryContext(ctx, "SELECT tag, lyrics FROM song_parts WHERE song_id = ?", id)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to load parts of song %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag, lyrics string
		if err := rows.Scan(&tag, &lyrics); err != nil {
			done(err)
			return nil, err
		}
		s.Parts[tag] = lyrics
	}

	err = rows.Err()
	done(err)
	return s, err
}

// ListSongs returns all songs ordered by title. A non-empty filter keeps
// only titles containing it, ignoring case.
func (d *Database) ListSongs(ctx context.Context, filter string) ([]SongSummary, error) {
	done := observeQuery("list_songs")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.author, COUNT(p.tag)
		FROM songs s LEFT JOIN song_parts p ON p.song_id = s.id
		WHERE ? = '' OR instr(lower(s.title), lower(?)) > 0
		GROUP BY s.id
		ORDER BY s.title COLLATE NOCASE, s.id
	`, filter, filter)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	songs := []SongSummary{}
	for rows.Next() {
		var s SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Author, &s.Parts); err != nil {
			done(err)
			return nil, err
		}
		songs = append(songs, s)
	}

	err = rows.Err()
	done(err)
	return songs, err
}

// AddSong validates and stores s, returning its new id.
func (d *Database) AddSong(ctx context.Context, s *song.Song) (int64, error) {
	done := observeQuery("add_song")

	if err := s.Validate(); err != nil {
		done(err)
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO songs (title, author, part_order) VALUES (?, ?, ?)",
			strings.TrimSpace(s.Title), strings.TrimSpace(s.Author), song.FormatOrder(s.Order),
		)
		if err != nil {
			return fmt.Errorf("failed to insert song: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO song_parts (song_id, tag, lyrics) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare part insert: %w", err)
		}
		defer stmt.Close()

		for tag, lyrics := range s.Parts {
			if _, err := stmt.ExecContext(ctx, id, tag, lyrics); err != nil {
				return fmt.Errorf("failed to insert part %s: %w", tag, err)
			}
		}
		return nil
	})

	done(err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteSong removes a song. Songs referenced by a playlist cannot be
// deleted.
func (d *Database) DeleteSong(ctx context.Context, id int64) error {
	done := observeQuery("delete_song")

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var uses int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM playlist_songs WHERE song_id = ?", id,
		).Scan(&uses); err != nil {
			return err
		}
		if uses > 0 {
			return fmt.Errorf("song %d is used by %d playlist part(s): %w", id, uses, ErrInUse)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete song %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("song %d: %w", id, song.ErrNotFound)
		}
		return nil
	})

	done(err)
	return err
}
