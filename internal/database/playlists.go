package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ekkles/internal/playlist"
	"ekkles/internal/scripture"
)

// CreatePlaylist stores a new empty playlist.
func (d *Database) CreatePlaylist(ctx context.Context, name string) (*playlist.Playlist, error) {
	p := playlist.New(name)
	if p.Name == "" {
		return nil, errors.New("playlist name cannot be empty")
	}
	if err := d.SavePlaylist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RenamePlaylist changes the name of a stored playlist.
func (d *Database) RenamePlaylist(ctx context.Context, id int64, name string) error {
	done := observeQuery("rename_playlist")

	name = strings.TrimSpace(name)
	if name == "" {
		err := errors.New("playlist name cannot be empty")
		done(err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "UPDATE playlists SET name = ? WHERE id = ?", name, id)
	if err != nil {
		done(err)
		return fmt.Errorf("failed to rename playlist %d: %w", id, err)
	}
	done(nil)
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("playlist %d: %w", id, playlist.ErrNotFound)
	}
	return nil
}

// DeletePlaylist removes a playlist and its parts.
func (d *Database) DeletePlaylist(ctx context.Context, id int64) error {
	done := observeQuery("delete_playlist")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		done(err)
		return fmt.Errorf("failed to delete playlist %d: %w", id, err)
	}
	done(nil)
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("playlist %d: %w", id, playlist.ErrNotFound)
	}
	return nil
}

// ListPlaylists returns all playlists, newest first.
func (d *Database) ListPlaylists(ctx context.Context) ([]playlist.Summary, error) {
	done := observeQuery("list_playlists")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.created, COUNT(pp.part_order)
		FROM playlists p LEFT JOIN playlist_parts pp ON pp.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.created DESC, p.id DESC
	`)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	summaries := []playlist.Summary{}
	for rows.Next() {
		var s playlist.Summary
		var created int64
		if err := rows.Scan(&s.ID, &s.Name, &created, &s.Parts); err != nil {
			done(err)
			return nil, err
		}
		s.Created = time.Unix(created, 0).UTC()
		summaries = append(summaries, s)
	}

	err = rows.Err()
	done(err)
	return summaries, err
}

// GetPlaylist loads a playlist with its parts in order.
func (d *Database) GetPlaylist(ctx context.Context, id int64) (*playlist.Playlist, error) {
	done := observeQuery("get_playlist")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p := &playlist.Playlist{ID: id, Status: playlist.StatusClean}
	var created int64
	err := d.db.QueryRowContext(ctx, "SELECT name, created FROM playlists WHERE id = ?", id).Scan(&p.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return nil, fmt.Errorf("playlist %d: %w", id, playlist.ErrNotFound)
	}
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to load playlist %d: %w", id, err)
	}
	p.Created = time.Unix(created, 0).UTC()

	rows, err := d.db.QueryContext(ctx, `
		SELECT pp.part_order, pp.kind,
			ps.song_id,
			pb.translation_id,
			sb.title, pb.start_chapter, pb.start_number,
			eb.title, pb.end_chapter, pb.end_number
		FROM playlist_parts pp
		LEFT JOIN playlist_songs ps ON ps.playlist_id = pp.playlist_id AND ps.part_order = pp.part_order
		LEFT JOIN playlist_passages pb ON pb.playlist_id = pp.playlist_id AND pb.part_order = pp.part_order
		LEFT JOIN books sb ON sb.id = pb.start_book_id
		LEFT JOIN books eb ON eb.id = pb.end_book_id
		WHERE pp.playlist_id = ?
		ORDER BY pp.part_order
	`, id)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to load parts of playlist %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			position      int
			kind          string
			songID        sql.NullInt64
			translationID sql.NullInt64
			startBook     sql.NullString
			startChapter  sql.NullInt64
			startNumber   sql.NullInt64
			endBook       sql.NullString
			endChapter    sql.NullInt64
			endNumber     sql.NullInt64
		)
		if err := rows.Scan(&position, &kind, &songID, &translationID,
			&startBook, &startChapter, &startNumber, &endBook, &endChapter, &endNumber); err != nil {
			done(err)
			return nil, err
		}

		switch {
		case kind == playlist.KindSong && songID.Valid:
			p.Parts = append(p.Parts, playlist.SongPart{SongID: songID.Int64})
		case kind == playlist.KindPassage && translationID.Valid:
			p.Parts = append(p.Parts, playlist.PassagePart{Passage: scripture.Passage{
				TranslationID: translationID.Int64,
				Start:         scripture.Reference{Book: startBook.String, Chapter: int(startChapter.Int64), Verse: int(startNumber.Int64)},
				End:           scripture.Reference{Book: endBook.String, Chapter: int(endChapter.Int64), Verse: int(endNumber.Int64)},
			}})
		default:
			err := fmt.Errorf("playlist %d part %d: %s part has no details", id, position, kind)
			done(err)
			return nil, err
		}
	}

	err = rows.Err()
	done(err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SavePlaylist stores p, inserting it when it has no id yet and replacing
// its name and parts otherwise. On success p is marked clean.
func (d *Database) SavePlaylist(ctx context.Context, p *playlist.Playlist) error {
	done := observeQuery("save_playlist")

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := p.ID
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if id == 0 {
			result, err := tx.ExecContext(ctx,
				"INSERT INTO playlists (name, created) VALUES (?, ?)", p.Name, p.Created.Unix())
			if err != nil {
				return fmt.Errorf("failed to insert playlist: %w", err)
			}
			if id, err = result.LastInsertId(); err != nil {
				return err
			}
		} else {
			result, err := tx.ExecContext(ctx, "UPDATE playlists SET name = ? WHERE id = ?", p.Name, id)
			if err != nil {
				return fmt.Errorf("failed to update playlist %d: %w", id, err)
			}
			if n, _ := result.RowsAffected(); n == 0 {
				return fmt.Errorf("playlist %d: %w", id, playlist.ErrNotFound)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_parts WHERE playlist_id = ?", id); err != nil {
				return fmt.Errorf("failed to clear parts of playlist %d: %w", id, err)
			}
		}

		for i, part := range p.Parts {
			if err := insertPart(ctx, tx, id, i, part); err != nil {
				return fmt.Errorf("part %d: %w", i, err)
			}
		}
		return nil
	})

	done(err)
	if err != nil {
		return err
	}
	p.MarkSaved(id)
	return nil
}

func insertPart(ctx context.Context, tx *sql.Tx, playlistID int64, position int, part playlist.Part) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO playlist_parts (playlist_id, part_order, kind) VALUES (?, ?, ?)",
		playlistID, position, part.Kind(),
	); err != nil {
		return err
	}

	switch p := part.(type) {
	case playlist.SongPart:
		_, err := tx.ExecContext(ctx,
			"INSERT INTO playlist_songs (playlist_id, part_order, song_id) VALUES (?, ?, ?)",
			playlistID, position, p.SongID,
		)
		return err
	case playlist.PassagePart:
		startBook, err := bookID(ctx, tx, p.Passage.Start.Book)
		if err != nil {
			return err
		}
		endBook, err := bookID(ctx, tx, p.Passage.End.Book)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO playlist_passages (playlist_id, part_order, translation_id,
				start_book_id, start_chapter, start_number, end_book_id, end_chapter, end_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, playlistID, position, p.Passage.TranslationID,
			startBook, p.Passage.Start.Chapter, p.Passage.Start.Verse,
			endBook, p.Passage.End.Chapter, p.Passage.End.Verse)
		return err
	default:
		return fmt.Errorf("unsupported part type %T", part)
	}
}

func bookID(ctx context.Context, tx *sql.Tx, title string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM books WHERE title = ?", title).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("book %q: %w", title, ErrNotFound)
	}
	return id, err
}
