package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ekkles/internal/scripture"
)

// AddTranslation creates an empty translation and returns its id.
func (d *Database) AddTranslation(ctx context.Context, name string) (int64, error) {
	done := observeQuery("add_translation")

	name = strings.TrimSpace(name)
	if name == "" {
		err := errors.New("translation name cannot be empty")
		done(err)
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "INSERT INTO translations (name) VALUES (?)", name)
	if err != nil {
		done(err)
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("translation %q: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to create translation: %w", err)
	}

	id, err := result.LastInsertId()
	done(err)
	return id, err
}

// ListTranslations returns all translations with their verse counts.
func (d *Database) ListTranslations(ctx context.Context) ([]Translation, error) {
	done := observeQuery("list_translations")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT t.id, t.name, COUNT(v.id)
		FROM translations t LEFT JOIN verses v ON v.translation_id = t.id
		GROUP BY t.id
		ORDER BY t.name COLLATE NOCASE
	`)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	defer rows.Close()

	translations := []Translation{}
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.Name, &t.Verses); err != nil {
			done(err)
			return nil, err
		}
		translations = append(translations, t)
	}

	err = rows.Err()
	done(err)
	return translations, err
}

// GetTranslationByName looks a translation up by name, ignoring case.
func (d *Database) GetTranslationByName(ctx context.Context, name string) (*Translation, error) {
	done := observeQuery("get_translation")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t Translation
	err := d.db.QueryRowContext(ctx, `
		SELECT t.id, t.name, (SELECT COUNT(*) FROM verses v WHERE v.translation_id = t.id)
		FROM translations t WHERE t.name = ?
	`, strings.TrimSpace(name)).Scan(&t.ID, &t.Name, &t.Verses)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return nil, fmt.Errorf("translation %q: %w", name, ErrNotFound)
	}
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to load translation %q: %w", name, err)
	}
	return &t, nil
}

// TranslationName returns the name of the translation with id. It lets
// the scripture resolver label slides.
func (d *Database) TranslationName(ctx context.Context, id int64) (string, error) {
	done := observeQuery("get_translation")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var name string
	err := d.db.QueryRowContext(ctx, "SELECT name FROM translations WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return "", fmt.Errorf("translation %d: %w", id, ErrNotFound)
	}
	done(err)
	return name, err
}

// ListBooks returns the canonical books in order.
func (d *Database) ListBooks(ctx context.Context) ([]Book, error) {
	done := observeQuery("list_books")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT id, book_order, title FROM books ORDER BY book_order")
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Order, &b.Title); err != nil {
			done(err)
			return nil, err
		}
		books = append(books, b)
	}

	err = rows.Err()
	done(err)
	return books, err
}

// FindBook resolves a possibly abbreviated book name ("gen", "1 cor") to a
// canonical book.
func (d *Database) FindBook(ctx context.Context, name string) (Book, error) {
	books, err := d.ListBooks(ctx)
	if err != nil {
		return Book{}, err
	}

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}

	title, ok := scripture.MatchBook(name, titles)
	if !ok {
		return Book{}, fmt.Errorf("book %q: %w", name, ErrNotFound)
	}
	for _, b := range books {
		if b.Title == title {
			return b, nil
		}
	}
	return Book{}, fmt.Errorf("book %q: %w", name, ErrNotFound)
}

// CanonicalCitation rewrites the book names of c to their canonical titles.
func (d *Database) CanonicalCitation(ctx context.Context, c scripture.Citation) (scripture.Citation, error) {
	start, err := d.FindBook(ctx, c.Start.Book)
	if err != nil {
		return c, err
	}
	end, err := d.FindBook(ctx, c.End.Book)
	if err != nil {
		return c, err
	}
	c.Start.Book = start.Title
	c.End.Book = end.Title
	return c, nil
}

// AddVerses stores verses for a translation and renumbers the translation's
// verse order. Verse books must be canonical titles. Existing verses with
// the same reference are replaced. It returns the number of verses stored.
func (d *Database) AddVerses(ctx context.Context, translationID int64, verses []scripture.Verse) (int, error) {
	done := observeQuery("add_verses")

	books, err := d.ListBooks(ctx)
	if err != nil {
		done(err)
		return 0, err
	}
	bookIDs := make(map[string]int64, len(books))
	for _, b := range books {
		bookIDs[strings.ToLower(b.Title)] = b.ID
	}

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) > 0 FROM translations WHERE id = ?", translationID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("translation %d: %w", translationID, ErrNotFound)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO verses (translation_id, book_id, chapter, number, content, verse_order)
			VALUES (?, ?, ?, ?, ?, NULL)
			ON CONFLICT (translation_id, book_id, chapter, number) DO UPDATE SET content = excluded.content
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare verse insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range verses {
			bookID, ok := bookIDs[strings.ToLower(v.Book)]
			if !ok {
				return fmt.Errorf("verse %s: book %w", v.Reference, ErrNotFound)
			}
			if v.Chapter < 1 || v.Verse < 1 {
				return fmt.Errorf("verse %s: chapter and verse must be positive", v.Reference)
			}
			if _, err := stmt.ExecContext(ctx, translationID, bookID, v.Chapter, v.Verse, v.Text); err != nil {
				return fmt.Errorf("failed to insert verse %s: %w", v.Reference, err)
			}
		}

		return renumberVerses(ctx, tx, translationID)
	})

	done(err)
	if err != nil {
		return 0, err
	}
	return len(verses), nil
}

// LookupVerse returns the verse at ref in a translation.
func (d *Database) LookupVerse(ctx context.Context, translationID int64, ref scripture.Reference) (scripture.Verse, error) {
	done := observeQuery("lookup_verse")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	v := scripture.Verse{Reference: ref}
	err := d.db.QueryRowContext(ctx, `
		SELECT b.title, v.verse_order, v.content
		FROM verses v JOIN books b ON b.id = v.book_id
		WHERE v.translation_id = ? AND b.title = ? AND v.chapter = ? AND v.number = ?
	`, translationID, ref.Book, ref.Chapter, ref.Verse).Scan(&v.Book, &v.Order, &v.Text)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return scripture.Verse{}, fmt.Errorf("%s: %w", ref, scripture.ErrNotFound)
	}
	done(err)
	return v, err
}

// VersesBetween returns the verses of a translation whose order lies in
// [from, to], ascending.
func (d *Database) VersesBetween(ctx context.Context, translationID int64, from, to int64) ([]scripture.Verse, error) {
	done := observeQuery("verses_between")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT b.title, v.chapter, v.number, v.verse_order, v.content
		FROM verses v JOIN books b ON b.id = v.book_id
		WHERE v.translation_id = ? AND v.verse_order BETWEEN ? AND ?
		ORDER BY v.verse_order
	`, translationID, from, to)
	if err != nil {
		done(err)
		return nil, fmt.Errorf("failed to query verses: %w", err)
	}
	defer rows.Close()

	var verses []scripture.Verse
	for rows.Next() {
		var v scripture.Verse
		if err := rows.Scan(&v.Book, &v.Chapter, &v.Verse, &v.Order, &v.Text); err != nil {
			done(err)
			return nil, err
		}
		verses = append(verses, v)
	}

	err = rows.Err()
	done(err)
	return verses, err
}

// GetVersesInRange returns the verses from start to end inclusive in
// translation order.
func (d *Database) GetVersesInRange(ctx context.Context, translationID int64, start, end scripture.Reference) ([]scripture.Verse, error) {
	return scripture.NewResolver(d).Verses(ctx, scripture.Passage{
		TranslationID: translationID,
		Start:         start,
		End:           end,
	})
}
