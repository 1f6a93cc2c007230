package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ekkles/internal/database"
	"ekkles/internal/importer"
	"ekkles/internal/scripture"
)

// BibleGroup contains translation operations.
type BibleGroup struct {
	Translations   BibleTranslationsCmd   `cmd:"" help:"List translations"`
	AddTranslation BibleAddTranslationCmd `cmd:"" name:"add-translation" help:"Create an empty translation"`
	Load           BibleLoadCmd           `cmd:"" help:"Load verses from a tab separated file"`
	Import         BibleImportCmd         `cmd:"" help:"Import a Beblia XML Bible"`
	Show           BibleShowCmd           `cmd:"" help:"Print a passage"`
}

// BibleTranslationsCmd lists translations.
type BibleTranslationsCmd struct{}

func (c *BibleTranslationsCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	translations, err := db.ListTranslations(g.Context)
	if err != nil {
		return err
	}
	if len(translations) == 0 {
		g.printf("No translations.\n")
		return nil
	}

	g.printf("%5s  %7s  %s\n", "ID", "VERSES", "NAME")
	for _, t := range translations {
		g.printf("%5d  %7d  %s\n", t.ID, t.Verses, t.Name)
	}
	return nil
}

// BibleAddTranslationCmd creates a translation.
type BibleAddTranslationCmd struct {
	Name string `arg:"" help:"Translation name, for example KJV"`
}

func (c *BibleAddTranslationCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.AddTranslation(g.Context, c.Name)
	if err != nil {
		return err
	}
	g.printf("Created translation %d %q\n", id, strings.TrimSpace(c.Name))
	return nil
}

// BibleLoadCmd loads a verse list into a translation.
type BibleLoadCmd struct {
	Translation string `arg:"" help:"Translation name"`
	File        string `arg:"" type:"existingfile" help:"Tab separated verse file"`
	Create      bool   `help:"Create the translation if it does not exist"`
}

func (c *BibleLoadCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	verses, err := importer.ParseVerseList(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := translationID(g, db, c.Translation, c.Create)
	if err != nil {
		return err
	}
	if err := canonicalBooks(g, db, verses); err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	n, err := db.AddVerses(g.Context, id, verses)
	if err != nil {
		return err
	}
	g.printf("Loaded %d verse(s) into %s\n", n, c.Translation)
	return nil
}

func translationID(g *Globals, db *database.Database, name string, create bool) (int64, error) {
	t, err := db.GetTranslationByName(g.Context, name)
	if err == nil {
		return t.ID, nil
	}
	if !create || !errors.Is(err, database.ErrNotFound) {
		return 0, err
	}
	return db.AddTranslation(g.Context, name)
}

// canonicalBooks replaces abbreviated book names with stored titles.
func canonicalBooks(g *Globals, db *database.Database, verses []scripture.Verse) error {
	titles := make(map[string]string)
	for i := range verses {
		name := verses[i].Book
		title, ok := titles[name]
		if !ok {
			book, err := db.FindBook(g.Context, name)
			if err != nil {
				return fmt.Errorf("verse %s: %w", verses[i].Reference, err)
			}
			title = book.Title
			titles[name] = title
		}
		verses[i].Book = title
	}
	return nil
}

// BibleImportCmd imports a whole Bible.
type BibleImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Beblia XML file"`
	Name string `help:"Store under this name instead of the one in the file"`
}

func (c *BibleImportCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	bible, err := importer.ParseBeblia(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	if c.Name != "" {
		bible.Name = c.Name
	}

	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.AddTranslation(g.Context, bible.Name)
	if err != nil {
		return err
	}
	n, err := db.AddVerses(g.Context, id, bible.Verses)
	if err != nil {
		return err
	}
	g.printf("Imported %q: %d verse(s)\n", bible.Name, n)
	return nil
}

// BibleShowCmd prints the verses of a passage.
type BibleShowCmd struct {
	Translation string   `arg:"" help:"Translation name"`
	Citation    []string `arg:"" help:"Citation such as 'John 3:16-18'"`
}

func (c *BibleShowCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	passage, err := lookupPassage(g, db, c.Translation, strings.Join(c.Citation, " "))
	if err != nil {
		return err
	}
	verses, err := db.GetVersesInRange(g.Context, passage.TranslationID, passage.Start, passage.End)
	if err != nil {
		return err
	}

	g.printf("%s (%s)\n", passage, c.Translation)
	for _, v := range verses {
		g.printf("%s  %s\n", v.Reference, v.Text)
	}
	return nil
}
