package main

import (
	"fmt"
	"os"
	"strings"

	"ekkles/internal/database"
	"ekkles/internal/importer"
	"ekkles/internal/song"
)

// SongGroup contains song library operations.
type SongGroup struct {
	List   SongListCmd   `cmd:"" help:"List songs"`
	Show   SongShowCmd   `cmd:"" help:"Print a song with its lyrics"`
	Add    SongAddCmd    `cmd:"" help:"Import OpenSong song files"`
	Delete SongDeleteCmd `cmd:"" help:"Delete a song that no playlist uses"`
}

// SongListCmd lists songs.
type SongListCmd struct {
	Filter string `arg:"" optional:"" help:"Only titles containing this text"`
}

func (c *SongListCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := db.ListSongs(g.Context, c.Filter)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		g.printf("No songs.\n")
		return nil
	}

	g.printf("%5s  %5s  %s\n", "ID", "PARTS", "TITLE")
	for _, s := range songs {
		title := s.Title
		if s.Author != "" {
			title += " (" + s.Author + ")"
		}
		g.printf("%5d  %5d  %s\n", s.ID, s.Parts, title)
	}
	return nil
}

// SongShowCmd prints a song in presentation order.
type SongShowCmd struct {
	ID int64 `arg:"" help:"Song id"`
}

func (c *SongShowCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSong(g.Context, c.ID)
	if err != nil {
		return err
	}

	g.printf("%s\n", s.Title)
	if s.Author != "" {
		g.printf("by %s\n", s.Author)
	}
	g.printf("Order: %s\n", song.FormatOrder(s.Order))

	printed := make(map[string]bool)
	for _, tag := range s.Order {
		if printed[tag] {
			continue
		}
		printed[tag] = true
		g.printf("\n[%s]\n%s\n", tag, s.Parts[tag])
	}
	return nil
}

// SongAddCmd imports songs. A file that fails to parse or store is
// reported and the rest are still imported.
type SongAddCmd struct {
	Files []string `arg:"" type:"existingfile" help:"OpenSong XML files"`
}

func (c *SongAddCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var failed []string
	for _, path := range c.Files {
		id, err := addSongFile(g, db, path)
		if err != nil {
			g.printf("FAIL  %s: %v\n", path, err)
			failed = append(failed, path)
			continue
		}
		g.printf("OK    %s -> song %d\n", path, id)
	}

	g.printf("Imported %d of %d song(s)\n", len(c.Files)-len(failed), len(c.Files))
	if len(failed) > 0 {
		return fmt.Errorf("%d song file(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func addSongFile(g *Globals, db *database.Database, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	s, err := importer.ParseOpenSong(f)
	if err != nil {
		return 0, err
	}
	return db.AddSong(g.Context, s)
}

// SongDeleteCmd deletes a song after confirmation.
type SongDeleteCmd struct {
	ID int64 `arg:"" help:"Song id"`
}

func (c *SongDeleteCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSong(g.Context, c.ID)
	if err != nil {
		return err
	}

	ok, err := g.confirm(fmt.Sprintf("Delete song %q?", s.Title))
	if err != nil {
		return err
	}
	if !ok {
		g.printf("Aborted.\n")
		return nil
	}

	if err := db.DeleteSong(g.Context, c.ID); err != nil {
		return err
	}
	g.printf("Deleted song %d\n", c.ID)
	return nil
}
