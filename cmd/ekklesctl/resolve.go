package main

import (
	"encoding/json"
	"fmt"

	"ekkles/internal/database"
	"ekkles/internal/playlist"
	"ekkles/internal/scripture"
	"ekkles/internal/song"
	"ekkles/internal/workers"
)

// ResolveCmd prints the slide sequence of a playlist without presenting it.
type ResolveCmd struct {
	ID             int64 `arg:"" help:"Playlist id"`
	VersesPerSlide int   `name:"verses-per-slide" default:"1" help:"Verses grouped on one Bible slide"`
	LinesPerSlide  int   `name:"lines-per-slide" default:"0" help:"Split song parts after this many lines (0 keeps parts whole)"`
	SkipFailed     bool  `name:"skip-failed" help:"Skip parts that fail to resolve instead of aborting"`
	JSON           bool  `name:"json" help:"Print the result as JSON"`
}

func (c *ResolveCmd) resolver(db *database.Database) *playlist.Resolver {
	var split song.SplitPolicy = song.WholePart{}
	if c.LinesPerSlide > 0 {
		split = song.LinesPerSlide(c.LinesPerSlide)
	}

	opts := []playlist.Option{
		playlist.WithExpander(song.NewExpander(song.WithSplitPolicy(split))),
		playlist.WithWorkers(workers.ForIO(8)),
	}
	if c.SkipFailed {
		opts = append(opts, playlist.WithSkipFailedParts())
	}
	return playlist.NewResolver(db,
		scripture.NewResolver(db, scripture.WithVersesPerSlide(c.VersesPerSlide)),
		opts...,
	)
}

func (c *ResolveCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := db.GetPlaylist(g.Context, c.ID)
	if err != nil {
		return err
	}
	if pl.Len() == 0 {
		return fmt.Errorf("playlist %q: %w", pl.Name, playlist.ErrEmpty)
	}

	result, err := c.resolver(db).Resolve(g.Context, pl)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	total := len(result.Slides)
	for i, s := range result.Slides {
		g.printf("[%d/%d] %s\n", i+1, total, s.Provenance())
		for _, line := range s.Lines() {
			g.printf("    %s\n", line)
		}
	}
	for _, d := range result.Diagnostics {
		g.printf("skipped part %d (%s): %s\n", d.PartIndex+1, d.Kind, d.Message)
	}
	return nil
}
