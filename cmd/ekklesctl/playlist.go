package main

import (
	"errors"
	"fmt"
	"strings"

	"ekkles/internal/database"
	"ekkles/internal/playlist"
	"ekkles/internal/scripture"
)

// PlaylistGroup contains playlist operations.
type PlaylistGroup struct {
	List       PlaylistListCmd       `cmd:"" help:"List playlists, newest first"`
	Show       PlaylistShowCmd       `cmd:"" help:"Show the parts of a playlist"`
	Create     PlaylistCreateCmd     `cmd:"" help:"Create an empty playlist"`
	Rename     PlaylistRenameCmd     `cmd:"" help:"Rename a playlist"`
	Delete     PlaylistDeleteCmd     `cmd:"" help:"Delete a playlist"`
	AddSong    PlaylistAddSongCmd    `cmd:"" name:"add-song" help:"Append a song"`
	AddPassage PlaylistAddPassageCmd `cmd:"" name:"add-passage" help:"Append a Bible passage"`
	Move       PlaylistMoveCmd       `cmd:"" help:"Move a part to another position"`
	Swap       PlaylistSwapCmd       `cmd:"" help:"Swap two parts"`
	Remove     PlaylistRemoveCmd     `cmd:"" help:"Remove a part"`
}

// PlaylistListCmd lists playlists.
type PlaylistListCmd struct{}

func (c *PlaylistListCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := db.ListPlaylists(g.Context)
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		g.printf("No playlists.\n")
		return nil
	}

	g.printf("%5s  %5s  %-16s  %s\n", "ID", "PARTS", "CREATED", "NAME")
	for _, p := range playlists {
		g.printf("%5d  %5d  %-16s  %s\n", p.ID, p.Parts, p.Created.Local().Format("2006-01-02 15:04"), p.Name)
	}
	return nil
}

// PlaylistShowCmd prints one playlist.
type PlaylistShowCmd struct {
	ID int64 `arg:"" help:"Playlist id"`
}

func (c *PlaylistShowCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := db.GetPlaylist(g.Context, c.ID)
	if err != nil {
		return err
	}

	g.printf("%s (id %d, %d part(s))\n", pl.Name, pl.ID, pl.Len())
	for i, part := range pl.Parts {
		g.printf("%3d. %s\n", i+1, describePart(g, db, part))
	}
	return nil
}

func describePart(g *Globals, db *database.Database, part playlist.Part) string {
	switch p := part.(type) {
	case playlist.SongPart:
		s, err := db.GetSong(g.Context, p.SongID)
		if err != nil {
			return fmt.Sprintf("song #%d (%v)", p.SongID, err)
		}
		return fmt.Sprintf("song #%d %s", p.SongID, s.Title)
	case playlist.PassagePart:
		name, err := db.TranslationName(g.Context, p.Passage.TranslationID)
		if err != nil {
			name = fmt.Sprintf("translation %d", p.Passage.TranslationID)
		}
		return fmt.Sprintf("bible %s (%s)", p.Passage, name)
	default:
		return part.Kind()
	}
}

// PlaylistCreateCmd creates a playlist.
type PlaylistCreateCmd struct {
	Name []string `arg:"" help:"Playlist name"`
}

func (c *PlaylistCreateCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := db.CreatePlaylist(g.Context, strings.Join(c.Name, " "))
	if err != nil {
		return err
	}
	g.printf("Created playlist %d %q\n", pl.ID, pl.Name)
	return nil
}

// PlaylistRenameCmd renames a playlist.
type PlaylistRenameCmd struct {
	ID   int64    `arg:"" help:"Playlist id"`
	Name []string `arg:"" help:"New name"`
}

func (c *PlaylistRenameCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	name := strings.Join(c.Name, " ")
	if err := db.RenamePlaylist(g.Context, c.ID, name); err != nil {
		return err
	}
	g.printf("Renamed playlist %d to %q\n", c.ID, strings.TrimSpace(name))
	return nil
}

// PlaylistDeleteCmd deletes a playlist after confirmation.
type PlaylistDeleteCmd struct {
	ID int64 `arg:"" help:"Playlist id"`
}

func (c *PlaylistDeleteCmd) Run(g *Globals) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := db.GetPlaylist(g.Context, c.ID)
	if err != nil {
		return err
	}

	ok, err := g.confirm(fmt.Sprintf("Delete playlist %q with %d part(s)?", pl.Name, pl.Len()))
	if err != nil {
		return err
	}
	if !ok {
		g.printf("Aborted.\n")
		return nil
	}

	if err := db.DeletePlaylist(g.Context, c.ID); err != nil {
		return err
	}
	g.printf("Deleted playlist %d\n", c.ID)
	return nil
}

// editPlaylist loads a playlist, applies edit and saves it.
func editPlaylist(g *Globals, id int64, edit func(*database.Database, *playlist.Playlist) error) error {
	db, err := g.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	pl, err := db.GetPlaylist(g.Context, id)
	if err != nil {
		return err
	}
	if err := edit(db, pl); err != nil {
		return err
	}
	if err := db.SavePlaylist(g.Context, pl); err != nil {
		return err
	}
	g.printf("Saved playlist %d (%d part(s))\n", pl.ID, pl.Len())
	return nil
}

// PlaylistAddSongCmd appends a song.
type PlaylistAddSongCmd struct {
	ID     int64 `arg:"" help:"Playlist id"`
	SongID int64 `arg:"" help:"Song id"`
}

func (c *PlaylistAddSongCmd) Run(g *Globals) error {
	return editPlaylist(g, c.ID, func(db *database.Database, pl *playlist.Playlist) error {
		if _, err := db.GetSong(g.Context, c.SongID); err != nil {
			return err
		}
		pl.AppendSong(c.SongID)
		return nil
	})
}

// PlaylistAddPassageCmd appends a passage.
type PlaylistAddPassageCmd struct {
	ID          int64    `arg:"" help:"Playlist id"`
	Translation string   `arg:"" help:"Translation name"`
	Citation    []string `arg:"" help:"Citation such as 'John 3:16-18' or 'Gen 1:31-2:3'"`
}

func (c *PlaylistAddPassageCmd) Run(g *Globals) error {
	return editPlaylist(g, c.ID, func(db *database.Database, pl *playlist.Playlist) error {
		passage, err := lookupPassage(g, db, c.Translation, strings.Join(c.Citation, " "))
		if err != nil {
			return err
		}
		pl.AppendPassage(passage)
		return nil
	})
}

// lookupPassage turns a citation into a passage and checks that the range
// exists in the translation.
func lookupPassage(g *Globals, db *database.Database, translation, citation string) (scripture.Passage, error) {
	t, err := db.GetTranslationByName(g.Context, translation)
	if err != nil {
		return scripture.Passage{}, err
	}

	c, err := scripture.ParseCitation(citation)
	if err != nil {
		return scripture.Passage{}, err
	}
	c, err = db.CanonicalCitation(g.Context, c)
	if err != nil {
		return scripture.Passage{}, err
	}

	if _, err := db.GetVersesInRange(g.Context, t.ID, c.Start, c.End); err != nil {
		return scripture.Passage{}, err
	}
	return c.Passage(t.ID), nil
}

// PlaylistMoveCmd moves a part.
type PlaylistMoveCmd struct {
	ID   int64 `arg:"" help:"Playlist id"`
	From int   `arg:"" help:"Current position (1-based)"`
	To   int   `arg:"" help:"New position (1-based)"`
}

func (c *PlaylistMoveCmd) Run(g *Globals) error {
	return editPlaylist(g, c.ID, func(_ *database.Database, pl *playlist.Playlist) error {
		return positionError(pl.Move(c.From-1, c.To-1))
	})
}

// PlaylistSwapCmd swaps two parts.
type PlaylistSwapCmd struct {
	ID int64 `arg:"" help:"Playlist id"`
	A  int   `arg:"" help:"First position (1-based)"`
	B  int   `arg:"" help:"Second position (1-based)"`
}

func (c *PlaylistSwapCmd) Run(g *Globals) error {
	return editPlaylist(g, c.ID, func(_ *database.Database, pl *playlist.Playlist) error {
		return positionError(pl.Swap(c.A-1, c.B-1))
	})
}

// PlaylistRemoveCmd removes a part.
type PlaylistRemoveCmd struct {
	ID       int64 `arg:"" help:"Playlist id"`
	Position int   `arg:"" help:"Position to remove (1-based)"`
}

func (c *PlaylistRemoveCmd) Run(g *Globals) error {
	return editPlaylist(g, c.ID, func(_ *database.Database, pl *playlist.Playlist) error {
		return positionError(pl.Remove(c.Position - 1))
	})
}

// positionError restates 0-based index errors in command line terms.
func positionError(err error) error {
	if errors.Is(err, playlist.ErrPartIndex) {
		return fmt.Errorf("no such position: %w", playlist.ErrPartIndex)
	}
	return err
}
