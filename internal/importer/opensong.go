package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"ekkles/internal/song"
)

// ErrNoLyrics is returned for song files without any tagged lyrics.
var ErrNoLyrics = errors.New("song has no tagged lyrics")

type openSongFile struct {
	XMLName      xml.Name `xml:"song"`
	Title        string   `xml:"title"`
	Author       string   `xml:"author"`
	Presentation string   `xml:"presentation"`
	Lyrics       string   `xml:"lyrics"`
}

// ParseOpenSong decodes an OpenSong song. Chord lines (starting with '.')
// and blank lines are dropped. The presentation element gives the order;
// when it is empty the parts are presented as written.
func ParseOpenSong(r io.Reader) (*song.Song, error) {
	var f openSongFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode song: %w", err)
	}

	s := &song.Song{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
	}
	if s.Title == "" {
		return nil, &song.ValidationError{Field: "title", Message: "must not be empty"}
	}

	tags, parts := parseLyrics(f.Lyrics)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%q: %w", s.Title, ErrNoLyrics)
	}
	s.Parts = parts

	s.Order = song.ParseOrder(f.Presentation)
	if len(s.Order) == 0 {
		s.Order = tags
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", s.Title, err)
	}
	return s, nil
}

// parseLyrics splits raw lyrics into "[tag]" sections. It returns the tags
// in first-appearance order. Text before the first tag and tags without
// lines are ignored; a repeated tag replaces the earlier lyrics.
func parseLyrics(raw string) ([]string, map[string]string) {
	var (
		tags    []string
		parts   = make(map[string]string)
		current string
		lines   []string
	)

	flush := func() {
		if current == "" || len(lines) == 0 {
			return
		}
		if _, seen := parts[current]; !seen {
			tags = append(tags, current)
		}
		parts[current] = strings.Join(lines, "\n")
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "."):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			flush()
			current = strings.TrimSpace(line[1 : len(line)-1])
			lines = nil
		case current != "":
			lines = append(lines, line)
		}
	}
	flush()

	return tags, parts
}
