package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ekkles/internal/scripture"
)

var (
	// ErrNotFound is returned by playlist stores for unknown ids.
	ErrNotFound = errors.New("playlist not found")
	// ErrPartIndex is returned by edits given an index outside the playlist.
	ErrPartIndex = errors.New("part index out of range")
	// ErrEmpty is returned when an empty playlist is about to be presented.
	ErrEmpty = errors.New("playlist has no parts")
)

// Part kinds as stored and serialized.
const (
	KindSong    = "song"
	KindPassage = "bible"
)

// Part is one playlist element. The set of implementations is closed:
// SongPart and PassagePart.
type Part interface {
	Kind() string
	isPart()
}

// SongPart references a stored song.
type SongPart struct {
	SongID int64
}

func (SongPart) Kind() string { return KindSong }
func (SongPart) isPart()      {}

// MarshalJSON implements json.Marshaler.
func (p SongPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		SongID int64  `json:"songId"`
	}{KindSong, p.SongID})
}

// PassagePart embeds a scripture passage.
type PassagePart struct {
	Passage scripture.Passage
}

func (PassagePart) Kind() string { return KindPassage }
func (PassagePart) isPart()      {}

// MarshalJSON implements json.Marshaler.
func (p PassagePart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string            `json:"kind"`
		Passage  scripture.Passage `json:"passage"`
		Citation string            `json:"citation"`
	}{KindPassage, p.Passage, p.Passage.String()})
}

// Status tracks whether a playlist matches what is stored.
type Status int

const (
	// StatusTransient playlists were never saved.
	StatusTransient Status = iota
	// StatusClean playlists match the store.
	StatusClean
	// StatusDirty playlists have unsaved edits.
	StatusDirty
)

func (s Status) String() string {
	switch s {
	case StatusTransient:
		return "transient"
	case StatusClean:
		return "clean"
	case StatusDirty:
		return "dirty"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Playlist is an ordered list of parts.
type Playlist struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Parts   []Part    `json:"parts"`
	Status  Status    `json:"status"`
}

// Summary is the list form of a playlist.
type Summary struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Parts   int       `json:"parts"`
}

// New creates an unsaved playlist.
func New(name string) *Playlist {
	return &Playlist{
		Name:    strings.TrimSpace(name),
		Created: time.Now().UTC().Truncate(time.Second),
		Status:  StatusTransient,
	}
}

// Len returns the number of parts.
func (p *Playlist) Len() int {
	return len(p.Parts)
}

// AppendSong adds a song reference at the end.
func (p *Playlist) AppendSong(songID int64) {
	p.Parts = append(p.Parts, SongPart{SongID: songID})
	p.touch()
}

// AppendPassage adds a scripture passage at the end.
func (p *Playlist) AppendPassage(passage scripture.Passage) {
	p.Parts = append(p.Parts, PassagePart{Passage: passage})
	p.touch()
}

// Remove deletes the part at index i.
func (p *Playlist) Remove(i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.Parts = append(p.Parts[:i:i], p.Parts[i+1:]...)
	p.touch()
	return nil
}

// Swap exchanges the parts at i and j.
func (p *Playlist) Swap(i, j int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if err := p.checkIndex(j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	p.Parts[i], p.Parts[j] = p.Parts[j], p.Parts[i]
	p.touch()
	return nil
}

// Move takes the part at from and reinserts it at to, shifting the parts in
// between.
func (p *Playlist) Move(from, to int) error {
	if err := p.checkIndex(from); err != nil {
		return err
	}
	if err := p.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	part := p.Parts[from]
	if from < to {
		copy(p.Parts[from:to], p.Parts[from+1:to+1])
	} else {
		copy(p.Parts[to+1:from+1], p.Parts[to:from])
	}
	p.Parts[to] = part
	p.touch()
	return nil
}

// Rename changes the playlist name. Names must not be blank.
func (p *Playlist) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("playlist name must not be empty")
	}
	if name != p.Name {
		p.Name = name
		p.touch()
	}
	return nil
}

// MarkSaved records that the playlist was stored under id.
func (p *Playlist) MarkSaved(id int64) {
	p.ID = id
	p.Status = StatusClean
}

func (p *Playlist) touch() {
	if p.Status == StatusClean {
		p.Status = StatusDirty
	}
}

func (p *Playlist) checkIndex(i int) error {
	if i < 0 || i >= len(p.Parts) {
		return fmt.Errorf("%w: %d (playlist has %d parts)", ErrPartIndex, i, len(p.Parts))
	}
	return nil
}
