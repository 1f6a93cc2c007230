package slide

import (
	"encoding/json"
	"strings"
)

// Kind identifies the kind of source a slide was produced from.
type Kind string

const (
	KindSong      Kind = "song"
	KindScripture Kind = "scripture"
)

// Provenance records where a slide came from.
type Provenance struct {
	Kind Kind `json:"kind"`
	// Source is the song title or the translation name.
	Source string `json:"source"`
	// Label is the song part tag or the verse citation.
	Label string `json:"label"`
}

// String returns a short human readable form, e.g. "Amazing Grace [V1]".
func (p Provenance) String() string {
	if p.Source == "" {
		return p.Label
	}
	if p.Kind == KindSong {
		return p.Source + " [" + p.Label + "]"
	}
	return p.Label + " (" + p.Source + ")"
}

// Slide is an immutable presentable unit.
type Slide struct {
	lines      []string
	provenance Provenance
	position   int
}

// New creates a slide at position 0. The lines are copied.
func New(lines []string, provenance Provenance) Slide {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Slide{lines: cp, provenance: provenance}
}

// FromText splits text on line breaks and creates a slide from the result.
func FromText(text string, provenance Provenance) Slide {
	return Slide{lines: SplitLines(text), provenance: provenance}
}

// Lines returns a copy of the payload lines.
func (s Slide) Lines() []string {
	cp := make([]string, len(s.lines))
	copy(cp, s.lines)
	return cp
}

// LineCount returns the number of payload lines.
func (s Slide) LineCount() int {
	return len(s.lines)
}

// Text returns the payload joined with newlines.
func (s Slide) Text() string {
	return strings.Join(s.lines, "\n")
}

// Provenance returns the source description of the slide.
func (s Slide) Provenance() Provenance {
	return s.provenance
}

// Position returns the playlist-relative position of the slide.
func (s Slide) Position() int {
	return s.position
}

// WithPosition returns a copy of the slide at the given position. The payload
// is shared since it is never written after construction.
func (s Slide) WithPosition(position int) Slide {
	s.position = position
	return s
}

// Equal reports whether two slides have the same payload, provenance and
// position.
func (s Slide) Equal(other Slide) bool {
	if s.position != other.position || s.provenance != other.provenance || len(s.lines) != len(other.lines) {
		return false
	}
	for i := range s.lines {
		if s.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}

type slideJSON struct {
	Position   int        `json:"position"`
	Lines      []string   `json:"lines"`
	Provenance Provenance `json:"provenance"`
}

// MarshalJSON implements json.Marshaler.
func (s Slide) MarshalJSON() ([]byte, error) {
	lines := s.lines
	if lines == nil {
		lines = []string{}
	}
	return json.Marshal(slideJSON{
		Position:   s.position,
		Lines:      lines,
		Provenance: s.provenance,
	})
}

// Renumber returns a new sequence holding the given slides, in order, with
// contiguous positions starting at zero.
func Renumber(slides []Slide) []Slide {
	out := make([]Slide, len(slides))
	for i, s := range slides {
		out[i] = s.WithPosition(i)
	}
	return out
}

// SplitLines splits text on \n, \r\n and \r line breaks. Trailing line breaks
// do not produce empty trailing lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
