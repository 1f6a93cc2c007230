package song

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNotFound is returned by song stores when no song has the requested id.
	ErrNotFound = errors.New("song not found")
	// ErrInvalid marks a song that violates its invariants.
	ErrInvalid = errors.New("invalid song")
)

// Song is a read-only snapshot of a song as provided by the store.
type Song struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Author string            `json:"author,omitempty"`
	Order  []string          `json:"order"`
	Parts  map[string]string `json:"parts"`
}

// MissingPartError is returned when the declared order names a tag that has
// no lyrics.
type MissingPartError struct {
	Tag    string
	SongID int64
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("song %d: part %q is in the order but has no lyrics", e.SongID, e.Tag)
}

func (e *MissingPartError) Unwrap() error {
	return ErrInvalid
}

// ValidationError describes a song field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid song %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks the song invariants: a title, a non-empty order, tags
// without whitespace, and lyrics for every tag named in the order.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if len(s.Order) == 0 {
		return &ValidationError{Field: "order", Message: "must name at least one part"}
	}
	for tag := range s.Parts {
		if err := validateTag(tag); err != nil {
			return err
		}
	}
	for _, tag := range s.Order {
		if err := validateTag(tag); err != nil {
			return err
		}
		if _, ok := s.Parts[tag]; !ok {
			return &MissingPartError{Tag: tag, SongID: s.ID}
		}
	}
	return nil
}

func validateTag(tag string) error {
	if tag == "" {
		return &ValidationError{Field: "tag", Message: "must not be empty"}
	}
	if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return &ValidationError{Field: "tag", Message: fmt.Sprintf("%q contains whitespace", tag)}
	}
	return nil
}

// ParseOrder splits a whitespace separated order string such as "V1 C V2 C".
func ParseOrder(order string) []string {
	return strings.Fields(order)
}

// FormatOrder joins tags into the space separated storage form.
func FormatOrder(tags []string) string {
	return strings.Join(tags, " ")
}
