package scripture

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by verse stores when a reference does not exist.
	ErrNotFound = errors.New("verse not found")
	// ErrReversedRange marks a passage whose end precedes its start.
	ErrReversedRange = errors.New("reversed range")
)

// Reference identifies a verse within a translation.
type Reference struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// String formats the reference as "Book chapter:verse".
func (r Reference) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Verse is one stored verse.
type Verse struct {
	Reference
	// Order is the translation-wide ordering key.
	Order int64  `json:"order"`
	Text  string `json:"text"`
}

// Passage is an inclusive verse range in one translation.
type Passage struct {
	TranslationID int64     `json:"translationId"`
	Start         Reference `json:"start"`
	End           Reference `json:"end"`
}

// String formats the passage citation without the translation.
func (p Passage) String() string {
	return FormatRange(p.Start, p.End)
}

// ReferenceNotFoundError is returned when a passage endpoint does not exist
// in the translation.
type ReferenceNotFoundError struct {
	TranslationID int64
	Reference     Reference
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in translation %d", e.Reference, e.TranslationID)
}

func (e *ReferenceNotFoundError) Unwrap() error {
	return ErrNotFound
}

// ReversedRangeError is returned when the end of a passage precedes its
// start in verse order.
type ReversedRangeError struct {
	Start Reference
	End   Reference
}

func (e *ReversedRangeError) Error() string {
	return fmt.Sprintf("passage end %s precedes start %s", e.End, e.Start)
}

func (e *ReversedRangeError) Unwrap() error {
	return ErrReversedRange
}

// FormatRange formats an inclusive range as compactly as the endpoints allow:
// "Genesis 1:1", "Genesis 1:1-3", "Genesis 1:31-2:3", "John 21:25 - Acts 1:1".
func FormatRange(start, end Reference) string {
	switch {
	case start == end:
		return start.String()
	case start.Book != end.Book:
		return start.String() + " - " + end.String()
	case start.Chapter != end.Chapter:
		return fmt.Sprintf("%s-%d:%d", start, end.Chapter, end.Verse)
	default:
		return fmt.Sprintf("%s-%d", start, end.Verse)
	}
}
