package playlist

import (
	"errors"
	"fmt"

	"ekkles/internal/scripture"
	"ekkles/internal/song"
)

// UnknownSongError is returned when a song part references a song the store
// does not know.
type UnknownSongError struct {
	SongID int64
}

func (e *UnknownSongError) Error() string {
	return fmt.Sprintf("unknown song %d", e.SongID)
}

func (e *UnknownSongError) Unwrap() error {
	return song.ErrNotFound
}

// ResolutionError reports which part of a playlist failed to resolve.
type ResolutionError struct {
	PartIndex int
	Kind      string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("part %d (%s): %v", e.PartIndex, e.Kind, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Diagnostic records a part that was skipped during graceful resolution.
type Diagnostic struct {
	PartIndex int    `json:"partIndex"`
	Kind      string `json:"kind"`
	Err       error  `json:"-"`
	Message   string `json:"message"`
}

// failureReason classifies a part error for metrics.
func failureReason(err error) string {
	var (
		missing  *song.MissingPartError
		unknown  *UnknownSongError
		notFound *scripture.ReferenceNotFoundError
		reversed *scripture.ReversedRangeError
	)
	switch {
	case errors.As(err, &missing):
		return "missing_part"
	case errors.As(err, &unknown):
		return "unknown_song"
	case errors.As(err, &notFound):
		return "reference_not_found"
	case errors.As(err, &reversed):
		return "reversed_range"
	default:
		return "store_error"
	}
}
