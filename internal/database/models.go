package database

import "errors"

var (
	// ErrNotFound is returned for unknown translations and books.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique name is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrInUse is returned when deleting a row other rows still reference.
	ErrInUse = errors.New("still in use")
)

// SongSummary is the list form of a song.
type SongSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Parts  int    `json:"parts"`
}

// Translation is a stored bible translation.
type Translation struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Verses int    `json:"verses"`
}

// Book is one of the canonical books.
type Book struct {
	ID    int64  `json:"id"`
	Order int    `json:"order"`
	Title string `json:"title"`
}
