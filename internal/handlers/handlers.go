package handlers

import (
	"sync"
	"time"

	"ekkles/internal/database"
	"ekkles/internal/playlist"
	"ekkles/internal/surface"
)

type Handlers struct {
	db        *database.Database
	resolver  *playlist.Resolver
	startTime time.Time

	// presentation is nil when no synchronizer is attached.
	presentationMu sync.Mutex
	presentation   *surface.Reader
}

// New creates the handlers. sync may be nil, in which case the
// presentation endpoint reports an empty presentation.
func New(db *database.Database, resolver *playlist.Resolver, sync *surface.Synchronizer) *Handlers {
	h := &Handlers{
		db:        db,
		resolver:  resolver,
		startTime: time.Now(),
	}
	if sync != nil {
		h.presentation = sync.Reader("http")
	}
	return h
}
