package surface

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"ekkles/internal/logging"
	"ekkles/internal/metrics"
	"ekkles/internal/presentation"
	"ekkles/internal/slide"
)

// Snapshot is a published, immutable presentation state.
type Snapshot struct {
	Version uint64
	State   presentation.State
}

// Synchronizer owns the presentation state.
type Synchronizer struct {
	mu      sync.Mutex
	state   presentation.State
	version uint64

	published atomic.Pointer[Snapshot]
}

// New creates a synchronizer holding an empty presentation at version 0.
func New() *Synchronizer {
	s := &Synchronizer{}
	s.published.Store(&Snapshot{})
	return s
}

// Apply applies cmd if the state is not currently locked. It returns false
// when the command was dropped.
func (s *Synchronizer) Apply(cmd presentation.Command) bool {
	if !s.mu.TryLock() {
		metrics.SurfaceDroppedWrites.Inc()
		logging.Debug("Dropped %s command: presentation state busy", cmd.Name())
		return false
	}
	defer s.mu.Unlock()

	s.state = s.state.Apply(cmd)
	s.version++
	s.published.Store(&Snapshot{Version: s.version, State: s.state})

	metrics.SurfaceCommandsTotal.WithLabelValues(cmd.Name()).Inc()
	metrics.SurfaceSnapshotVersion.Set(float64(s.version))
	return true
}

// Load starts a new session showing slides. It returns the session id and
// whether the load was applied.
func (s *Synchronizer) Load(slides []slide.Slide) (string, bool) {
	session := uuid.NewString()
	if !s.Apply(presentation.Load{Slides: slides, Session: session}) {
		return "", false
	}
	logging.Info("Loaded presentation session %s with %d slides", session, len(slides))
	return session, true
}

// Latest returns the most recently published snapshot without touching the
// lock.
func (s *Synchronizer) Latest() Snapshot {
	return *s.published.Load()
}

// snapshot returns the last published snapshot. The second result reports
// whether the state was locked by a writer at the time of the read.
func (s *Synchronizer) snapshot() (*Snapshot, bool) {
	if !s.mu.TryLock() {
		return s.published.Load(), true
	}
	defer s.mu.Unlock()
	return s.published.Load(), false
}

// Reader creates a reader for the named consumer.
func (s *Synchronizer) Reader(consumer string) *Reader {
	return &Reader{source: s, consumer: consumer}
}

// Reader is one consumer's view of a Synchronizer. A Reader is not safe for
// concurrent use; give each goroutine its own.
type Reader struct {
	source   *Synchronizer
	consumer string
	last     *Snapshot
}

// Consumer returns the consumer name.
func (r *Reader) Consumer() string {
	return r.consumer
}

// Snapshot returns the latest observable state. It never blocks and never
// returns a version older than a previous call did.
func (r *Reader) Snapshot() Snapshot {
	snap, contended := r.source.snapshot()
	if contended {
		metrics.SurfaceContendedReads.WithLabelValues(r.consumer).Inc()
	}
	if r.last != nil && snap.Version < r.last.Version {
		snap = r.last
	}
	r.last = snap
	return *snap
}

// Poll returns the latest snapshot and whether its version differs from the
// one returned by the previous call.
func (r *Reader) Poll() (Snapshot, bool) {
	var prev uint64
	first := r.last == nil
	if !first {
		prev = r.last.Version
	}
	snap := r.Snapshot()
	return snap, first || snap.Version != prev
}
