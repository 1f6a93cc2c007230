package surface

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	dto "github.com/prometheus/client_model/go"

	"ekkles/internal/metrics"
	"ekkles/internal/presentation"
	"ekkles/internal/slide"
)

func makeSlides(n int) []slide.Slide {
	slides := make([]slide.Slide, n)
	for i := range slides {
		slides[i] = slide.FromText(fmt.Sprintf("slide %d", i), slide.Provenance{Kind: slide.KindSong}).WithPosition(i)
	}
	return slides
}

func TestNewSynchronizer(t *testing.T) {
	t.Parallel()

	s := New()
	snap := s.Reader("test").Snapshot()
	if snap.Version != 0 {
		t.Errorf("Version = %d, want 0", snap.Version)
	}
	if snap.State.Status() != presentation.StatusEmpty {
		t.Errorf("Status = %v, want empty", snap.State.Status())
	}
}

func TestApplyPublishes(t *testing.T) {
	t.Parallel()

	s := New()
	session, ok := s.Load(makeSlides(3))
	if !ok {
		t.Fatal("Load was dropped")
	}
	if _, err := uuid.Parse(session); err != nil {
		t.Errorf("session %q is not a uuid: %v", session, err)
	}

	if !s.Apply(presentation.Next{}) {
		t.Fatal("Next was dropped")
	}

	snap := s.Reader("test").Snapshot()
	if snap.Version != 2 {
		t.Errorf("Version = %d, want 2", snap.Version)
	}
	if snap.State.Index() != 1 {
		t.Errorf("Index = %d, want 1", snap.State.Index())
	}
	if snap.State.Session() != session {
		t.Errorf("Session = %q, want %q", snap.State.Session(), session)
	}
	if s.Latest().Version != 2 {
		t.Errorf("Latest().Version = %d, want 2", s.Latest().Version)
	}
}

func TestApplyDroppedWhileLocked(t *testing.T) {
	t.Parallel()

	s := New()
	s.Load(makeSlides(3))

	s.mu.Lock()
	dropped := !s.Apply(presentation.Next{})
	s.mu.Unlock()

	if !dropped {
		t.Fatal("Apply should fail while the state is locked")
	}
	if got := s.Latest().State.Index(); got != 0 {
		t.Errorf("dropped command changed index to %d", got)
	}
	if got := s.Latest().Version; got != 1 {
		t.Errorf("dropped command changed version to %d", got)
	}

	if !s.Apply(presentation.Next{}) {
		t.Error("Apply should succeed once the lock is free")
	}
}

func contendedReads(t *testing.T, consumer string) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.SurfaceContendedReads.WithLabelValues(consumer).Write(&m); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestSnapshotWhileLockedReturnsPublished(t *testing.T) {
	t.Parallel()

	consumer := "locked-read-" + uuid.NewString()
	s := New()
	s.Load(makeSlides(3))
	s.Apply(presentation.Next{})

	r := s.Reader(consumer)
	s.mu.Lock()
	snap := r.Snapshot()
	s.mu.Unlock()

	if snap.Version != 2 || snap.State.Index() != 1 {
		t.Errorf("snapshot = version %d index %d, want version 2 index 1", snap.Version, snap.State.Index())
	}
	if got := contendedReads(t, consumer); got != 1 {
		t.Errorf("contended reads = %v, want 1", got)
	}

	r.Snapshot()
	if got := contendedReads(t, consumer); got != 1 {
		t.Errorf("uncontended read was counted: contended reads = %v, want 1", got)
	}
}

func TestReaderNeverGoesBack(t *testing.T) {
	t.Parallel()

	s := New()
	s.Load(makeSlides(3))
	s.Apply(presentation.Next{})

	r := s.Reader("presenter")
	if v := r.Snapshot().Version; v != 2 {
		t.Fatalf("Version = %d, want 2", v)
	}

	// Publish an older snapshot behind the reader's back.
	s.published.Store(&Snapshot{Version: 1})
	if v := r.Snapshot().Version; v != 2 {
		t.Errorf("reader went back to version %d", v)
	}
}

func TestPoll(t *testing.T) {
	t.Parallel()

	s := New()
	r := s.Reader("presenter")

	if _, changed := r.Poll(); !changed {
		t.Error("first poll should report a change")
	}
	if _, changed := r.Poll(); changed {
		t.Error("poll without commands should not report a change")
	}

	s.Load(makeSlides(2))
	snap, changed := r.Poll()
	if !changed || snap.Version != 1 {
		t.Errorf("after load: changed %v version %d", changed, snap.Version)
	}
}

func TestReadersAreIndependent(t *testing.T) {
	t.Parallel()

	s := New()
	s.Load(makeSlides(3))
	controller := s.Reader("controller")
	presenter := s.Reader("presenter")

	controller.Snapshot()
	s.Apply(presentation.Next{})

	if _, changed := presenter.Poll(); !changed {
		t.Error("presenter should see a change on its first poll")
	}
	if _, changed := controller.Poll(); !changed {
		t.Error("controller should see the Next")
	}
	if controller.Consumer() != "controller" {
		t.Errorf("Consumer = %q", controller.Consumer())
	}
}

func TestFreezeAcrossSurfaces(t *testing.T) {
	t.Parallel()

	s := New()
	s.Load(makeSlides(4))
	s.Apply(presentation.ToggleFreeze{})
	s.Apply(presentation.Next{})
	s.Apply(presentation.Next{})

	snap := s.Reader("presenter").Snapshot()
	if got := snap.State.PresenterView().Index; got != 0 {
		t.Errorf("presenter index = %d, want 0 while frozen", got)
	}
	if got := snap.State.ControllerView().Index; got != 2 {
		t.Errorf("controller index = %d, want 2", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()
	s.Load(makeSlides(100))

	const writers, readers, rounds = 4, 4, 500

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := 0
			for range rounds {
				if s.Apply(presentation.Next{}) {
					n++
				}
			}
			mu.Lock()
			applied += n
			mu.Unlock()
		}()
	}

	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := s.Reader(fmt.Sprintf("reader-%d", i))
			var last uint64
			for range rounds {
				snap := r.Snapshot()
				if snap.Version < last {
					t.Errorf("reader %d went from version %d to %d", i, last, snap.Version)
					return
				}
				last = snap.Version
				if idx := snap.State.Index(); idx < 0 || idx >= 100 {
					t.Errorf("reader %d saw index %d", i, idx)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := s.Latest().Version; got != uint64(applied+1) {
		t.Errorf("Version = %d, want %d applied commands plus the load", got, applied)
	}
	if applied == 0 {
		t.Error("no command was applied")
	}
}
