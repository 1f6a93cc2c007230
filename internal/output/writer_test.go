package output

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingWriter blocks every write until release is closed.
type blockingWriter struct {
	release chan struct{}
	mu      sync.Mutex
	buf     bytes.Buffer
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *blockingWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("device gone") }

func TestDefaultConfig(t *testing.T) {
	if got := DefaultConfig().WriteTimeout; got != 2*time.Second {
		t.Errorf("WriteTimeout = %v, want 2s", got)
	}

	tw := NewTimeoutWriter(&bytes.Buffer{}, Config{})
	if tw.timeout != 2*time.Second {
		t.Errorf("zero timeout should fall back to default, got %v", tw.timeout)
	}
}

func TestTimeoutWriterPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTimeoutWriter(&buf, Config{WriteTimeout: time.Second})

	for _, s := range []string{"frame one", "frame two"} {
		n, err := tw.Write([]byte(s))
		if err != nil {
			t.Fatalf("Write(%q) error: %v", s, err)
		}
		if n != len(s) {
			t.Errorf("Write(%q) = %d, want %d", s, n, len(s))
		}
	}

	if buf.String() != "frame oneframe two" {
		t.Errorf("output = %q", buf.String())
	}
	bytesWritten, stalls := tw.Stats()
	if bytesWritten != 18 || stalls != 0 {
		t.Errorf("Stats() = %d, %d; want 18, 0", bytesWritten, stalls)
	}
	if tw.Stalled() {
		t.Error("Stalled() = true after completed writes")
	}
}

func TestTimeoutWriterStalls(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	tw := NewTimeoutWriter(w, Config{WriteTimeout: 20 * time.Millisecond})

	if _, err := tw.Write([]byte("first")); !errors.Is(err, ErrStalled) {
		t.Fatalf("blocked write error = %v, want ErrStalled", err)
	}
	if !tw.Stalled() {
		t.Error("Stalled() = false while the first write is blocked")
	}

	start := time.Now()
	if _, err := tw.Write([]byte("second")); !errors.Is(err, ErrStalled) {
		t.Fatalf("write behind a stalled write error = %v, want ErrStalled", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("write behind a stall should fail fast, took %v", elapsed)
	}

	close(w.release)
	deadline := time.Now().Add(time.Second)
	for tw.Stalled() {
		if time.Now().After(deadline) {
			t.Fatal("writer still stalled after the device recovered")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := tw.Write([]byte("third")); err != nil {
		t.Fatalf("write after recovery error: %v", err)
	}
	if got := w.String(); got != "firstthird" {
		t.Errorf("device received %q, want %q", got, "firstthird")
	}

	_, stalls := tw.Stats()
	if stalls != 2 {
		t.Errorf("stalls = %d, want 2", stalls)
	}
}

func TestTimeoutWriterCopiesBuffer(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	tw := NewTimeoutWriter(w, Config{WriteTimeout: 10 * time.Millisecond})

	p := []byte("abc")
	if _, err := tw.Write(p); !errors.Is(err, ErrStalled) {
		t.Fatalf("error = %v, want ErrStalled", err)
	}
	copy(p, "xyz")
	close(w.release)

	deadline := time.Now().Add(time.Second)
	for tw.Stalled() {
		if time.Now().After(deadline) {
			t.Fatal("write never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if got := w.String(); got != "abc" {
		t.Errorf("device received %q, want the bytes as passed to Write", got)
	}
}

func TestTimeoutWriterErrors(t *testing.T) {
	tw := NewTimeoutWriter(failingWriter{}, DefaultConfig())
	if _, err := tw.Write([]byte("x")); err == nil || errors.Is(err, ErrStalled) {
		t.Errorf("error = %v, want the device error", err)
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := tw.Write([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("write after Close error = %v, want ErrClosed", err)
	}
}
