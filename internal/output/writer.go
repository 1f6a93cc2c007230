package output

import (
	"errors"
	"io"
	"sync"
	"time"

	"ekkles/internal/logging"
	"ekkles/internal/metrics"
)

var (
	// ErrStalled is returned when a write did not finish within the timeout
	// or an earlier write is still blocked.
	ErrStalled = errors.New("output stalled")
	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("output closed")
)

// Config configures a TimeoutWriter.
type Config struct {
	// WriteTimeout is the longest a single write may block.
	WriteTimeout time.Duration
}

// DefaultConfig returns the presenter defaults.
func DefaultConfig() Config {
	return Config{WriteTimeout: 2 * time.Second}
}

// TimeoutWriter wraps a device writer with a per-write timeout. A write that
// times out keeps running in the background and the writer stays stalled
// until it returns.
type TimeoutWriter struct {
	w       io.Writer
	timeout time.Duration

	mu           sync.Mutex
	pending      chan struct{}
	closed       bool
	bytesWritten int64
	stalls       int64
}

// NewTimeoutWriter creates a timeout-protected writer around w.
func NewTimeoutWriter(w io.Writer, config Config) *TimeoutWriter {
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	return &TimeoutWriter{w: w, timeout: config.WriteTimeout}
}

// Write implements io.Writer.
func (tw *TimeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	if tw.closed {
		tw.mu.Unlock()
		return 0, ErrClosed
	}
	if tw.pending != nil {
		select {
		case <-tw.pending:
			tw.pending = nil
		default:
			tw.stalls++
			tw.mu.Unlock()
			metrics.PresenterOutputStallsTotal.Inc()
			return 0, ErrStalled
		}
	}
	done := make(chan struct{})
	tw.pending = done
	tw.mu.Unlock()

	type writeResult struct {
		n   int
		err error
	}
	resultCh := make(chan writeResult, 1)

	// The write may outlive this call, and callers may reuse p.
	buf := append([]byte(nil), p...)
	go func() {
		n, err := tw.w.Write(buf)
		resultCh <- writeResult{n, err}
		close(done)
	}()

	timer := time.NewTimer(tw.timeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		tw.mu.Lock()
		tw.bytesWritten += int64(result.n)
		if tw.pending == done {
			tw.pending = nil
		}
		tw.mu.Unlock()
		return result.n, result.err

	case <-timer.C:
		tw.mu.Lock()
		tw.stalls++
		tw.mu.Unlock()
		metrics.PresenterOutputStallsTotal.Inc()
		logging.Warn("Presenter output write blocked for more than %v", tw.timeout)
		return 0, ErrStalled
	}
}

// Stalled reports whether a timed out write is still blocked.
func (tw *TimeoutWriter) Stalled() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.pending == nil {
		return false
	}
	select {
	case <-tw.pending:
		tw.pending = nil
		return false
	default:
		return true
	}
}

// Close marks the writer closed. It does not close the wrapped writer.
func (tw *TimeoutWriter) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.closed = true
	return nil
}

// Stats returns the bytes written and the number of stalled writes.
func (tw *TimeoutWriter) Stats() (bytesWritten, stalls int64) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.bytesWritten, tw.stalls
}
