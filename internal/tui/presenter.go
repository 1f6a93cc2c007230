package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"ekkles/internal/metrics"
	"ekkles/internal/output"
	"ekkles/internal/presentation"
	"ekkles/internal/surface"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// clearScreen homes the cursor and clears the display.
	clearScreen = "\x1b[H\x1b[2J"
)

// Presenter renders the audience surface. It never issues commands.
type Presenter struct {
	reader   *surface.Reader
	out      io.Writer
	interval time.Duration
	size     func() (int, int)

	width     int
	height    int
	lastFrame string
	drawn     bool
}

// NewPresenter creates a presenter writing frames to out every interval.
// When out is a terminal the frame follows its size. Writes that block
// longer than the output timeout drop the frame; it is redrawn on the next
// tick.
func NewPresenter(sync *surface.Synchronizer, out io.Writer, interval time.Duration) *Presenter {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &Presenter{
		reader:   sync.Reader("presenter"),
		out:      output.NewTimeoutWriter(out, output.DefaultConfig()),
		interval: interval,
		size:     terminalSize(out),
	}
}

func terminalSize(out io.Writer) func() (int, int) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() (int, int) { return defaultWidth, defaultHeight }
	}
	fd := int(f.Fd())
	return func() (int, int) {
		w, h, err := term.GetSize(fd)
		if err != nil || w <= 0 || h <= 0 {
			return defaultWidth, defaultHeight
		}
		return w, h
	}
}

// Run renders until ctx is done. The first frame is drawn before the first
// tick.
func (p *Presenter) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.Step(); err != nil && !errors.Is(err, output.ErrStalled) {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Step reads the latest snapshot and draws it if the snapshot version or
// the output size changed and the frame differs from the last one drawn.
// It reports whether a frame was written.
func (p *Presenter) Step() (bool, error) {
	snap, changed := p.reader.Poll()
	w, h := p.size()
	if p.drawn && !changed && w == p.width && h == p.height {
		return false, nil
	}
	p.width, p.height = w, h

	// Commands issued while frozen change the version but not the frame.
	frame := RenderFrame(snap.State.PresenterView(), w, h)
	if p.drawn && frame == p.lastFrame {
		return false, nil
	}

	if _, err := io.WriteString(p.out, clearScreen+frame); err != nil {
		p.drawn = false
		return false, err
	}
	p.lastFrame = frame
	p.drawn = true
	metrics.PresenterFramesTotal.Inc()
	return true, nil
}

// RenderFrame lays view out centred in a width x height area. Blank and
// empty views give a frame of spaces.
func RenderFrame(view presentation.View, width, height int) string {
	content := ""
	if s, ok := view.Visible(); ok {
		text := strings.Join(s.Lines(), "\n")
		if width > 4 {
			text = wordwrap.String(text, width-4)
		}
		content = lipgloss.NewStyle().Align(lipgloss.Center).Render(text)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
