package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"ekkles/internal/logging"
	"ekkles/internal/presentation"
	"ekkles/internal/slide"
	"ekkles/internal/surface"
)

const (
	refreshInterval = 250 * time.Millisecond
	reloadTimeout   = 30 * time.Second
)

// Reloader re-resolves the playlist being presented.
type Reloader func(ctx context.Context) ([]slide.Slide, error)

// Model is the bubbletea model of the controller surface.
type Model struct {
	sync   *surface.Synchronizer
	reader *surface.Reader
	reload Reloader
	title  string

	snap surface.Snapshot

	// digits typed ahead of enter for a jump
	digits string

	width  int
	height int

	status    string
	errorText string
	reloading bool
}

// NewModel creates the controller for sync. reload may be nil, which
// disables the reload key.
func NewModel(sync *surface.Synchronizer, title string, reload Reloader) Model {
	m := Model{
		sync:   sync,
		reader: sync.Reader("controller"),
		reload: reload,
		title:  title,
	}
	m.snap = m.reader.Snapshot()
	return m
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return refreshCmd()
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func reloadCmd(reload Reloader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		slides, err := reload(ctx)
		return ReloadedMsg{Slides: slides, Err: err}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.snap = m.reader.Snapshot()
		return m, refreshCmd()

	case ReloadedMsg:
		m.reloading = false
		if msg.Err != nil {
			logging.Warn("Reload failed: %v", msg.Err)
			m.errorText = "Reload failed: " + msg.Err.Error()
			return m, nil
		}
		if len(msg.Slides) == 0 {
			m.errorText = "Reload produced no slides; keeping the current presentation"
			return m, nil
		}
		if _, ok := m.sync.Load(msg.Slides); !ok {
			m.errorText = "Presentation busy; reload dropped"
			return m, nil
		}
		m.errorText = ""
		m.status = fmt.Sprintf("Reloaded %d slides", len(msg.Slides))
		m.snap = m.reader.Snapshot()
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		m.digits += key
		return m, nil
	}

	switch key {
	case KeyCtrlC, KeyQuit:
		return m, tea.Quit

	case KeyEsc:
		if m.digits != "" {
			m.digits = ""
			return m, nil
		}
		return m, tea.Quit

	case KeyBackspace:
		if m.digits != "" {
			m.digits = m.digits[:len(m.digits)-1]
		}
		return m, nil

	case KeyEnter:
		if m.digits == "" {
			return m, nil
		}
		n, err := strconv.Atoi(m.digits)
		m.digits = ""
		if err != nil {
			return m, nil
		}
		return m.apply(presentation.JumpTo{Index: n - 1}), nil

	case KeyUp, KeyK:
		return m.apply(presentation.Previous{}), nil

	case KeyDown, KeyJ, KeySpace, KeySpaceName:
		return m.apply(presentation.Next{}), nil

	case KeyHome:
		return m.apply(presentation.JumpTo{Index: 0}), nil

	case KeyEnd:
		return m.apply(presentation.JumpTo{Index: m.snap.State.Len() - 1}), nil

	case KeyBlank:
		return m.apply(presentation.ToggleBlank{}), nil

	case KeyFreeze:
		return m.apply(presentation.ToggleFreeze{}), nil

	case KeyNormal:
		return m.apply(presentation.Normal{}), nil

	case KeyReload:
		if m.reload == nil || m.reloading {
			return m, nil
		}
		m.reloading = true
		m.status = "Reloading playlist..."
		return m, reloadCmd(m.reload)
	}

	return m, nil
}

// apply issues cmd and re-reads the snapshot. A dropped command is
// reported in the status line; the operator can press the key again.
func (m Model) apply(cmd presentation.Command) Model {
	if m.sync.Apply(cmd) {
		m.status = ""
	} else {
		m.status = "Busy: " + cmd.Name() + " dropped"
	}
	m.snap = m.reader.Snapshot()
	return m
}

// View renders the controller.
func (m Model) View() string {
	state := m.snap.State
	view := state.ControllerView()

	var b strings.Builder

	b.WriteString(m.renderHeader(view))
	b.WriteString("\n\n")

	// The operator sees the current slide even while the audience is blanked.
	if !view.Empty() {
		s := view.Slide
		b.WriteString(slideStyle.Render(m.wrap(s.Lines())))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(s.Provenance().String()))
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render("No slides loaded"))
		b.WriteString("\n")
	}

	if next := view.Index + 1; !view.Empty() && next < view.Total {
		lines := state.Slides()[next].Lines()
		preview := ""
		if len(lines) > 0 {
			preview = lines[0]
		}
		b.WriteString(dimStyle.Render("Next: " + preview))
		b.WriteString("\n")
	}

	b.WriteString(m.renderPresenterLine(state.PresenterView()))
	b.WriteString("\n")

	if m.digits != "" {
		b.WriteString(badgeStyle.Render("Jump to: " + m.digits + "_"))
		b.WriteString("\n")
	}
	if m.errorText != "" {
		b.WriteString(errorStyle.Render(m.errorText))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderFooter())
	return b.String()
}

func (m Model) renderHeader(view presentation.View) string {
	header := titleStyle.Render("ekkles")
	if m.title != "" {
		header += titleStyle.Render(" · " + m.title)
	}

	position := "empty"
	if !view.Empty() {
		position = fmt.Sprintf("slide %d/%d", view.Index+1, view.Total)
	}
	header += "  " + positionStyle.Render(position)

	if view.Blank {
		header += "  " + badgeStyle.Render("BLANK")
	}
	if view.Frozen {
		header += "  " + badgeStyle.Render("FROZEN")
	}
	return header
}

func (m Model) renderPresenterLine(view presentation.View) string {
	switch {
	case view.Empty():
		return dimStyle.Render("Presenter: nothing to show")
	case view.Blank && view.Frozen:
		return dimStyle.Render("Presenter: holding a blank screen")
	case view.Blank:
		return dimStyle.Render("Presenter: blank")
	case view.Frozen:
		return dimStyle.Render(fmt.Sprintf("Presenter: holding slide %d", view.Index+1))
	default:
		return dimStyle.Render(fmt.Sprintf("Presenter: slide %d", view.Index+1))
	}
}

// wrap joins lines, word wrapping them to the window when its width is
// known.
func (m Model) wrap(lines []string) string {
	text := strings.Join(lines, "\n")
	if m.width <= 8 {
		return text
	}
	return wordwrap.String(text, m.width-8)
}

func renderFooter() string {
	bindings := []struct{ key, desc string }{
		{"↑/k", "prev"},
		{"↓/j/space", "next"},
		{"home/end", "first/last"},
		{"0-9 enter", "jump"},
		{"b", "blank"},
		{"f", "freeze"},
		{"n", "normal"},
		{"r", "reload"},
		{"q", "quit"},
	}

	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		parts[i] = footerKeyStyle.Render(kb.key) + " " + footerDescStyle.Render(kb.desc)
	}
	return strings.Join(parts, "  ")
}
