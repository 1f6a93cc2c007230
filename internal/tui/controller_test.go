package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ekkles/internal/presentation"
	"ekkles/internal/slide"
	"ekkles/internal/surface"
)

// blockingCommand holds the synchronizer lock: Apply asks for its name
// while still locked, and Name waits for release.
type blockingCommand struct {
	presentation.Command
	entered chan struct{}
	release chan struct{}
}

func (c blockingCommand) Name() string {
	close(c.entered)
	<-c.release
	return "blocking"
}

func makeSlides(n int) []slide.Slide {
	slides := make([]slide.Slide, n)
	for i := range slides {
		slides[i] = slide.FromText(fmt.Sprintf("line %d", i+1), slide.Provenance{
			Kind:  slide.KindSong,
			Label: fmt.Sprintf("V%d", i+1),
		}).WithPosition(i)
	}
	return slides
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

func loadedModel(t *testing.T, n int) (Model, *surface.Synchronizer) {
	t.Helper()
	sync := surface.New()
	if _, ok := sync.Load(makeSlides(n)); !ok {
		t.Fatal("Load dropped")
	}
	return NewModel(sync, "Sunday", nil), sync
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNavigationKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"down"}, 1},
		{"j", []string{"j", "j"}, 2},
		{"space", []string{"space"}, 1},
		{"up clamps", []string{"up", "k"}, 0},
		{"down then up", []string{"j", "j", "k"}, 1},
		{"end", []string{"end"}, 5},
		{"end then home", []string{"end", "home"}, 0},
		{"next clamps", []string{"end", "j", "j"}, 5},
		{"jump", []string{"4", "enter"}, 3},
		{"jump two digits clamps", []string{"1", "2", "enter"}, 5},
		{"jump zero clamps", []string{"0", "enter"}, 0},
		{"backspace edits digits", []string{"3", "5", "backspace", "enter"}, 2},
		{"esc clears digits", []string{"3", "esc", "enter"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := loadedModel(t, 6)
			m, _ = press(t, m, tt.keys...)
			if got := m.snap.State.Index(); got != tt.want {
				t.Errorf("Index() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			t.Parallel()

			m, _ := loadedModel(t, 2)
			_, cmd := press(t, m, k)
			if !isQuit(cmd) {
				t.Errorf("%q should quit", k)
			}
		})
	}
}

func TestBlankFreezeNormal(t *testing.T) {
	t.Parallel()

	m, sync := loadedModel(t, 6)
	m, _ = press(t, m, "j", "f", "j", "j")

	state := sync.Latest().State
	if !state.Frozen() {
		t.Fatal("state should be frozen")
	}
	if got := state.PresenterView().Index; got != 1 {
		t.Errorf("presenter index = %d, want held 1", got)
	}
	if got := state.ControllerView().Index; got != 3 {
		t.Errorf("controller index = %d, want 3", got)
	}

	m, _ = press(t, m, "b")
	if !m.snap.State.Blank() {
		t.Error("b should blank")
	}

	m, _ = press(t, m, "n")
	state = m.snap.State
	if state.Blank() || state.Frozen() {
		t.Errorf("n should return to normal, blank=%v frozen=%v", state.Blank(), state.Frozen())
	}
	if got := state.PresenterView().Index; got != 3 {
		t.Errorf("presenter index after normal = %d, want 3", got)
	}
}

func TestCommandDroppedWhileBusy(t *testing.T) {
	t.Parallel()

	m, sync := loadedModel(t, 3)

	// Hold the write side the way a concurrent Apply would.
	done := make(chan struct{})
	release := make(chan struct{})
	go func() {
		sync.Apply(blockingCommand{entered: done, release: release})
	}()
	<-done

	m, _ = press(t, m, "j")
	close(release)

	if !strings.Contains(m.status, "dropped") {
		t.Errorf("status = %q, want a dropped notice", m.status)
	}
}

func TestEmptyControllerIgnoresNavigation(t *testing.T) {
	t.Parallel()

	m := NewModel(surface.New(), "", nil)
	m, cmd := press(t, m, "j", "end", "b")
	if cmd != nil {
		t.Errorf("unexpected command %v", cmd)
	}
	if got := m.snap.State.Index(); got != -1 {
		t.Errorf("Index() = %d, want -1", got)
	}
	if !strings.Contains(m.View(), "No slides loaded") {
		t.Error("empty view should say no slides are loaded")
	}
}

func TestReload(t *testing.T) {
	t.Parallel()

	sync := surface.New()
	sync.Load(makeSlides(3))

	calls := 0
	reload := func(context.Context) ([]slide.Slide, error) {
		calls++
		return makeSlides(5), nil
	}
	m := NewModel(sync, "Sunday", reload)
	m, _ = press(t, m, "j", "j")

	m, cmd := press(t, m, "r")
	if cmd == nil || !m.reloading {
		t.Fatal("r should start a reload")
	}
	m2, repeat := press(t, m, "r")
	if repeat != nil {
		t.Error("a second r while reloading should be ignored")
	}

	updated, _ := m2.Update(cmd())
	m = updated.(Model)

	if calls != 1 {
		t.Errorf("reload called %d times, want 1", calls)
	}
	if got := m.snap.State.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := m.snap.State.Index(); got != 0 {
		t.Errorf("Index() after reload = %d, want 0", got)
	}
	if m.reloading || m.errorText != "" {
		t.Errorf("reloading=%v error=%q", m.reloading, m.errorText)
	}
}

func TestReloadFailureKeepsPresentation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  ReloadedMsg
		want string
	}{
		{"error", ReloadedMsg{Err: errors.New("database is locked")}, "database is locked"},
		{"empty", ReloadedMsg{}, "no slides"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, sync := loadedModel(t, 3)
			before := sync.Latest().State.Session()

			updated, _ := m.Update(tt.msg)
			m = updated.(Model)

			if !strings.Contains(m.errorText, tt.want) {
				t.Errorf("errorText = %q, want it to mention %q", m.errorText, tt.want)
			}
			if sync.Latest().State.Session() != before {
				t.Error("a failed reload must not replace the presentation")
			}
		})
	}
}

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	t.Parallel()

	m, sync := loadedModel(t, 4)
	sync.Load(makeSlides(2))

	updated, cmd := m.Update(refreshMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Error("refresh should schedule the next refresh")
	}
	if got := m.snap.State.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m, _ := loadedModel(t, 3)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Sunday", "slide 1/3", "line 1", "Next: line 2", "Presenter: slide 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(t, m, "f", "j", "b", "7")
	view = m.View()
	for _, want := range []string{"slide 2/3", "BLANK", "FROZEN", "Presenter: holding slide 1", "Jump to: 7_"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
