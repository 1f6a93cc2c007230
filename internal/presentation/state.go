package presentation

import (
	"fmt"
	"slices"

	"ekkles/internal/slide"
)

// Status is the coarse state of a presentation.
type Status int

const (
	// StatusEmpty presentations have no slides.
	StatusEmpty Status = iota
	// StatusReady presentations have slides and a valid index.
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is the navigation state. The zero value is an empty presentation.
type State struct {
	slides  []slide.Slide
	index   int
	blank   bool
	frozen  bool
	held    View
	session string
}

// Apply returns the state that results from cmd.
func (s State) Apply(cmd Command) State {
	switch c := cmd.(type) {
	case Load:
		return State{slides: slices.Clone(c.Slides), session: c.Session}
	case Next:
		return s.withIndex(s.index + 1)
	case Previous:
		return s.withIndex(s.index - 1)
	case JumpTo:
		return s.withIndex(c.Index)
	case ToggleBlank:
		s.blank = !s.blank
		return s
	case ToggleFreeze:
		if !s.frozen {
			s.held = s.liveView()
		} else {
			s.held = View{}
		}
		s.frozen = !s.frozen
		return s
	case Normal:
		s.blank = false
		s.frozen = false
		s.held = View{}
		return s
	default:
		return s
	}
}

func (s State) withIndex(i int) State {
	if len(s.slides) == 0 {
		return s
	}
	s.index = max(0, min(i, len(s.slides)-1))
	return s
}

// Status reports whether the presentation has slides.
func (s State) Status() Status {
	if len(s.slides) == 0 {
		return StatusEmpty
	}
	return StatusReady
}

// Index returns the current slide index, or -1 when empty.
func (s State) Index() int {
	if len(s.slides) == 0 {
		return -1
	}
	return s.index
}

// Len returns the number of slides.
func (s State) Len() int {
	return len(s.slides)
}

// Blank reports whether the audience surface is blanked.
func (s State) Blank() bool {
	return s.blank
}

// Frozen reports whether the audience surface is frozen.
func (s State) Frozen() bool {
	return s.frozen
}

// Session returns the id of the load that produced the slides.
func (s State) Session() string {
	return s.session
}

// Slides returns a copy of the slide sequence.
func (s State) Slides() []slide.Slide {
	return slices.Clone(s.slides)
}

// ControllerView returns the live view the operator navigates.
func (s State) ControllerView() View {
	v := s.liveView()
	v.Frozen = s.frozen
	return v
}

// PresenterView returns what the audience surface shows: the view captured
// at freeze time while frozen, the live view otherwise.
func (s State) PresenterView() View {
	if s.frozen {
		v := s.held
		v.Frozen = true
		return v
	}
	return s.liveView()
}

func (s State) liveView() View {
	v := View{
		Session: s.session,
		Index:   s.Index(),
		Total:   len(s.slides),
		Blank:   s.blank,
	}
	if v.Index >= 0 {
		v.Slide = s.slides[v.Index]
	}
	return v
}
