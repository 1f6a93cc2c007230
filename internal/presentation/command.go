package presentation

import "ekkles/internal/slide"

// Command is a navigation command. The set of implementations is closed.
type Command interface {
	// Name is a stable lowercase identifier used in logs and metrics.
	Name() string
	isCommand()
}

// Load replaces the slide sequence. The index is reset to the first slide
// and blank and freeze are cleared.
type Load struct {
	Slides  []slide.Slide
	Session string
}

// Next advances one slide, stopping at the last.
type Next struct{}

// Previous goes back one slide, stopping at the first.
type Previous struct{}

// JumpTo moves to Index, clamped into the slide range.
type JumpTo struct {
	Index int
}

// ToggleBlank flips the blank flag.
type ToggleBlank struct{}

// ToggleFreeze flips the freeze flag.
type ToggleFreeze struct{}

// Normal clears both blank and freeze.
type Normal struct{}

func (Load) Name() string         { return "load" }
func (Next) Name() string         { return "next" }
func (Previous) Name() string     { return "previous" }
func (JumpTo) Name() string       { return "jump" }
func (ToggleBlank) Name() string  { return "blank" }
func (ToggleFreeze) Name() string { return "freeze" }
func (Normal) Name() string       { return "normal" }

func (Load) isCommand()         {}
func (Next) isCommand()         {}
func (Previous) isCommand()     {}
func (JumpTo) isCommand()       {}
func (ToggleBlank) isCommand()  {}
func (ToggleFreeze) isCommand() {}
func (Normal) isCommand()       {}

// CommandNames lists the names of all commands.
func CommandNames() []string {
	return []string{"load", "next", "previous", "jump", "blank", "freeze", "normal"}
}
