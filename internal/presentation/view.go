package presentation

import "ekkles/internal/slide"

// View is one surface's picture of the presentation.
type View struct {
	Session string      `json:"session,omitempty"`
	Index   int         `json:"index"`
	Total   int         `json:"total"`
	Slide   slide.Slide `json:"slide"`
	Blank   bool        `json:"blank"`
	Frozen  bool        `json:"frozen"`
}

// Empty reports whether the view has no current slide.
func (v View) Empty() bool {
	return v.Index < 0 || v.Total == 0
}

// Visible returns the slide to render, if any. Blank and empty views show
// nothing.
func (v View) Visible() (slide.Slide, bool) {
	if v.Blank || v.Empty() {
		return slide.Slide{}, false
	}
	return v.Slide, true
}
