package tui

import "ekkles/internal/slide"

// refreshMsg triggers a re-read of the controller snapshot.
type refreshMsg struct{}

// ReloadedMsg carries a freshly resolved slide sequence.
type ReloadedMsg struct {
	Slides []slide.Slide
	Err    error
}
