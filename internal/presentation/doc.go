// Package presentation implements the navigation state of a running
// presentation.
//
// [State] is a value. Every [Command] is applied with [State.Apply], which
// never mutates the receiver and never fails: out-of-range navigation is
// clamped and commands on an empty presentation leave it empty.
//
// A state has two views. [State.ControllerView] follows every command and is
// what the operator sees. [State.PresenterView] is what the audience sees:
// it is empty while blanked and, while frozen, stays at the view captured
// when the freeze was engaged so the operator can cue up the next slide.
package presentation
