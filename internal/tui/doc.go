// Package tui provides the two presentation surfaces of ekkles.
//
// The controller is a bubbletea program the operator drives from the
// keyboard. The presenter renders what the audience sees to a terminal or
// file on its own ticker. Both read the shared state through their own
// surface.Reader; only the controller issues commands.
package tui
