// Package output guards writes to presentation devices.
//
// The presenter draws on a terminal it does not control. A terminal paused
// with XOFF, a disconnected serial console or a full pipe can block a write
// indefinitely. TimeoutWriter bounds each write and refuses new writes while
// an earlier one is still stuck, so a stalled device costs dropped frames
// instead of a hung render loop.
package output
