// Package slide defines the atomic unit of presentable content shared by
// songs and scripture.
//
// A [Slide] carries one or more payload lines, a [Provenance] describing the
// source that produced it (a song part tag or a verse citation), and its
// position within the flattened playlist sequence. Slides are immutable once
// produced: the payload is only reachable through accessors that return
// copies, and repositioning returns a new value. Whole sequences are
// regenerated rather than patched when a playlist changes.
package slide
