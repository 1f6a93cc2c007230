// Package song holds the song model and the song slide expander.
//
// A [Song] declares its performance order as a sequence of part tags
// (for example V1 C V2 C) and maps every tag to its lyrics. [Expander] turns
// a song into one slide per tag occurrence in that order; how the lines of a
// single part are distributed over slides is decided by a [SplitPolicy]. The
// default policy keeps each part on one slide.
package song
