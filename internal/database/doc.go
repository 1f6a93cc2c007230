// Package database provides the SQLite store behind ekkles.
//
// It holds songs and their parts, bible translations with their verses, and
// playlists with their ordered parts. Every verse carries a translation-wide
// verse_order that the scripture resolver ranges over; the store keeps it
// dense and in canonical book, chapter and verse order whenever verses are
// added, and migrates older databases that lack it.
//
// The database uses WAL mode with foreign keys enabled. Schema creation and
// migrations run on [New]; the 66 canonical books are seeded there too.
// [Database] implements the read interfaces consumed by the resolvers
// (GetSong, LookupVerse, VersesBetween, GetPlaylist) as well as the
// editing operations used by ekklesctl.
package database
