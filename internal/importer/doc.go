// Package importer reads songs and Bible translations from the file
// formats ekklesctl accepts:
//
//   - OpenSong song files (XML with title, author, presentation and lyrics)
//   - Beblia Bible files (XML bible/testament/book/chapter/verse)
//   - tab separated verse lists (book, chapter, verse, text per line)
//
// Parsers only decode. Book names in verse lists are passed through
// unchanged; callers map them to canonical titles before storing.
package importer
