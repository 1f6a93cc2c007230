// Command ekklesctl maintains the ekkles library: playlists, songs and
// Bible translations. It works directly on the SQLite database the
// presentation app uses.
//
// Usage:
//
//	ekklesctl [--data-dir DIR] <group> <command> [args]
//
// Playlist positions on the command line are 1-based.
//
//	ekklesctl playlist create "Sunday Service"
//	ekklesctl playlist add-song 1 12
//	ekklesctl playlist add-passage 1 KJV John 3:16-18
//	ekklesctl playlist move 1 3 1
//	ekklesctl song add hymns/*.xml
//	ekklesctl bible import kjv.xml
//	ekklesctl bible load KJV verses.tsv
//	ekklesctl resolve 1
//
// Song files use the OpenSong XML format. Bible files use the Beblia XML
// layout or a tab separated list of book, chapter, verse and text.
package main
