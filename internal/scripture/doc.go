// Package scripture resolves scripture passages into ordered verses and
// slides.
//
// Every verse stored for a translation carries a translation-wide, dense,
// monotonically increasing verse order. Ranges are resolved by comparing the
// verse order of their endpoints rather than book, chapter and verse numbers,
// so a passage may cross chapter and book boundaries (John 21:20 - Acts 1:5).
//
// The package also parses human citations such as "1 John 3:16-18" or
// "Genesis 1:31-2:3" with a small participle grammar, and knows the canonical
// list of the 66 books used to seed the store.
package scripture
