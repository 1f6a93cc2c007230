package scripture

import (
	"strings"
	"unicode"
)

// Books lists the 66 books in canonical order. The index is the book order
// used by the store.
var Books = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Songs", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// MatchBook finds the title in titles that name refers to. An exact match
// ignoring case and spacing wins; otherwise name must be a prefix of exactly
// one title ("gen", "1 cor", "rev").
func MatchBook(name string, titles []string) (string, bool) {
	key := bookKey(name)
	if key == "" {
		return "", false
	}

	var candidate string
	matches := 0
	for _, title := range titles {
		tk := bookKey(title)
		if tk == key {
			return title, true
		}
		if strings.HasPrefix(tk, key) {
			candidate = title
			matches++
		}
	}
	if matches == 1 {
		return candidate, true
	}
	return "", false
}

func bookKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == '.' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
