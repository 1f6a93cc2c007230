package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"ekkles/internal/scripture"
)

// Bible is a decoded translation.
type Bible struct {
	Name   string
	Verses []scripture.Verse
}

type bebliaFile struct {
	XMLName     xml.Name          `xml:"bible"`
	Translation string            `xml:"translation,attr"`
	Name        string            `xml:"name,attr"`
	Testaments  []bebliaTestament `xml:"testament"`
	Books       []bebliaBook      `xml:"book"`
}

type bebliaTestament struct {
	Books []bebliaBook `xml:"book"`
}

type bebliaBook struct {
	Number   int             `xml:"number,attr"`
	Chapters []bebliaChapter `xml:"chapter"`
}

type bebliaChapter struct {
	Number int           `xml:"number,attr"`
	Verses []bebliaVerse `xml:"verse"`
}

type bebliaVerse struct {
	Number int    `xml:"number,attr"`
	Text   string `xml:",chardata"`
}

// ParseBeblia decodes a Bible in the Beblia XML layout. Books are numbered
// 1 to 66 in canonical order. Empty verses are skipped.
func ParseBeblia(r io.Reader) (*Bible, error) {
	var f bebliaFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode bible: %w", err)
	}

	b := &Bible{Name: strings.TrimSpace(f.Translation)}
	if b.Name == "" {
		b.Name = strings.TrimSpace(f.Name)
	}
	if b.Name == "" {
		return nil, fmt.Errorf("bible has no translation name")
	}

	books := f.Books
	for _, t := range f.Testaments {
		books = append(books, t.Books...)
	}

	for _, book := range books {
		if book.Number < 1 || book.Number > len(scripture.Books) {
			return nil, fmt.Errorf("book number %d out of range 1-%d", book.Number, len(scripture.Books))
		}
		title := scripture.Books[book.Number-1]
		for _, ch := range book.Chapters {
			for _, v := range ch.Verses {
				text := strings.TrimSpace(v.Text)
				if text == "" {
					continue
				}
				if ch.Number < 1 || v.Number < 1 {
					return nil, fmt.Errorf("%s %d:%d: chapter and verse must be positive", title, ch.Number, v.Number)
				}
				b.Verses = append(b.Verses, scripture.Verse{
					Reference: scripture.Reference{Book: title, Chapter: ch.Number, Verse: v.Number},
					Text:      text,
				})
			}
		}
	}

	if len(b.Verses) == 0 {
		return nil, fmt.Errorf("bible %q contains no verses", b.Name)
	}
	return b, nil
}
