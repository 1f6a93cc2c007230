package importer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ekkles/internal/scripture"
)

const maxLineSize = 1 << 20

// ParseVerseList reads "book<TAB>chapter<TAB>verse<TAB>text" lines. Blank
// lines and lines starting with '#' are skipped.
func ParseVerseList(r io.Reader) ([]scripture.Verse, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var verses []scripture.Verse
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 tab separated fields, got %d", lineNo, len(fields))
		}

		book := strings.TrimSpace(fields[0])
		if book == "" {
			return nil, fmt.Errorf("line %d: empty book", lineNo)
		}
		chapter, err := positive(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: chapter: %w", lineNo, err)
		}
		verse, err := positive(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: verse: %w", lineNo, err)
		}
		text := strings.TrimSpace(fields[3])
		if text == "" {
			return nil, fmt.Errorf("line %d: empty verse text", lineNo)
		}

		verses = append(verses, scripture.Verse{
			Reference: scripture.Reference{Book: book, Chapter: chapter, Verse: verse},
			Text:      text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read verse list: %w", err)
	}
	return verses, nil
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}
