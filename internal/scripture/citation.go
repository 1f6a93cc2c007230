package scripture

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Citation is a parsed human citation. Book names are as written; callers
// map them to stored titles with MatchBook.
type Citation struct {
	Start Reference
	End   Reference
}

// String formats the citation the same way slides are labelled.
func (c Citation) String() string {
	return FormatRange(c.Start, c.End)
}

// Passage binds the citation to a translation.
func (c Citation) Passage(translationID int64) Passage {
	return Passage{TranslationID: translationID, Start: c.Start, End: c.End}
}

// citationGrammar accepts "Book C:V" optionally followed by "-" and one of
// "V", "C:V" or "Book C:V".
type citationGrammar struct {
	Start *refGrammar `parser:"@@"`
	End   *endGrammar `parser:"( \"-\" @@ )?"`
}

type refGrammar struct {
	Book    *bookGrammar `parser:"@@"`
	Chapter int          `parser:"@Int"`
	Verse   int          `parser:"\":\" @Int"`
}

type bookGrammar struct {
	Head string   `parser:"@(Numbered | Word)"`
	Tail []string `parser:"@Word*"`
}

type endGrammar struct {
	Book   *bookGrammar `parser:"@@?"`
	First  int          `parser:"@Int"`
	Second *int         `parser:"( \":\" @Int )?"`
}

// Numbered book names ("1 John", "2Kings") are lexed as one token so that the
// leading digit is not mistaken for a chapter or verse.
var citationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Numbered", Pattern: `[1-3]\s*\p{L}+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `\p{L}+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var citationParser = participle.MustBuild[citationGrammar](
	participle.Lexer(citationLexer),
	participle.Elide("Whitespace"),
)

// ParseCitation parses citations such as "Genesis 1:1", "Gen 1:1-3",
// "Genesis 1:31-2:3", "1 John 3:16" and "John 21:20 - Acts 1:5".
func ParseCitation(s string) (Citation, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Citation{}, fmt.Errorf("empty citation")
	}
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)

	parsed, err := citationParser.ParseString("", s)
	if err != nil {
		return Citation{}, fmt.Errorf("invalid citation %q: %w", s, err)
	}

	start := Reference{
		Book:    parsed.Start.Book.name(),
		Chapter: parsed.Start.Chapter,
		Verse:   parsed.Start.Verse,
	}
	c := Citation{Start: start, End: start}

	if e := parsed.End; e != nil {
		switch {
		case e.Book != nil:
			if e.Second == nil {
				return Citation{}, fmt.Errorf("invalid citation %q: end reference needs chapter and verse", s)
			}
			c.End = Reference{Book: e.Book.name(), Chapter: e.First, Verse: *e.Second}
		case e.Second != nil:
			c.End = Reference{Book: start.Book, Chapter: e.First, Verse: *e.Second}
		default:
			c.End = Reference{Book: start.Book, Chapter: start.Chapter, Verse: e.First}
		}
	}

	return c, nil
}

func (b *bookGrammar) name() string {
	head := b.Head
	if head != "" && head[0] >= '1' && head[0] <= '3' {
		head = head[:1] + " " + strings.TrimSpace(head[1:])
	}
	return strings.Join(append([]string{head}, b.Tail...), " ")
}
