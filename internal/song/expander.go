package song

import (
	"ekkles/internal/slide"
)

// SplitPolicy distributes the lines of one song part over one or more slides.
// Implementations must return at least one chunk, even for empty input.
type SplitPolicy interface {
	Split(lines []string) [][]string
}

// WholePart keeps every part on a single slide.
type WholePart struct{}

// Split implements SplitPolicy.
func (WholePart) Split(lines []string) [][]string {
	return [][]string{lines}
}

// LinesPerSlide puts at most n lines on each slide. Values below one behave
// like WholePart.
type LinesPerSlide int

// Split implements SplitPolicy.
func (n LinesPerSlide) Split(lines []string) [][]string {
	if n < 1 || len(lines) <= int(n) {
		return [][]string{lines}
	}
	var chunks [][]string
	for start := 0; start < len(lines); start += int(n) {
		end := min(start+int(n), len(lines))
		chunks = append(chunks, lines[start:end])
	}
	return chunks
}

// SplitOnBlankLines starts a new slide at every empty line. The empty lines
// themselves are dropped.
type SplitOnBlankLines struct{}

// Split implements SplitPolicy.
func (SplitOnBlankLines) Split(lines []string) [][]string {
	var chunks [][]string
	var current []string
	for _, line := range lines {
		if line == "" {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	if len(chunks) == 0 {
		return [][]string{{}}
	}
	return chunks
}

// Expander turns songs into slides.
type Expander struct {
	policy SplitPolicy
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithSplitPolicy replaces the default WholePart policy.
func WithSplitPolicy(p SplitPolicy) ExpanderOption {
	return func(e *Expander) {
		if p != nil {
			e.policy = p
		}
	}
}

// NewExpander creates an expander. Without options every part becomes
// exactly one slide.
func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{policy: WholePart{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand produces the slides for s in declared order, one or more per tag
// occurrence. Positions are relative to the song. A tag without lyrics aborts
// the expansion with a *MissingPartError.
func (e *Expander) Expand(s *Song) ([]slide.Slide, error) {
	slides := make([]slide.Slide, 0, len(s.Order))
	for _, tag := range s.Order {
		lyrics, ok := s.Parts[tag]
		if !ok {
			return nil, &MissingPartError{Tag: tag, SongID: s.ID}
		}

		prov := slide.Provenance{Kind: slide.KindSong, Source: s.Title, Label: tag}
		for _, chunk := range e.policy.Split(slide.SplitLines(lyrics)) {
			slides = append(slides, slide.New(chunk, prov).WithPosition(len(slides)))
		}
	}
	return slides, nil
}
