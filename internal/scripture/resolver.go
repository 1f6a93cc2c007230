package scripture

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ekkles/internal/slide"
)

// VerseStore is the read-only verse access the resolver needs.
type VerseStore interface {
	// LookupVerse returns the verse at ref, or an error wrapping ErrNotFound.
	LookupVerse(ctx context.Context, translationID int64, ref Reference) (Verse, error)
	// VersesBetween returns the verses whose order lies in [from, to],
	// ascending.
	VersesBetween(ctx context.Context, translationID int64, from, to int64) ([]Verse, error)
}

// TranslationNamer is optionally implemented by a VerseStore to label slides
// with the translation name.
type TranslationNamer interface {
	TranslationName(ctx context.Context, translationID int64) (string, error)
}

// Resolver turns passages into verses and slides.
type Resolver struct {
	store          VerseStore
	versesPerSlide int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithVersesPerSlide groups n consecutive verses on one slide. Values below
// one are ignored.
func WithVersesPerSlide(n int) ResolverOption {
	return func(r *Resolver) {
		if n >= 1 {
			r.versesPerSlide = n
		}
	}
}

// NewResolver creates a resolver reading from store. By default every verse
// becomes one slide.
func NewResolver(store VerseStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store, versesPerSlide: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Verses returns all verses of p ordered by verse order. Both endpoints must
// exist and the end must not precede the start.
func (r *Resolver) Verses(ctx context.Context, p Passage) ([]Verse, error) {
	start, err := r.lookup(ctx, p.TranslationID, p.Start)
	if err != nil {
		return nil, err
	}
	end, err := r.lookup(ctx, p.TranslationID, p.End)
	if err != nil {
		return nil, err
	}

	if end.Order < start.Order {
		return nil, &ReversedRangeError{Start: p.Start, End: p.End}
	}

	verses, err := r.store.VersesBetween(ctx, p.TranslationID, start.Order, end.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to load verses for %s: %w", p, err)
	}
	return verses, nil
}

// Slides resolves p and groups its verses into slides. Positions are
// relative to the passage.
func (r *Resolver) Slides(ctx context.Context, p Passage) ([]slide.Slide, error) {
	verses, err := r.Verses(ctx, p)
	if err != nil {
		return nil, err
	}

	source := ""
	if namer, ok := r.store.(TranslationNamer); ok {
		if name, err := namer.TranslationName(ctx, p.TranslationID); err == nil {
			source = name
		}
	}

	slides := make([]slide.Slide, 0, (len(verses)+r.versesPerSlide-1)/r.versesPerSlide)
	for start := 0; start < len(verses); start += r.versesPerSlide {
		group := verses[start:min(start+r.versesPerSlide, len(verses))]
		slides = append(slides, groupSlide(group, source).WithPosition(len(slides)))
	}
	return slides, nil
}

func (r *Resolver) lookup(ctx context.Context, translationID int64, ref Reference) (Verse, error) {
	v, err := r.store.LookupVerse(ctx, translationID, ref)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Verse{}, &ReferenceNotFoundError{TranslationID: translationID, Reference: ref}
		}
		return Verse{}, fmt.Errorf("failed to look up %s: %w", ref, err)
	}
	return v, nil
}

func groupSlide(group []Verse, source string) slide.Slide {
	first, last := group[0], group[len(group)-1]
	prov := slide.Provenance{
		Kind:   slide.KindScripture,
		Source: source,
		Label:  FormatRange(first.Reference, last.Reference),
	}

	if len(group) == 1 {
		return slide.FromText(first.Text, prov)
	}

	var lines []string
	for _, v := range group {
		verseLines := slide.SplitLines(v.Text)
		if len(verseLines) == 0 {
			verseLines = []string{""}
		}
		verseLines[0] = strconv.Itoa(v.Verse) + " " + verseLines[0]
		lines = append(lines, verseLines...)
	}
	return slide.New(lines, prov)
}
