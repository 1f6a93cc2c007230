package playlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ekkles/internal/logging"
	"ekkles/internal/metrics"
	"ekkles/internal/scripture"
	"ekkles/internal/slide"
	"ekkles/internal/song"
	"ekkles/internal/workers"
)

// SongStore is the read-only song access the resolver needs.
type SongStore interface {
	// GetSong returns the song with id, or an error wrapping song.ErrNotFound.
	GetSong(ctx context.Context, id int64) (*song.Song, error)
}

// PassageResolver turns a passage into slides. *scripture.Resolver
// implements it.
type PassageResolver interface {
	Slides(ctx context.Context, p scripture.Passage) ([]slide.Slide, error)
}

// Result is the output of a resolution.
type Result struct {
	Slides      []slide.Slide `json:"slides"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
}

// Resolver flattens playlists into slide sequences.
type Resolver struct {
	songs      SongStore
	passages   PassageResolver
	expander   *song.Expander
	skipFailed bool
	workers    int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSkipFailedParts leaves failing parts out of the result instead of
// aborting, recording a Diagnostic for each.
func WithSkipFailedParts() Option {
	return func(r *Resolver) {
		r.skipFailed = true
	}
}

// WithExpander sets the song expander, e.g. one with a custom split policy.
func WithExpander(e *song.Expander) Option {
	return func(r *Resolver) {
		if e != nil {
			r.expander = e
		}
	}
}

// WithWorkers bounds the number of parts fetched concurrently.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewResolver creates a resolver.
func NewResolver(songs SongStore, passages PassageResolver, opts ...Option) *Resolver {
	r := &Resolver{
		songs:    songs,
		passages: passages,
		expander: song.NewExpander(),
		workers:  workers.ForIO(8),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type partResult struct {
	slides []slide.Slide
	err    error
}

// Resolve expands every part of pl and concatenates the slides in part
// order with positions renumbered over the whole playlist.
func (r *Resolver) Resolve(ctx context.Context, pl *Playlist) (*Result, error) {
	start := time.Now()
	results := r.resolveParts(ctx, pl.Parts)

	res := &Result{}
	var all []slide.Slide
	for i, pr := range results {
		if pr.err == nil {
			all = append(all, pr.slides...)
			continue
		}

		kind := pl.Parts[i].Kind()
		metrics.ResolvePartFailures.WithLabelValues(kind, failureReason(pr.err)).Inc()

		if !r.skipFailed {
			metrics.ResolveRunsTotal.WithLabelValues("error").Inc()
			metrics.ResolveDuration.Observe(time.Since(start).Seconds())
			return nil, &ResolutionError{PartIndex: i, Kind: kind, Err: pr.err}
		}

		logging.Warn("Skipping playlist %d part %d (%s): %v", pl.ID, i, kind, pr.err)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			PartIndex: i,
			Kind:      kind,
			Err:       pr.err,
			Message:   pr.err.Error(),
		})
	}

	res.Slides = slide.Renumber(all)

	status := "success"
	if len(res.Diagnostics) > 0 {
		status = "degraded"
	}
	metrics.ResolveRunsTotal.WithLabelValues(status).Inc()
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	metrics.ResolvedSlides.Set(float64(len(res.Slides)))

	logging.Debug("Resolved playlist %d (%q): %d parts, %d slides, %d skipped in %v",
		pl.ID, pl.Name, len(pl.Parts), len(res.Slides), len(res.Diagnostics), time.Since(start))

	return res, nil
}

// resolveParts resolves every part on a bounded worker pool. The result
// slice is indexed like parts.
func (r *Resolver) resolveParts(ctx context.Context, parts []Part) []partResult {
	results := make([]partResult, len(parts))
	workers.Each(r.workers, len(parts), func(i int) {
		slides, err := r.resolvePart(ctx, parts[i])
		results[i] = partResult{slides: slides, err: err}
	})
	return results
}

func (r *Resolver) resolvePart(ctx context.Context, part Part) ([]slide.Slide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch p := part.(type) {
	case SongPart:
		s, err := r.songs.GetSong(ctx, p.SongID)
		if err != nil {
			if errors.Is(err, song.ErrNotFound) {
				return nil, &UnknownSongError{SongID: p.SongID}
			}
			return nil, fmt.Errorf("failed to load song %d: %w", p.SongID, err)
		}
		return r.expander.Expand(s)
	case PassagePart:
		return r.passages.Slides(ctx, p.Passage)
	default:
		return nil, fmt.Errorf("unsupported part type %T", part)
	}
}
