// Package playlist models service playlists and resolves them into a flat
// slide sequence.
//
// A [Playlist] is an ordered list of parts. Each [Part] is either a
// [SongPart], which references a stored song by id, or a [PassagePart], which
// embeds a scripture passage directly. Parts are dispatched with a type switch
// over this closed set.
//
// Playlists are edited in memory (append, remove, swap, move, rename) and
// carry a [Status] telling whether they were never saved, are in sync with
// the store, or have unsaved edits. Persisting is the store's job.
//
// # Resolution
//
// [Resolver.Resolve] expands every part with the song expander or the
// scripture resolver, concatenates the results in part order and renumbers
// slide positions over the whole playlist. Parts are fetched by a bounded
// pool of workers; the merged output does not depend on completion order.
//
// By default the first failing part (lowest index) aborts resolution with a
// [*ResolutionError] carrying the part index and the underlying error.
// [WithSkipFailedParts] switches to graceful degradation: failed parts are
// left out and reported as [Diagnostic] values on the [Result].
package playlist
