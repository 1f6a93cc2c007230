/*
Package workers sizes and runs small bounded worker pools.

# Sizing

When running in a container the number of usable CPUs may be limited by
cgroup constraints. runtime.NumCPU() still reports the host's CPUs, while
GOMAXPROCS follows the container limit, so the helpers here size pools from
GOMAXPROCS:

	// Part lookups are I/O-bound: 2 workers per CPU, at most 8.
	n := workers.ForIO(8)

ForIO applies a multiplier of 2.0. The
RESOLVE_WORKERS environment variable overrides the computed count (still
capped by the limit):

	RESOLVE_WORKERS=2 ekkles

# Running

Each fans a fixed number of indexed jobs out over a pool and waits for all
of them:

	results := make([]string, len(items))
	workers.Each(workers.ForIO(8), len(items), func(i int) {
		results[i] = lookup(items[i])
	})

Writing results by index keeps the output in input order regardless of
scheduling.
*/
package workers
