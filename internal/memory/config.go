package memory

import (
	"math"
	"runtime/debug"
	"strconv"

	"ekkles/internal/logging"
)

// DefaultRatio is the share of the container limit used for the Go heap.
// The rest covers goroutine stacks, cgo (SQLite) and the terminal.
const DefaultRatio = 0.85

// Source names where the limit came from.
const (
	SourceGoMemLimit  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
	SourceNone        = "none"
)

// Limit describes the outcome of ConfigureLimit.
type Limit struct {
	Source string
	// Container is MEMORY_LIMIT in bytes, 0 when unset.
	Container int64
	// Heap is the runtime memory limit in bytes, 0 when none applies.
	Heap  int64
	Ratio float64
}

// Configured reports whether a heap limit is in effect.
func (l Limit) Configured() bool {
	return l.Heap > 0
}

// ConfigureLimit applies MEMORY_LIMIT and MEMORY_RATIO as read through
// getenv, unless GOMEMLIMIT is set.
func ConfigureLimit(getenv func(string) string) Limit {
	if v := getenv("GOMEMLIMIT"); v != "" {
		l := Limit{Source: SourceGoMemLimit}
		if current := debug.SetMemoryLimit(-1); current > 0 && current < math.MaxInt64 {
			l.Heap = current
		}
		logging.Info("GOMEMLIMIT set via environment: %s", v)
		return l
	}

	raw := getenv("MEMORY_LIMIT")
	if raw == "" {
		logging.Debug("MEMORY_LIMIT not set, leaving GOMEMLIMIT unset")
		return Limit{Source: SourceNone}
	}
	container, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || container <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return Limit{Source: SourceNone}
	}

	ratio := parseRatio(getenv("MEMORY_RATIO"))
	heap := int64(float64(container) * ratio)
	debug.SetMemoryLimit(heap)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		formatBytes(heap), ratio*100, formatBytes(container))

	return Limit{Source: SourceMemoryLimit, Container: container, Heap: heap, Ratio: ratio}
}

func parseRatio(raw string) float64 {
	if raw == "" {
		return DefaultRatio
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio <= 0 || ratio > 1 {
		logging.Warn("MEMORY_RATIO %q must be in (0, 1], using %.2f", raw, DefaultRatio)
		return DefaultRatio
	}
	return ratio
}

// formatBytes formats b with binary units, e.g. "1.5 GiB".
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
