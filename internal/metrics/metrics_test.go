package metrics

import (
	"testing"

	"ekkles/internal/presentation"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
		{"DBQueryTotal", DBQueryTotal},
		{"DBQueryDuration", DBQueryDuration},
		{"DBTransactionDuration", DBTransactionDuration},
		{"DBConnectionsOpen", DBConnectionsOpen},
		{"DBSizeBytes", DBSizeBytes},
		{"ResolveRunsTotal", ResolveRunsTotal},
		{"ResolveDuration", ResolveDuration},
		{"ResolvePartFailures", ResolvePartFailures},
		{"ResolvedSlides", ResolvedSlides},
		{"SurfaceCommandsTotal", SurfaceCommandsTotal},
		{"SurfaceDroppedWrites", SurfaceDroppedWrites},
		{"SurfaceContendedReads", SurfaceContendedReads},
		{"SurfaceSnapshotVersion", SurfaceSnapshotVersion},
		{"PresenterFramesTotal", PresenterFramesTotal},
		{"PresenterOutputStallsTotal", PresenterOutputStallsTotal},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestMetricLabels(_ *testing.T) {
	// Wrong label cardinality panics, so these double as type checks.
	HTTPRequestsTotal.WithLabelValues("GET", "/test", "200").Add(0)
	HTTPRequestDuration.WithLabelValues("GET", "/test").Observe(0.1)
	DBQueryTotal.WithLabelValues("get_song", "success").Add(0)
	DBQueryDuration.WithLabelValues("get_song").Observe(0.001)
	DBTransactionDuration.WithLabelValues("commit").Observe(0.001)
	ResolveRunsTotal.WithLabelValues("success").Add(0)
	ResolvePartFailures.WithLabelValues("song", "unknown_song").Add(0)
	SurfaceCommandsTotal.WithLabelValues("next").Add(0)
	SurfaceContendedReads.WithLabelValues("presenter").Add(0)
}

func TestInitializeMetrics(t *testing.T) {
	InitializeMetrics()

	// Second call must be harmless.
	InitializeMetrics()

	if len(presentation.CommandNames()) == 0 {
		t.Fatal("no command names to pre-populate")
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.0.0", "abc123", "go1.25")

	if got := gaugeValue(t, AppInfo.WithLabelValues("1.0.0", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}
