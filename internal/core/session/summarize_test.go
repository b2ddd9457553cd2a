package session

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

func TestSummarize(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	fixes := []models.Fix{
		models.NewFix(0, 0, base, 5).WithAltitude(100),
		models.NewFix(0, 0.01, base.Add(1800*time.Second), 5).WithAltitude(110),
		models.NewFix(0, 0.02, base.Add(3600*time.Second), 30).WithAltitude(105),
	}

	var buf bytes.Buffer
	tr := Summarize(fixes, NewProgressReporter(&buf, len(fixes)))
	snap := tr.Snapshot()

	if snap.State != tracker.Summary {
		t.Errorf("State = %v, want summary", snap.State)
	}
	if snap.Metrics.ElapsedSeconds != 3600 {
		t.Errorf("ElapsedSeconds = %d, want 3600", snap.Metrics.ElapsedSeconds)
	}
	if snap.Metrics.Calories != 420 {
		t.Errorf("Calories = %d, want 420", snap.Metrics.Calories)
	}
	if math.Abs(snap.Metrics.DistanceKm-2*1.11195) > 0.001 {
		t.Errorf("DistanceKm = %v, want ~2.2239", snap.Metrics.DistanceKm)
	}
	if snap.Metrics.ElevationGainM != 10 {
		t.Errorf("ElevationGainM = %v, want 10", snap.Metrics.ElevationGainM)
	}
	if snap.Metrics.Signal != models.SignalFair {
		t.Errorf("Signal = %q, want fair", snap.Metrics.Signal)
	}

	out := buf.String()
	if !strings.Contains(out, "(3/3)") || !strings.Contains(out, "Replayed 3 fixes") {
		t.Errorf("progress output = %q", out)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	tr := Summarize(nil, nil)
	snap := tr.Snapshot()
	if snap.State != tracker.Summary || snap.PointCount != 0 || snap.Metrics.AvgSpeedKmh != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSummarizeCalorieModel(t *testing.T) {
	base := time.Unix(0, 0)
	fixes := []models.Fix{
		models.NewFix(0, 0, base, 5),
		models.NewFix(0, 0, base.Add(time.Hour), 5),
	}
	tr := Summarize(fixes, nil, tracker.WithCalorieModel(4.0, 90))
	if got := tr.Snapshot().Metrics.Calories; got != 360 {
		t.Errorf("Calories = %d, want 360", got)
	}
}
