package session

import (
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{61, "0:01:01"},
		{3600, "1:00:00"},
		{36061, "10:01:01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestRenderCardDefaultTemplate(t *testing.T) {
	snap := tracker.Snapshot{
		State:      tracker.Summary,
		PointCount: 1234,
		StartedAt:  time.Now().Add(-2 * time.Hour),
		Metrics: models.Metrics{
			DistanceKm:     8.456,
			ElapsedSeconds: 7265,
			ElevationGainM: 612.4,
			MaxAltitudeM:   2101,
			HasMaxAltitude: true,
			AvgSpeedKmh:    4.19,
			Calories:       1017,
		},
	}

	card := RenderCard(config.DefaultSummaryTemplate, snap)

	for _, want := range []string{
		"started 2 hours ago",
		"8.46 km",
		"2:01:05",
		"+612 m (max 2101 m)",
		"4.2 km/h",
		"1,017 kcal",
		"1,234",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
	if strings.Contains(card, "Heart rate") {
		t.Errorf("card shows heart rate without a reading:\n%s", card)
	}
}

func TestRenderCardHeartRate(t *testing.T) {
	snap := tracker.Snapshot{State: tracker.Summary, HeartRate: 132}
	card := RenderCard(config.DefaultSummaryTemplate, snap)
	if !strings.Contains(card, "Heart rate 132 bpm") {
		t.Errorf("card missing heart rate:\n%s", card)
	}
	if !strings.Contains(card, "not started") {
		t.Errorf("card missing start placeholder:\n%s", card)
	}
}

func TestRenderCardBrokenTemplate(t *testing.T) {
	snap := tracker.Snapshot{Metrics: models.Metrics{DistanceKm: 1.5, Calories: 12}}
	card := RenderCard("{{#open}}", snap)
	if !strings.Contains(card, "1.50 km") || !strings.Contains(card, "12 kcal") {
		t.Errorf("fallback card = %q", card)
	}
}
