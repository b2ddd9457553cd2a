package session

import (
	"fmt"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

// CardData builds the template values for a summary card
func CardData(snap tracker.Snapshot) map[string]interface{} {
	m := snap.Metrics

	started := "not started"
	if !snap.StartedAt.IsZero() {
		started = humanize.Time(snap.StartedAt)
	}

	return map[string]interface{}{
		"state":            snap.State.String(),
		"started":          started,
		"started_at":       snap.StartedAt.Local().Format("Jan 02, 2006 15:04"),
		"distance":         fmt.Sprintf("%.2f", m.DistanceKm),
		"duration":         FormatDuration(m.ElapsedSeconds),
		"elevation":        fmt.Sprintf("%.0f", m.ElevationGainM),
		"has_max_altitude": m.HasMaxAltitude,
		"max_altitude":     fmt.Sprintf("%.0f", m.MaxAltitudeM),
		"speed":            fmt.Sprintf("%.1f", m.SpeedKmh),
		"avg_speed":        fmt.Sprintf("%.1f", m.AvgSpeedKmh),
		"calories":         humanize.Comma(int64(m.Calories)),
		"points":           humanize.Comma(int64(snap.PointCount)),
		"has_heart_rate":   snap.HeartRate > 0,
		"heart_rate":       snap.HeartRate,
	}
}

// RenderCard renders the summary card for snap with a mustache template
func RenderCard(template string, snap tracker.Snapshot) string {
	card, err := mustache.Render(template, CardData(snap))
	if err != nil {
		// Fall back to a plain card if the template is broken
		m := snap.Metrics
		card = fmt.Sprintf("Distance %.2f km, time %s, +%.0f m, %d kcal",
			m.DistanceKm, FormatDuration(m.ElapsedSeconds), m.ElevationGainM, m.Calories)
	}
	return card
}

// FormatDuration renders seconds as H:MM:SS
func FormatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	mm := int(d.Minutes()) % 60
	ss := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
}
