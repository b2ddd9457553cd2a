package mcp

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/journal"
	"github.com/neilberkman/trailwatch/internal/core/models"
)

func newJournal(t *testing.T) *journal.Journal {
	t.Helper()
	jr, err := journal.New(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = jr.Close() })
	return jr
}

func seedSession(t *testing.T, jr *journal.Journal) {
	t.Helper()
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := jr.Begin("active", start); err != nil {
		t.Fatal(err)
	}
	points := []models.Point{
		{Latitude: 0, Longitude: 0, Altitude: 100, HasAltitude: true, Timestamp: start.UnixMilli()},
		{Latitude: 0, Longitude: 0.01, Altitude: 110, HasAltitude: true, Timestamp: start.UnixMilli() + 1000, Speed: 1.5, HasSpeed: true},
	}
	for i, p := range points {
		if err := jr.AppendPoint(i, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := jr.SaveProgress("paused", 3600, 118); err != nil {
		t.Fatal(err)
	}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestGetSessionMetrics(t *testing.T) {
	jr := newJournal(t)
	seedSession(t, jr)

	text, isErr := call(t, makeGetSessionMetricsHandler(jr, config.Defaults()), nil)
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var got SessionMetrics
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got.State != "paused" || got.PointCount != 2 || got.ElapsedSeconds != 3600 {
		t.Errorf("metrics = %+v", got)
	}
	if math.Abs(got.DistanceKm-1.11195) > 0.0002 {
		t.Errorf("DistanceKm = %v, want ~1.11195", got.DistanceKm)
	}
	if got.ElevationGainM != 10 {
		t.Errorf("ElevationGainM = %v, want 10", got.ElevationGainM)
	}
	if got.MaxAltitudeM == nil || *got.MaxAltitudeM != 110 {
		t.Errorf("MaxAltitudeM = %v, want 110", got.MaxAltitudeM)
	}
	if got.Calories != 420 {
		t.Errorf("Calories = %d, want 420", got.Calories)
	}
	if got.HeartRate != 118 {
		t.Errorf("HeartRate = %d, want 118", got.HeartRate)
	}
	if math.Abs(got.SpeedKmh-5.4) > 1e-9 {
		t.Errorf("SpeedKmh = %v, want 5.4", got.SpeedKmh)
	}
}

func TestGetSessionMetricsOverrides(t *testing.T) {
	jr := newJournal(t)
	seedSession(t, jr)

	text, _ := call(t, makeGetSessionMetricsHandler(jr, config.Defaults()), map[string]any{"weight_kg": 90, "met": 4})
	var got SessionMetrics
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if got.Calories != 360 {
		t.Errorf("Calories = %d, want 360", got.Calories)
	}
}

func TestToolsWithoutSession(t *testing.T) {
	jr := newJournal(t)
	cfg := config.Defaults()

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"metrics", makeGetSessionMetricsHandler(jr, cfg)},
		{"export", makeExportSessionGPXHandler(jr, cfg)},
		{"points", makeGetRecentPointsHandler(jr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, tt.handler, nil)
			if !isErr || !strings.Contains(text, "no session recorded") {
				t.Errorf("result = %q (error %v)", text, isErr)
			}
		})
	}
}

func TestExportSessionGPX(t *testing.T) {
	jr := newJournal(t)
	seedSession(t, jr)

	text, isErr := call(t, makeExportSessionGPXHandler(jr, config.Defaults()), map[string]any{"creator": "test-suite"})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	if !strings.Contains(text, `creator="test-suite"`) {
		t.Errorf("GPX missing creator:\n%s", text)
	}
	if n := strings.Count(text, "<trkpt"); n != 2 {
		t.Errorf("trkpt count = %d, want 2", n)
	}
}

func TestGetRecentPoints(t *testing.T) {
	jr := newJournal(t)
	seedSession(t, jr)

	text, isErr := call(t, makeGetRecentPointsHandler(jr), map[string]any{"limit": 1})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var got []TrackPoint
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Longitude != 0.01 {
		t.Fatalf("points = %+v, want the newest point only", got)
	}
	if got[0].SpeedMps == nil || *got[0].SpeedMps != 1.5 {
		t.Errorf("SpeedMps = %v, want 1.5", got[0].SpeedMps)
	}
}
