package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/gpx"
	"github.com/neilberkman/trailwatch/internal/core/journal"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

// GetSessionMetricsArgs defines arguments for the get_session_metrics tool
type GetSessionMetricsArgs struct {
	WeightKg float64 `json:"weight_kg,omitempty" jsonschema:"description=Override the configured body weight in kg"`
	MET      float64 `json:"met,omitempty" jsonschema:"description=Override the configured MET value"`
}

// ExportSessionGPXArgs defines arguments for the export_session_gpx tool
type ExportSessionGPXArgs struct {
	Creator string `json:"creator,omitempty" jsonschema:"description=GPX creator attribute (default: from config)"`
}

// GetRecentPointsArgs defines arguments for the get_recent_points tool
type GetRecentPointsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max points to return, newest last (default: 20)"`
}

// SessionMetrics is the journaled session as reported to clients
type SessionMetrics struct {
	State          string   `json:"state"`
	StartedAt      string   `json:"started_at"`
	ElapsedSeconds int      `json:"elapsed_seconds"`
	DistanceKm     float64  `json:"distance_km"`
	ElevationGainM float64  `json:"elevation_gain_m"`
	MaxAltitudeM   *float64 `json:"max_altitude_m,omitempty"`
	SpeedKmh       float64  `json:"speed_kmh"`
	AvgSpeedKmh    float64  `json:"avg_speed_kmh"`
	Calories       int      `json:"calories"`
	PointCount     int      `json:"point_count"`
	HeartRate      int      `json:"heart_rate,omitempty"`
}

// TrackPoint is one recorded point as reported to clients
type TrackPoint struct {
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lon"`
	Altitude  *float64 `json:"ele,omitempty"`
	Time      string   `json:"time"`
	SpeedMps  *float64 `json:"speed_mps,omitempty"`
}

// StartServer starts the MCP server
func StartServer(dbPath string) error {
	jr, err := journal.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if closeErr := jr.Close(); closeErr != nil {
			log.Printf("Error closing journal: %v", closeErr)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return server.ServeStdio(NewServer(jr, cfg))
}

// NewServer registers the session tools over jr
func NewServer(jr *journal.Journal, cfg *config.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Trailwatch",
		"1.0.0",
	)

	metricsTool := mcp.NewTool("get_session_metrics",
		mcp.WithDescription("Get distance, elevation gain, speed, calories and elapsed time of the current or last unfinished hiking session"),
		mcp.WithNumber("weight_kg",
			mcp.Description("Override the configured body weight in kg")),
		mcp.WithNumber("met",
			mcp.Description("Override the configured MET value")),
	)
	s.AddTool(metricsTool, makeGetSessionMetricsHandler(jr, cfg))

	exportTool := mcp.NewTool("export_session_gpx",
		mcp.WithDescription("Export the recorded track of the current or last unfinished hiking session as a GPX 1.1 document"),
		mcp.WithString("creator",
			mcp.Description("GPX creator attribute (default: from config)")),
	)
	s.AddTool(exportTool, makeExportSessionGPXHandler(jr, cfg))

	pointsTool := mcp.NewTool("get_recent_points",
		mcp.WithDescription("Get the most recently recorded track points of the current session"),
		mcp.WithNumber("limit",
			mcp.Description("Max points to return, newest last (default: 20)")),
	)
	s.AddTool(pointsTool, makeGetRecentPointsHandler(jr))

	return s
}

func makeGetSessionMetricsHandler(jr *journal.Journal, cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionMetricsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		rec, err := jr.Load()
		if err != nil {
			return loadError(err), nil
		}

		met, weight := cfg.MET, cfg.WeightKg
		if args.MET > 0 {
			met = args.MET
		}
		if args.WeightKg > 0 {
			weight = args.WeightKg
		}

		// Rebuild metrics by replaying the journaled points
		state, _ := tracker.ParseState(rec.State)
		t := tracker.New(tracker.WithCalorieModel(met, weight))
		t.Restore(state, rec.Points, rec.ElapsedSeconds, rec.StartedAt)
		snap := t.Snapshot()
		m := snap.Metrics

		result := SessionMetrics{
			State:          rec.State,
			StartedAt:      rec.StartedAt.Format(time.RFC3339),
			ElapsedSeconds: m.ElapsedSeconds,
			DistanceKm:     m.DistanceKm,
			ElevationGainM: m.ElevationGainM,
			SpeedKmh:       m.SpeedKmh,
			AvgSpeedKmh:    m.AvgSpeedKmh,
			Calories:       m.Calories,
			PointCount:     snap.PointCount,
			HeartRate:      rec.HeartRate,
		}
		if m.HasMaxAltitude {
			maxAlt := m.MaxAltitudeM
			result.MaxAltitudeM = &maxAlt
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	}
}

func makeExportSessionGPXHandler(jr *journal.Journal, cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ExportSessionGPXArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		rec, err := jr.Load()
		if err != nil {
			return loadError(err), nil
		}

		creator := args.Creator
		if creator == "" {
			creator = cfg.Creator
		}

		data, err := gpx.ExportWithCreator(rec.Points, creator)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGetRecentPointsHandler(jr *journal.Journal) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetRecentPointsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}

		rec, err := jr.Load()
		if err != nil {
			return loadError(err), nil
		}

		points := rec.Points
		if len(points) > limit {
			points = points[len(points)-limit:]
		}

		results := make([]TrackPoint, 0, len(points))
		for _, p := range points {
			tp := TrackPoint{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Time:      p.Time().Format(time.RFC3339),
			}
			if p.HasAltitude {
				alt := p.Altitude
				tp.Altitude = &alt
			}
			if p.HasSpeed {
				speed := p.Speed
				tp.SpeedMps = &speed
			}
			results = append(results, tp)
		}

		jsonBytes, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	}
}

func loadError(err error) *mcp.CallToolResult {
	if errors.Is(err, journal.ErrNoSession) {
		return mcp.NewToolResultError("no session recorded: start one from the watch face")
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to read journal: %v", err))
}
