package cli

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/fitfile"
	"github.com/neilberkman/trailwatch/internal/core/gpx"
	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/sources/battery"
	"github.com/neilberkman/trailwatch/internal/core/sources/location"
)

// loadRecording reads fixes from a GPX or FIT file, chosen by extension
func loadRecording(path string) ([]models.Fix, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return gpx.ParseFile(path)
	case ".fit":
		return fitfile.ParseFile(path)
	default:
		return nil, fmt.Errorf("unsupported recording %s: expected .gpx or .fit", filepath.Base(path))
	}
}

// locationSource replays a recording when one is given and simulates a
// hiker around the configured start otherwise
func locationSource(replayPath string, rate float64, cfg *config.Config) (location.Source, error) {
	if replayPath == "" {
		return location.NewSimulated(cfg.StartLat, cfg.StartLon, cfg.StartAlt, time.Now().UnixNano()), nil
	}

	fixes, err := loadRecording(replayPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load recording: %w", err)
	}
	if rate <= 0 {
		rate = cfg.ReplayRate
	}
	log.Printf("replaying %d fixes from %s at %gx", len(fixes), replayPath, rate)
	return location.NewReplay(fixes, rate), nil
}

// batterySource reads the system battery, falling back to a full one
func batterySource(root string) battery.Source {
	src, err := battery.Discover(root)
	if err != nil {
		log.Printf("battery unavailable, reporting 100%%: %v", err)
		return battery.Fixed(100)
	}
	return src
}
