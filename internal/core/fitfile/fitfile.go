package fitfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tormoder/fit"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

// ErrNoRecords is returned when an activity has no positioned records
var ErrNoRecords = errors.New("no positioned records found in FIT file")

// DefaultAccuracy is used for records without a gps_accuracy field
const DefaultAccuracy = 5.0

const invalidAccuracy = 0xFF

// ParseFile decodes a FIT activity file into fixes
func ParseFile(filename string) ([]models.Fix, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseData(data)
}

// ParseData decodes FIT bytes into fixes
func ParseData(data []byte) ([]models.Fix, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads the record messages of a FIT activity in order, skipping
// records that have no position
func Decode(r io.Reader) ([]models.Fix, error) {
	fitFile, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	return recordsToFixes(activity.Records)
}

func recordsToFixes(records []*fit.RecordMsg) ([]models.Fix, error) {
	var fixes []models.Fix
	for _, rec := range records {
		if rec == nil || rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}

		accuracy := DefaultAccuracy
		if rec.GpsAccuracy != invalidAccuracy {
			accuracy = float64(rec.GpsAccuracy)
		}

		fix := models.NewFix(rec.PositionLat.Degrees(), rec.PositionLong.Degrees(), rec.Timestamp, accuracy)

		// Enhanced fields carry the full range; fall back to the legacy ones.
		if alt := rec.GetEnhancedAltitudeScaled(); !math.IsNaN(alt) {
			fix = fix.WithAltitude(alt)
		} else if alt := rec.GetAltitudeScaled(); !math.IsNaN(alt) {
			fix = fix.WithAltitude(alt)
		}

		if speed := rec.GetEnhancedSpeedScaled(); !math.IsNaN(speed) {
			fix = fix.WithSpeed(speed)
		} else if speed := rec.GetSpeedScaled(); !math.IsNaN(speed) {
			fix = fix.WithSpeed(speed)
		}

		fixes = append(fixes, fix)
	}

	if len(fixes) == 0 {
		return nil, ErrNoRecords
	}
	return fixes, nil
}
