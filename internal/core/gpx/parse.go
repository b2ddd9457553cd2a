package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

// ErrNoTrack is returned when a GPX file has no track points
var ErrNoTrack = errors.New("no track points found")

// DefaultAccuracy is assigned to parsed points that carry no hdop
const DefaultAccuracy = 5.0

// hdopToMeters approximates horizontal accuracy from dilution of precision
const hdopToMeters = 5.0

type inputDocument struct {
	Tracks []inputTrack `xml:"trk"`
}

type inputTrack struct {
	Name     string         `xml:"name"`
	Segments []inputSegment `xml:"trkseg"`
}

type inputSegment struct {
	Points []inputPoint `xml:"trkpt"`
}

type inputPoint struct {
	Lat   float64  `xml:"lat,attr"`
	Lon   float64  `xml:"lon,attr"`
	Ele   *float64 `xml:"ele"`
	Time  string   `xml:"time"`
	HDOP  *float64 `xml:"hdop"`
	Speed *float64 `xml:"extensions>speed"`
}

// ParseFile reads all track points of a GPX file as fixes
func ParseFile(path string) (fixes []models.Fix, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Parse(file)
}

// Parse decodes a GPX document into fixes, concatenating every track and
// segment in document order. Points without a timestamp are placed one
// second after their predecessor.
func Parse(r io.Reader) ([]models.Fix, error) {
	var doc inputDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode gpx: %w", err)
	}

	var fixes []models.Fix
	var last time.Time
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				ts, ok := parseTime(pt.Time)
				if !ok {
					if last.IsZero() {
						last = time.Unix(0, 0).UTC()
					}
					ts = last.Add(time.Second)
				}
				last = ts

				accuracy := DefaultAccuracy
				if pt.HDOP != nil {
					accuracy = *pt.HDOP * hdopToMeters
				}

				fix := models.NewFix(pt.Lat, pt.Lon, ts, accuracy)
				if pt.Ele != nil {
					fix = fix.WithAltitude(*pt.Ele)
				}
				if pt.Speed != nil {
					fix = fix.WithSpeed(*pt.Speed)
				}
				fixes = append(fixes, fix)
			}
		}
	}

	if len(fixes) == 0 {
		return nil, ErrNoTrack
	}
	return fixes, nil
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
