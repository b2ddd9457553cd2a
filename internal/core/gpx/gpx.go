package gpx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

const (
	// DefaultCreator is written to the gpx creator attribute
	DefaultCreator = "trailwatch"
	// TrackName is the name of the single exported track
	TrackName = "Hiking Session"

	namespace  = "http://www.topografix.com/GPX/1/1"
	timeLayout = "2006-01-02T15:04:05.000Z"
)

// document is the GPX 1.1 subset we write
type document struct {
	XMLName xml.Name `xml:"gpx"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Track   track    `xml:"trk"`
}

type track struct {
	Name    string  `xml:"name"`
	Segment segment `xml:"trkseg"`
}

type segment struct {
	Points []trackPoint `xml:"trkpt"`
}

type trackPoint struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele,omitempty"`
	Time string  `xml:"time"`
}

// Export renders points as a GPX 1.1 document with one track and one segment.
// The same input always produces the same bytes.
func Export(points []models.Point) ([]byte, error) {
	return ExportWithCreator(points, DefaultCreator)
}

// ExportWithCreator is Export with a custom creator attribute
func ExportWithCreator(points []models.Point, creator string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, points, creator); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the GPX document for points to w
func Write(w io.Writer, points []models.Point, creator string) error {
	if creator == "" {
		creator = DefaultCreator
	}

	doc := document{
		Xmlns:   namespace,
		Version: "1.1",
		Creator: creator,
		Track: track{
			Name:    TrackName,
			Segment: segment{Points: make([]trackPoint, 0, len(points))},
		},
	}

	for _, p := range points {
		tp := trackPoint{
			Lat:  formatCoord(p.Latitude),
			Lon:  formatCoord(p.Longitude),
			Time: p.Time().Format(timeLayout),
		}
		if p.HasAltitude {
			ele := strconv.FormatFloat(p.Altitude, 'f', -1, 64)
			tp.Ele = &ele
		}
		doc.Track.Segment.Points = append(doc.Track.Segment.Points, tp)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode gpx: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FileName is the download name for a session exported on date
func FileName(date time.Time) string {
	return fmt.Sprintf("hike-%s.gpx", date.Format("2006-01-02"))
}
