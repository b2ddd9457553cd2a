package models

import (
	"errors"
	"math"
	"time"
)

// Point is one recorded GPS fix in a session's track log
type Point struct {
	Latitude    float64 // degrees
	Longitude   float64 // degrees
	Altitude    float64 // meters, valid only when HasAltitude
	HasAltitude bool
	Timestamp   int64   // epoch milliseconds
	Speed       float64 // m/s, valid only when HasSpeed
	HasSpeed    bool
}

// Time returns the point timestamp as a UTC time
func (p Point) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Fix is a position sample as delivered by a location source
type Fix struct {
	Point
	Accuracy float64 // horizontal accuracy in meters
}

// NewFix builds a fix without altitude or speed
func NewFix(lat, lon float64, ts time.Time, accuracy float64) Fix {
	return Fix{
		Point: Point{
			Latitude:  lat,
			Longitude: lon,
			Timestamp: ts.UnixMilli(),
		},
		Accuracy: accuracy,
	}
}

// WithAltitude returns a copy of the fix carrying an altitude.
// Zero is a valid altitude (sea level).
func (f Fix) WithAltitude(meters float64) Fix {
	f.Altitude = meters
	f.HasAltitude = true
	return f
}

// WithSpeed returns a copy of the fix carrying a reported speed in m/s
func (f Fix) WithSpeed(mps float64) Fix {
	f.Speed = mps
	f.HasSpeed = true
	return f
}

// Validate checks that the fix has a usable position
func (f Fix) Validate() error {
	if math.IsNaN(f.Latitude) || math.IsNaN(f.Longitude) {
		return errors.New("position is NaN")
	}
	if f.Latitude < -90 || f.Latitude > 90 {
		return errors.New("latitude out of range")
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		return errors.New("longitude out of range")
	}
	if f.HasAltitude && math.IsNaN(f.Altitude) {
		return errors.New("altitude is NaN")
	}
	return nil
}
