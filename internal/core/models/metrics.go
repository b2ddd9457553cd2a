package models

// SignalQuality is a coarse bucket for the most recent fix's accuracy
type SignalQuality string

const (
	SignalNone SignalQuality = "none"
	SignalGood SignalQuality = "good"
	SignalFair SignalQuality = "fair"
	SignalPoor SignalQuality = "poor"
)

// ClassifySignal buckets a reported horizontal accuracy in meters
func ClassifySignal(accuracy float64) SignalQuality {
	switch {
	case accuracy < 20:
		return SignalGood
	case accuracy < 50:
		return SignalFair
	default:
		return SignalPoor
	}
}

// Metrics are derived from the point log and the tick count.
// They are never stored apart from the points they came from.
type Metrics struct {
	DistanceKm     float64
	ElapsedSeconds int
	ElevationGainM float64
	MaxAltitudeM   float64
	HasMaxAltitude bool
	SpeedKmh       float64
	AvgSpeedKmh    float64
	Calories       int
	Signal         SignalQuality
}
