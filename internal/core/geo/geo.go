package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two lat/lon pairs in km
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := toRadians(lat1)
	φ2 := toRadians(lat2)
	Δφ := toRadians(lat2 - lat1)
	Δλ := toRadians(lon2 - lon1)

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Offset moves a position by north/east distances in meters.
// Small-distance approximation, fine for simulated walking.
func Offset(lat, lon, northM, eastM float64) (float64, float64) {
	dLat := northM / (EarthRadiusKm * 1000)
	dLon := eastM / (EarthRadiusKm * 1000 * math.Cos(toRadians(lat)))
	return lat + dLat*180/math.Pi, lon + dLon*180/math.Pi
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
