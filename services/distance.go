package services

import (
	"math"

	"github.com/mikczynski/werble-backend/utils"
)

const earthRadiusKm = 6371

// DistanceKm returns the haversine great-circle distance in kilometers
// between two points given in degrees. Pure and deterministic; identical
// points yield 0 and antipodal points are well-defined. Callers are expected
// to reject missing or NaN coordinates before invoking it.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLng1 := lng1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	rLng2 := lng2 * math.Pi / 180

	havLat := math.Pow(math.Sin((rLat2-rLat1)/2), 2)
	havLng := math.Pow(math.Sin((rLng2-rLng1)/2), 2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(havLat+math.Cos(rLat1)*math.Cos(rLat2)*havLng))
}

// validCoordinate reports whether a nullable (latitude, longitude) pair is
// present and inside the standard coordinate domain.
func validCoordinate(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) {
		return false
	}
	return utils.IsValidLatitude(*lat) && utils.IsValidLongitude(*lng)
}
