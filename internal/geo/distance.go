package geo

import (
	"errors"
	"math"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371000.0

// Coordinates is a point in degrees. Venue payloads carry [lon, lat] pairs and
// users send (lat, lon); both are converted into this type at the boundary.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// FromLonLat converts a GeoJSON-ordered [lon, lat] pair.
func FromLonLat(pair []float64) (Coordinates, error) {
	if len(pair) < 2 {
		return Coordinates{}, errors.New("coordinates: want [lon, lat] pair")
	}
	return Coordinates{Latitude: pair[1], Longitude: pair[0]}, nil
}

// Valid reports whether c is finite and within latitude/longitude bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) DistanceTo(other Coordinates) int {
	return Distance(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

// Distance returns the great-circle distance in meters rounded to the nearest
// integer (half away from zero).
func Distance(lat1, lon1, lat2, lon2 float64) int {
	rad := func(d float64) float64 { return d * math.Pi / 180.0 }
	phi1, phi2 := rad(lat1), rad(lat2)
	dphi := rad(lat2 - lat1)
	dlambda := rad(lon2 - lon1)
	a := math.Sin(dphi/2)*math.Sin(dphi/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dlambda/2)*math.Sin(dlambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(EarthRadius * c))
}
