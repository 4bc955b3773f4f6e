package utils

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

// ToPoint converts a location to an orb point (lon, lat)
func ToPoint(l models.Location) orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// FromPoint converts an orb point to a location
func FromPoint(p orb.Point) models.Location {
	return models.Location{Latitude: p.Lat(), Longitude: p.Lon()}
}

// ToLineString converts a path to an orb line string
func ToLineString(path []models.Location) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, l := range path {
		ls[i] = ToPoint(l)
	}
	return ls
}

// GreatCircleDistance returns the distance between two locations in meters
func GreatCircleDistance(a, b models.Location) float64 {
	return geo.Distance(ToPoint(a), ToPoint(b))
}

// Bearing returns the initial bearing from a to b in degrees
func Bearing(a, b models.Location) float64 {
	return geo.Bearing(ToPoint(a), ToPoint(b))
}

// EndLocation returns the location reached by travelling distance meters from
// origin along bearing degrees
func EndLocation(origin models.Location, bearing, distance float64) models.Location {
	return FromPoint(geo.PointAtBearingAndDistance(ToPoint(origin), bearing, distance))
}

// PathLength returns the length of a path in meters
func PathLength(path []models.Location) float64 {
	if len(path) < 2 {
		return 0
	}
	return geo.Length(ToLineString(path))
}

// Centroid returns the arithmetic mean of the given locations
func Centroid(locations []models.Location) models.Location {
	if len(locations) == 0 {
		return models.Location{}
	}
	var lat, lon float64
	for _, l := range locations {
		lat += l.Latitude
		lon += l.Longitude
	}
	n := float64(len(locations))
	return models.Location{Latitude: lat / n, Longitude: lon / n}
}
