package utils

import (
	"github.com/mmcloughlin/geohash"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	if precision == 0 {
		return ""
	}
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}
