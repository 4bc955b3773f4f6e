package routing

import (
	"context"
	"errors"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// ErrNoRoute is reported by a backend that found no path between two points
var ErrNoRoute = errors.New("no route")

// ErrBadResponse is returned when the routing backend answers with a payload
// that cannot be interpreted
var ErrBadResponse = errors.New("bad routing response")

// Engine answers route and travel time queries. Unreachable pairs are
// reported with an infinite trip time, never with an error; errors mean the
// whole batch failed.
type Engine interface {
	// Route returns one route per origin-destination pair, in order
	Route(ctx context.Context, pairs []models.ODPair) ([]models.Route, error)
	// ETAManyToMany returns trip times in seconds indexed [origin][destination]
	ETAManyToMany(ctx context.Context, origins, destinations []models.Location) ([][]float64, error)
	// NearestRoad snaps each point onto the road network
	NearestRoad(ctx context.Context, points []models.Location) ([]models.SnappedPoint, error)
	// RouteFromCache returns the route that applies key.Offset to key.Cell
	RouteFromCache(ctx context.Context, key models.RouteCacheKey) (models.Route, error)
}
