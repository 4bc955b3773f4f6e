package match

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// RoutingGW defines the routing queries the matching policies depend on
type RoutingGW interface {
	ETAManyToMany(ctx context.Context, origins, destinations []models.Location) ([][]float64, error)
}
