package match

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// MatchUC defines the interface for matching available vehicles to open requests
type MatchUC interface {
	Match(ctx context.Context, t int64, vehicles []models.VehicleState, requests []models.Request) ([]models.MatchCommand, error)
}
