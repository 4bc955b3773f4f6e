package dispatch

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// DispatchUC defines the interface for repositioning vehicles that are not serving anyone
type DispatchUC interface {
	Dispatch(ctx context.Context, t int64, vehicles []models.VehicleState) ([]models.DispatchCommand, error)
}
