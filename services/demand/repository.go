package demand

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// DemandRepo defines the interface for reading ride requests issued in a time window
type DemandRepo interface {
	Generate(ctx context.Context, t, timestep int64) ([]models.Request, error)
}
