package fleet

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// EventSink receives vehicle, customer, summary and score records.
// Delivery failures are handled by the sink and never reach the simulation.
type EventSink interface {
	OnEvent(kind models.EventKind, data interface{})
}

// DemandGenerator produces the ride requests issued in [t, t+timestep)
type DemandGenerator interface {
	Generate(ctx context.Context, t, timestep int64) ([]models.Request, error)
}
