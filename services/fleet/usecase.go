package fleet

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// MatchingPolicy assigns available vehicles to open requests
type MatchingPolicy interface {
	Match(ctx context.Context, t int64, vehicles []models.VehicleState, requests []models.Request) ([]models.MatchCommand, error)
}

// DispatchPolicy repositions vehicles that are not serving anyone
type DispatchPolicy interface {
	Dispatch(ctx context.Context, t int64, vehicles []models.VehicleState) ([]models.DispatchCommand, error)
}

// Snapshot is the state published after every tick
type Snapshot struct {
	Summary  models.TickSummary    `json:"summary"`
	Vehicles []models.VehicleState `json:"vehicles"`
}

// SnapshotReader exposes the latest published snapshot
type SnapshotReader interface {
	Latest() (Snapshot, bool)
}
