package usecase

import (
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
	"github.com/piresc/fleetsim/services/match"
)

// GreedyMatchUC matches requests to vehicles bucket by bucket using routed ETAs
type GreedyMatchUC struct {
	cfg       models.MatchConfig
	mesh      *utils.Mesh
	routingGW match.RoutingGW
	logger    *logger.ZapLogger
}

// NewGreedyMatchUC creates a new greedy match use case
func NewGreedyMatchUC(
	cfg models.MatchConfig,
	mesh *utils.Mesh,
	routingGW match.RoutingGW,
	log *logger.ZapLogger,
) *GreedyMatchUC {
	if cfg.K < 1 {
		cfg.K = 1
	}
	if cfg.MaxLocations < 1 {
		cfg.MaxLocations = 1
	}
	if cfg.CandidateFactor < 1 {
		cfg.CandidateFactor = 1
	}
	return &GreedyMatchUC{
		cfg:       cfg,
		mesh:      mesh,
		routingGW: routingGW,
		logger:    log,
	}
}

// RoughMatchUC matches each request to the nearest vehicle in straight line
type RoughMatchUC struct {
	cfg models.MatchConfig
}

// NewRoughMatchUC creates a new rough match use case
func NewRoughMatchUC(cfg models.MatchConfig) *RoughMatchUC {
	return &RoughMatchUC{cfg: cfg}
}

// availableVehicles keeps the vehicles that may take a request this tick.
// A vehicle that became available during this tick has a zero idle duration
// and waits one more tick.
func availableVehicles(vehicles []models.VehicleState) []models.VehicleState {
	out := make([]models.VehicleState, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Status.Available() && v.IdleDuration > 0 {
			out = append(out, v)
		}
	}
	return out
}
