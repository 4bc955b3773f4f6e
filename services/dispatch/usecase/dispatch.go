package usecase

import (
	"context"

	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

// Dispatch returns commands for the idle vehicles last commanded at least
// half an update cycle ago and the cruising ones last commanded at least a
// full cycle ago
func (uc *RandomCruiseUC) Dispatch(ctx context.Context, t int64, vehicles []models.VehicleState) ([]models.DispatchCommand, error) {
	due := uc.dueVehicles(t, vehicles)
	if len(due) == 0 {
		return nil, nil
	}

	var commands []models.DispatchCommand
	for _, v := range due {
		if cmd, ok := uc.command(v); ok {
			commands = append(commands, cmd)
		}
		uc.updatedAt[v.ID] = t
	}

	uc.logger.Debug("Dispatch commands ready",
		logger.Int64("t", t),
		logger.Int("due_vehicles", len(due)),
		logger.Int("commands", len(commands)))
	return commands, nil
}

func (uc *RandomCruiseUC) dueVehicles(t int64, vehicles []models.VehicleState) []models.VehicleState {
	var due []models.VehicleState
	for _, v := range vehicles {
		elapsed := t - uc.updatedAt[v.ID]
		switch v.Status {
		case models.VehicleStatusIdle:
			if 2*elapsed >= uc.cfg.MinUpdateCycle {
				due = append(due, v)
			}
		case models.VehicleStatusCruising:
			if elapsed >= uc.cfg.MinUpdateCycle {
				due = append(due, v)
			}
		}
	}
	return due
}

// command picks the action of one vehicle. Staying put yields no command.
func (uc *RandomCruiseUC) command(v models.VehicleState) (models.DispatchCommand, bool) {
	if v.IdleDuration >= uc.cfg.MinDispatchCycle && uc.cfg.OffDutyProbability > uc.rng.Float64() {
		return models.DispatchCommand{VehicleID: v.ID, OffDuty: true}, true
	}

	side := 2*uc.maxMove + 1
	offset := models.Offset{DX: uc.rng.Intn(side) - uc.maxMove, DY: uc.rng.Intn(side) - uc.maxMove}
	if offset == (models.Offset{}) {
		return models.DispatchCommand{}, false
	}

	cell := uc.mesh.LonLatToCell(v.Location)
	target := cell.Add(offset)
	if !uc.mesh.Contains(target) {
		return models.DispatchCommand{}, false
	}

	// vehicles sitting on a cell center can reuse the route cached for the move
	if uc.mesh.CellToLonLat(cell) == v.Location {
		key := models.RouteCacheKey{Cell: cell, Offset: offset}
		return models.DispatchCommand{VehicleID: v.ID, CacheKey: &key}, true
	}
	destination := uc.mesh.CellToLonLat(target)
	return models.DispatchCommand{VehicleID: v.ID, Destination: &destination}, true
}

// Dispatch returns no commands
func (uc *NopUC) Dispatch(ctx context.Context, t int64, vehicles []models.VehicleState) ([]models.DispatchCommand, error) {
	return nil, nil
}
