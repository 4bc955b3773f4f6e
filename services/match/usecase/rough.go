package usecase

import (
	"context"
	"math"

	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

// roughSpeed converts straight-line distance into a pickup time, m/s
const roughSpeed = 8.0

// Match gives each request, in order, the nearest free vehicle within the
// reject distance
func (uc *RoughMatchUC) Match(ctx context.Context, t int64, vehicles []models.VehicleState, requests []models.Request) ([]models.MatchCommand, error) {
	available := availableVehicles(vehicles)
	if len(available) == 0 {
		return nil, nil
	}

	taken := make([]bool, len(available))
	var commands []models.MatchCommand
	for _, r := range requests {
		best, bestDistance := -1, math.Inf(1)
		for i, v := range available {
			if taken[i] {
				continue
			}
			if d := utils.GreatCircleDistance(v.Location, r.Origin); d < bestDistance {
				best, bestDistance = i, d
			}
		}
		if best < 0 || bestDistance >= uc.cfg.RejectDistance {
			continue
		}

		taken[best] = true
		commands = append(commands, models.MatchCommand{
			VehicleID:  available[best].ID,
			CustomerID: r.ID,
			Duration:   bestDistance / roughSpeed,
		})
		if len(commands) == len(available) {
			break
		}
	}
	return commands, nil
}
