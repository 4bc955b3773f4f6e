package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

type candidate struct {
	vehicle  int // index into the available vehicles
	distance float64
}

// Match assigns open requests to available vehicles. Request buckets are
// visited in raster order; for each group of requests the nearby vehicles are
// routed to the request origins in one ETA query and paired greedily by
// smallest ETA. A vehicle assigned in one bucket is not offered again.
func (uc *GreedyMatchUC) Match(ctx context.Context, t int64, vehicles []models.VehicleState, requests []models.Request) ([]models.MatchCommand, error) {
	available := availableVehicles(vehicles)
	if len(available) == 0 || len(requests) == 0 {
		return nil, nil
	}

	vehicleIndex := newBucketIndex(uc.mesh, uc.cfg.K)
	for i, v := range available {
		vehicleIndex.add(i, v.Location)
	}
	requestIndex := newBucketIndex(uc.mesh, uc.cfg.K)
	for i, r := range requests {
		requestIndex.add(i, r.Origin)
	}

	var commands []models.MatchCommand
	width, height := requestIndex.size()
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			bucket := models.Cell{X: x, Y: y}
			rids := requestIndex.at(bucket)
			for start := 0; start < len(rids); start += uc.cfg.MaxLocations {
				group := rids[start:min(start+uc.cfg.MaxLocations, len(rids))]
				matched, err := uc.matchGroup(ctx, bucket, group, available, requests, vehicleIndex)
				if err != nil {
					return nil, err
				}
				commands = append(commands, matched...)
			}
		}
	}

	uc.logger.Debug("Greedy matching done",
		logger.Int64("t", t),
		logger.Int("available_vehicles", len(available)),
		logger.Int("requests", len(requests)),
		logger.Int("matches", len(commands)))
	return commands, nil
}

func (uc *GreedyMatchUC) matchGroup(ctx context.Context, bucket models.Cell, group []int,
	available []models.VehicleState, requests []models.Request, vehicleIndex *bucketIndex) ([]models.MatchCommand, error) {
	nearby := uc.findCandidates(vehicleIndex, bucket, len(group))
	if len(nearby) == 0 {
		return nil, nil
	}

	origins := make([]models.Location, len(group))
	for i, rid := range group {
		origins[i] = requests[rid].Origin
	}
	candidates := uc.filterCandidates(nearby, available, origins)
	if len(candidates) == 0 {
		return nil, nil
	}

	etas, err := uc.etaMatrix(ctx, candidates, available, origins)
	if err != nil {
		return nil, err
	}

	var commands []models.MatchCommand
	for _, p := range assignNearest(etas, uc.cfg.RejectWaitTime) {
		v := candidates[p.vehicle].vehicle
		commands = append(commands, models.MatchCommand{
			VehicleID:  available[v].ID,
			CustomerID: requests[group[p.request]].ID,
			Duration:   p.eta,
		})
		vehicleIndex.remove(v)
	}
	return commands, nil
}

// findCandidates collects vehicles from square rings of buckets around
// bucket until there are more than CandidateFactor per request or the search
// radius is exhausted
func (uc *GreedyMatchUC) findCandidates(index *bucketIndex, bucket models.Cell, nRequests int) []int {
	found := index.ring(bucket, 0)
	for r := 1; r < uc.searchRadius(); r++ {
		if len(found) > uc.cfg.CandidateFactor*nRequests {
			break
		}
		found = append(found, index.ring(bucket, r)...)
	}
	return found
}

// filterCandidates keeps the vehicles close enough to the request centroid,
// nearest first, at most 2N+1 of them
func (uc *GreedyMatchUC) filterCandidates(vehicleIDs []int, available []models.VehicleState, origins []models.Location) []candidate {
	centroid := utils.Centroid(origins)
	limit := uc.cfg.RejectDistance + uc.cfg.UnitLength*float64(uc.cfg.K-1)

	kept := make([]candidate, 0, len(vehicleIDs))
	for _, v := range vehicleIDs {
		d := utils.GreatCircleDistance(available[v].Location, centroid)
		if d < limit {
			kept = append(kept, candidate{vehicle: v, distance: d})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].distance < kept[j].distance })

	if maxKept := 2*len(origins) + 1; len(kept) > maxKept {
		kept = kept[:maxKept]
	}
	return kept
}

// etaMatrix returns ETAs indexed [request][candidate]. Vehicles sharing a
// location are queried once; NaN becomes +Inf.
func (uc *GreedyMatchUC) etaMatrix(ctx context.Context, candidates []candidate, available []models.VehicleState, destinations []models.Location) ([][]float64, error) {
	var locations []models.Location
	rowOf := make([]int, len(candidates))
	seen := make(map[models.Location]int, len(candidates))
	for i, c := range candidates {
		loc := available[c.vehicle].Location
		row, ok := seen[loc]
		if !ok {
			row = len(locations)
			seen[loc] = row
			locations = append(locations, loc)
		}
		rowOf[i] = row
	}

	raw, err := uc.routingGW.ETAManyToMany(ctx, locations, destinations)
	if err != nil {
		return nil, fmt.Errorf("failed to query ETA matrix: %w", err)
	}
	if len(raw) != len(locations) {
		return nil, fmt.Errorf("ETA matrix has %d rows, expected %d", len(raw), len(locations))
	}
	for _, row := range raw {
		if len(row) != len(destinations) {
			return nil, fmt.Errorf("ETA matrix row has %d columns, expected %d", len(row), len(destinations))
		}
	}

	etas := make([][]float64, len(destinations))
	for r := range destinations {
		etas[r] = make([]float64, len(candidates))
		for c := range candidates {
			eta := raw[rowOf[c]][r]
			if math.IsNaN(eta) {
				eta = math.Inf(1)
			}
			etas[r][c] = eta
		}
	}
	return etas, nil
}

func (uc *GreedyMatchUC) searchRadius() int {
	if uc.cfg.UnitLength <= 0 {
		return 1
	}
	return int(uc.cfg.RejectDistance/uc.cfg.UnitLength/float64(uc.cfg.K)) + 1
}

type pairing struct {
	request int
	vehicle int
	eta     float64
}

// assignNearest repeatedly takes the smallest ETA among unassigned requests
// and vehicles. Ties go to the first pair in request-major order. It stops
// when the smallest remaining ETA exceeds rejectWaitTime.
func assignNearest(etas [][]float64, rejectWaitTime float64) []pairing {
	if len(etas) == 0 {
		return nil
	}
	nVehicles := len(etas[0])
	requestDone := make([]bool, len(etas))
	vehicleTaken := make([]bool, nVehicles)

	var out []pairing
	for len(out) < min(len(etas), nVehicles) {
		best := pairing{request: -1, eta: math.Inf(1)}
		for r, row := range etas {
			if requestDone[r] {
				continue
			}
			for v, eta := range row {
				if !vehicleTaken[v] && eta < best.eta {
					best = pairing{request: r, vehicle: v, eta: eta}
				}
			}
		}
		if best.request < 0 || best.eta > rejectWaitTime {
			break
		}
		requestDone[best.request] = true
		vehicleTaken[best.vehicle] = true
		out = append(out, best)
	}
	return out
}
