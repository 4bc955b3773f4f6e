package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

// TensorEngine answers routing queries from precomputed per-cell tables.
// Arbitrary coordinates are binned into cells and their trip times scaled by
// the ratio of the actual distance to the cell-center distance.
type TensorEngine struct {
	mesh        *utils.Mesh
	assets      *Assets
	refDistance []float64
	refSpeed    float64
	maxDistance float64
	cache       *RouteCache
	roads       *quadtree.Quadtree
	logger      *logger.ZapLogger
}

// NewTensorEngine creates an engine over assets computed for mesh
func NewTensorEngine(mesh *utils.Mesh, assets *Assets, cache *RouteCache, cfg models.RoutingConfig, log *logger.ZapLogger) (*TensorEngine, error) {
	if mesh.Width != assets.Width || mesh.Height != assets.Height {
		return nil, fmt.Errorf("assets are %dx%d but mesh is %dx%d", assets.Width, assets.Height, mesh.Width, mesh.Height)
	}

	e := &TensorEngine{
		mesh:        mesh,
		assets:      assets,
		refSpeed:    cfg.RefSpeed,
		maxDistance: cfg.MaxDistance,
		cache:       cache,
		logger:      log,
	}
	e.refDistance = e.buildRefDistance()

	roads, err := e.buildRoadIndex()
	if err != nil {
		return nil, err
	}
	e.roads = roads

	log.Info("Tensor routing engine ready",
		logger.Int("width", assets.Width),
		logger.Int("height", assets.Height),
		logger.Int("max_move", assets.MaxMove))
	return e, nil
}

// Route looks up the precomputed route between the cells of each pair
func (e *TensorEngine) Route(ctx context.Context, pairs []models.ODPair) ([]models.Route, error) {
	routes := make([]models.Route, len(pairs))
	for i, p := range pairs {
		origin := e.mesh.LonLatToCell(p.Origin)
		offset := origin.OffsetTo(e.mesh.LonLatToCell(p.Destination))
		if !e.assets.InMove(offset) {
			routes[i] = models.UnreachableRoute()
			continue
		}

		route, err := e.RouteFromCache(ctx, models.RouteCacheKey{Cell: origin, Offset: offset})
		if err != nil {
			return nil, err
		}
		routes[i] = route
	}
	return routes, nil
}

// RouteFromCache returns the route of moving by key.Offset from key.Cell
func (e *TensorEngine) RouteFromCache(ctx context.Context, key models.RouteCacheKey) (models.Route, error) {
	return e.cache.GetOrCompute(ctx, key, func(context.Context) (models.Route, error) {
		return e.lookup(key), nil
	})
}

// ETAManyToMany estimates trip times between arbitrary coordinates. Pairs at
// or beyond the maximum distance, or whose cells are farther apart than the
// move radius, are +Inf.
func (e *TensorEngine) ETAManyToMany(ctx context.Context, origins, destinations []models.Location) ([][]float64, error) {
	destCells := make([]models.Cell, len(destinations))
	for j, d := range destinations {
		destCells[j] = e.mesh.LonLatToCell(d)
	}

	etas := make([][]float64, len(origins))
	for i, o := range origins {
		row := make([]float64, len(destinations))
		cell := e.mesh.LonLatToCell(o)
		for j, d := range destinations {
			row[j] = math.Inf(1)

			dist := utils.GreatCircleDistance(o, d)
			if dist >= e.maxDistance {
				continue
			}
			idx, ok := e.assets.index(cell, cell.OffsetTo(destCells[j]))
			if !ok {
				continue
			}
			tt := e.assets.tripTimes[idx]
			if math.IsInf(tt, 1) {
				continue
			}
			if ref := e.refDistance[idx]; ref == 0 {
				row[j] = dist / e.refSpeed
			} else {
				row[j] = tt * dist / ref
			}
		}
		etas[i] = row
	}
	return etas, nil
}

// NearestRoad snaps each point to the center of the nearest reachable cell
func (e *TensorEngine) NearestRoad(ctx context.Context, points []models.Location) ([]models.SnappedPoint, error) {
	snapped := make([]models.SnappedPoint, len(points))
	for i, p := range points {
		found := e.roads.Find(utils.ToPoint(p))
		if found == nil {
			snapped[i] = models.SnappedPoint{Location: p}
			continue
		}
		loc := utils.FromPoint(found.Point())
		snapped[i] = models.SnappedPoint{Location: loc, Distance: utils.GreatCircleDistance(p, loc)}
	}
	return snapped, nil
}

func (e *TensorEngine) lookup(key models.RouteCacheKey) models.Route {
	tt := e.assets.TripTime(key.Cell, key.Offset)
	if math.IsInf(tt, 1) {
		return models.UnreachableRoute()
	}

	trajectory, ok := e.assets.Trajectory(key.Cell, key.Offset)
	if !ok {
		return models.UnreachableRoute()
	}
	if len(trajectory) == 0 {
		trajectory = []models.Location{
			e.mesh.CellToLonLat(key.Cell),
			e.mesh.CellToLonLat(key.Cell.Add(key.Offset)),
		}
	}
	return models.Route{
		Trajectory: trajectory,
		Distance:   utils.PathLength(trajectory),
		TripTime:   tt,
	}
}

// buildRefDistance computes the great circle distance between the centers of
// every (cell, offset) pair of the tensor
func (e *TensorEngine) buildRefDistance() []float64 {
	a := e.assets
	ref := make([]float64, len(a.tripTimes))
	for x := 0; x < a.Width; x++ {
		for y := 0; y < a.Height; y++ {
			cell := models.Cell{X: x, Y: y}
			origin := e.mesh.CellToLonLat(cell)
			for dx := -a.MaxMove; dx <= a.MaxMove; dx++ {
				for dy := -a.MaxMove; dy <= a.MaxMove; dy++ {
					offset := models.Offset{DX: dx, DY: dy}
					idx, _ := a.index(cell, offset)
					ref[idx] = utils.GreatCircleDistance(origin, e.mesh.CellToLonLat(cell.Add(offset)))
				}
			}
		}
	}
	return ref
}

func (e *TensorEngine) buildRoadIndex() (*quadtree.Quadtree, error) {
	m := e.mesh
	bound := orb.Bound{
		Min: orb.Point{m.MinLon, m.MinLat},
		Max: orb.Point{m.MinLon + m.DeltaLon*float64(m.Width), m.MinLat + m.DeltaLat*float64(m.Height)},
	}
	qt := quadtree.New(bound)
	for x := 0; x < e.assets.Width; x++ {
		for y := 0; y < e.assets.Height; y++ {
			cell := models.Cell{X: x, Y: y}
			if !e.assets.IsReachable(cell) {
				continue
			}
			if err := qt.Add(utils.ToPoint(m.CellToLonLat(cell))); err != nil {
				return nil, fmt.Errorf("failed to index cell %s: %w", cell, err)
			}
		}
	}
	return qt, nil
}
