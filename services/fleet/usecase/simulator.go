package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
	"github.com/piresc/fleetsim/services/fleet"
	"github.com/piresc/fleetsim/services/fleet/entity"
	"github.com/piresc/fleetsim/services/routing"
)

// Simulator owns the clock and the fleet of one run. It is not safe for
// concurrent use.
type Simulator struct {
	cfg       models.SimConfig
	t         int64
	vehicles  fleet.VehicleRepo
	customers fleet.CustomerRepo
	engine    routing.Engine
	demand    fleet.DemandGenerator
	rng       *rand.Rand
	logger    *logger.ZapLogger

	nextVehicleID int64
}

// NewSimulator creates a simulator starting at cfg.StartTime. Entities
// created through env are stamped with the simulator clock.
func NewSimulator(
	cfg models.SimConfig,
	env *entity.Env,
	vehicles fleet.VehicleRepo,
	customers fleet.CustomerRepo,
	engine routing.Engine,
	demand fleet.DemandGenerator,
	rng *rand.Rand,
	log *logger.ZapLogger,
) *Simulator {
	s := &Simulator{
		cfg:       cfg,
		t:         cfg.StartTime,
		vehicles:  vehicles,
		customers: customers,
		engine:    engine,
		demand:    demand,
		rng:       rng,
		logger:    log,
	}
	if env != nil {
		env.Clock = s.CurrentTime
	}
	return s
}

// PopulateVehicles adds n idle vehicles at random points of the mesh, each
// snapped onto the road network
func (s *Simulator) PopulateVehicles(ctx context.Context, n int, mesh *utils.Mesh) error {
	points := make([]models.Location, n)
	for i := range points {
		points[i] = models.Location{
			Latitude:  mesh.MinLat + s.rng.Float64()*mesh.DeltaLat*float64(mesh.Height),
			Longitude: mesh.MinLon + s.rng.Float64()*mesh.DeltaLon*float64(mesh.Width),
		}
	}

	snapped, err := s.engine.NearestRoad(ctx, points)
	if err != nil {
		return fmt.Errorf("failed to snap vehicle locations: %w", err)
	}

	for _, v := range s.vehicles.GetAll() {
		if v.ID() >= s.nextVehicleID {
			s.nextVehicleID = v.ID() + 1
		}
	}
	for _, p := range snapped {
		if _, err := s.vehicles.Populate(s.nextVehicleID, p.Location); err != nil {
			return err
		}
		s.nextVehicleID++
	}

	s.logger.Info("Vehicles populated", logger.Int("count", n), logger.Int64("t", s.t))
	return nil
}

// Step advances the world by one timestep: customers, then vehicles, then
// the requests issued during [t, t+timestep)
func (s *Simulator) Step(ctx context.Context) error {
	for _, c := range s.customers.GetAll() {
		c.Step()
		if c.Status().Terminal() {
			s.customers.Delete(c.ID())
		}
	}

	for _, v := range s.vehicles.GetAll() {
		s.stepVehicle(v)
		if v.Available() && v.IdleDuration() >= s.cfg.IdleDurationLimit && s.rng.Float64() < s.cfg.RestProbability {
			v.TakeRest(s.restDuration(s.randomInt63n(s.cfg.RestDuration)))
		}
	}

	requests, err := s.demand.Generate(ctx, s.t, s.cfg.Timestep)
	if err != nil {
		return fmt.Errorf("failed to generate requests at %d: %w", s.t, err)
	}
	s.customers.UpdateCustomers(requests)

	s.t += s.cfg.Timestep
	return nil
}

// stepVehicle logs the state of a vehicle whose behavior panics before
// letting the panic continue
func (s *Simulator) stepVehicle(v *entity.Vehicle) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Vehicle step failed",
				logger.Int64("t", s.t),
				logger.Any("vehicle", v.State()),
				logger.Any("panic", r))
			panic(r)
		}
	}()
	v.Step(s.cfg.Timestep, s.customers)
}

type matchTarget struct {
	vehicle  *entity.Vehicle
	customer *entity.Customer
}

// MatchVehicles sends each commanded vehicle to its customer and returns the
// commands applied, with Duration set to the routed pickup time. Commands
// naming unknown or busy vehicles, customers no longer calling or already
// matched in the batch, or unreachable pickups are skipped.
func (s *Simulator) MatchVehicles(ctx context.Context, commands []models.MatchCommand) ([]models.MatchCommand, error) {
	var (
		targets []matchTarget
		pairs   []models.ODPair
	)
	used := make(map[int64]bool, len(commands))
	usedCustomers := make(map[int64]bool, len(commands))
	for _, cmd := range commands {
		v, ok := s.vehicles.Get(cmd.VehicleID)
		if !ok {
			s.logger.Warn("Match command for unknown vehicle", logger.Int64("vehicle_id", cmd.VehicleID))
			continue
		}
		c, ok := s.customers.Get(cmd.CustomerID)
		if !ok {
			s.logger.Warn("Match command for unknown customer", logger.Int64("customer_id", cmd.CustomerID))
			continue
		}
		if !v.Available() || used[v.ID()] {
			s.logger.Warn("Match command for unavailable vehicle",
				logger.Int64("vehicle_id", v.ID()),
				logger.String("status", string(v.Status())))
			continue
		}
		if c.Status() != models.CustomerStatusCalling {
			s.logger.Warn("Match command for customer not calling",
				logger.Int64("customer_id", c.ID()),
				logger.String("status", string(c.Status())))
			continue
		}
		if usedCustomers[c.ID()] {
			s.logger.Warn("Match command for customer already matched",
				logger.Int64("customer_id", c.ID()),
				logger.Int64("vehicle_id", v.ID()))
			continue
		}

		used[v.ID()] = true
		usedCustomers[c.ID()] = true
		targets = append(targets, matchTarget{vehicle: v, customer: c})
		pairs = append(pairs, models.ODPair{Origin: v.Location(), Destination: c.Origin()})
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	routes, err := s.engine.Route(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("failed to route matched vehicles: %w", err)
	}

	applied := make([]models.MatchCommand, 0, len(targets))
	for i, target := range targets {
		route := routes[i]
		if !route.Reachable() {
			s.logger.Warn("No route to customer, skipping match",
				logger.Int64("vehicle_id", target.vehicle.ID()),
				logger.Int64("customer_id", target.customer.ID()))
			continue
		}
		target.vehicle.HeadForCustomer(target.customer.Origin(), route.TripTime, target.customer.ID())
		target.customer.WaitForVehicle(route.TripTime)
		applied = append(applied, models.MatchCommand{
			VehicleID:  target.vehicle.ID(),
			CustomerID: target.customer.ID(),
			Duration:   route.TripTime,
		})
	}
	return applied, nil
}

type dispatchTarget struct {
	vehicle *entity.Vehicle
	route   models.Route
	batch   int // index into the batched routes, -1 when route is set
}

// DispatchVehicles applies dispatch commands: off duty commands send the
// vehicle resting, the others make it cruise along a routed path
func (s *Simulator) DispatchVehicles(ctx context.Context, commands []models.DispatchCommand) error {
	var (
		targets []dispatchTarget
		pairs   []models.ODPair
		resting []*entity.Vehicle
	)
	used := make(map[int64]bool, len(commands))
	for _, cmd := range commands {
		v, ok := s.vehicles.Get(cmd.VehicleID)
		if !ok {
			s.logger.Warn("Dispatch command for unknown vehicle", logger.Int64("vehicle_id", cmd.VehicleID))
			continue
		}
		if !v.Available() || used[v.ID()] {
			s.logger.Warn("Dispatch command for unavailable vehicle",
				logger.Int64("vehicle_id", v.ID()),
				logger.String("status", string(v.Status())))
			continue
		}

		switch {
		case cmd.OffDuty:
			used[v.ID()] = true
			resting = append(resting, v)
		case cmd.CacheKey != nil:
			route, err := s.engine.RouteFromCache(ctx, *cmd.CacheKey)
			if err != nil {
				return fmt.Errorf("failed to load cached route %v: %w", *cmd.CacheKey, err)
			}
			used[v.ID()] = true
			targets = append(targets, dispatchTarget{vehicle: v, route: route, batch: -1})
		case cmd.Destination != nil:
			used[v.ID()] = true
			targets = append(targets, dispatchTarget{vehicle: v, batch: len(pairs)})
			pairs = append(pairs, models.ODPair{Origin: v.Location(), Destination: *cmd.Destination})
		default:
			s.logger.Warn("Dispatch command without destination", logger.Int64("vehicle_id", v.ID()))
		}
	}

	var routes []models.Route
	if len(pairs) > 0 {
		var err error
		routes, err = s.engine.Route(ctx, pairs)
		if err != nil {
			return fmt.Errorf("failed to route dispatched vehicles: %w", err)
		}
	}

	for _, v := range resting {
		v.TakeRest(s.restDuration(s.cfg.RestDuration))
	}

	for _, target := range targets {
		route := target.route
		if target.batch >= 0 {
			route = routes[target.batch]
		}
		if !route.Reachable() {
			s.logger.Warn("No route for dispatch, skipping", logger.Int64("vehicle_id", target.vehicle.ID()))
			continue
		}

		trajectory := route.Trajectory
		if len(trajectory) == 0 {
			if target.batch < 0 {
				s.logger.Warn("Cached route has no trajectory, skipping", logger.Int64("vehicle_id", target.vehicle.ID()))
				continue
			}
			trajectory = []models.Location{pairs[target.batch].Origin, pairs[target.batch].Destination}
		}
		target.vehicle.Cruise(trajectory, route.TripTime, cruiseSpeed(route))
	}
	return nil
}

// cruiseSpeed returns the average speed of a route in m/s
func cruiseSpeed(route models.Route) float64 {
	if route.TripTime <= 0 {
		return 0
	}
	return route.Distance / route.TripTime
}

// restDuration draws a rest length uniformly from [d/2, 3d/2)
func (s *Simulator) restDuration(d int64) float64 {
	return float64(d/2 + s.randomInt63n(d))
}

func (s *Simulator) randomInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return s.rng.Int63n(n)
}

// CurrentTime returns the simulation clock in unix seconds
func (s *Simulator) CurrentTime() int64 {
	return s.t
}

// Timestep returns the tick length in seconds
func (s *Simulator) Timestep() int64 {
	return s.cfg.Timestep
}

// NewRequests returns the requests registered during the last step
func (s *Simulator) NewRequests() []models.Request {
	return s.customers.NewRequests()
}

// VehicleStates returns a snapshot of every vehicle
func (s *Simulator) VehicleStates() []models.VehicleState {
	return s.vehicles.States()
}

// CustomerStates returns a snapshot of every live customer
func (s *Simulator) CustomerStates() []models.CustomerState {
	all := s.customers.GetAll()
	states := make([]models.CustomerState, len(all))
	for i, c := range all {
		states[i] = c.State()
	}
	return states
}

// Scores returns the earnings and time split of every vehicle
func (s *Simulator) Scores() []models.VehicleScore {
	all := s.vehicles.GetAll()
	scores := make([]models.VehicleScore, len(all))
	for i, v := range all {
		scores[i] = v.Score()
	}
	return scores
}
