package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
	"github.com/piresc/fleetsim/services/fleet/entity"
	fleetmocks "github.com/piresc/fleetsim/services/fleet/mocks"
	"github.com/piresc/fleetsim/services/fleet/repository"
	routingmocks "github.com/piresc/fleetsim/services/routing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStart int64 = 1464753600 // 2016-06-01T04:00:00Z

var (
	locA = models.Location{Latitude: 40.71, Longitude: -73.99}
	locB = models.Location{Latitude: 40.72, Longitude: -73.98}
	locC = models.Location{Latitude: 40.73, Longitude: -73.97}
)

func testSimConfig() models.SimConfig {
	return models.SimConfig{
		StartTime:         testStart,
		Timestep:          60,
		IdleDurationLimit: 7200,
		RestProbability:   0,
		RestDuration:      3600,
	}
}

type simFixture struct {
	sim       *Simulator
	env       *entity.Env
	vehicles  *repository.VehicleRepository
	customers *repository.CustomerRepository
	engine    *routingmocks.MockEngine
	demand    *fleetmocks.MockDemandGenerator
}

func newSimFixture(t *testing.T, cfg models.SimConfig) *simFixture {
	ctrl := gomock.NewController(t)
	log := logger.NewNopLogger()
	env := &entity.Env{}

	f := &simFixture{
		env:       env,
		vehicles:  repository.NewVehicleRepository(env),
		customers: repository.NewCustomerRepository(env, log),
		engine:    routingmocks.NewMockEngine(ctrl),
		demand:    fleetmocks.NewMockDemandGenerator(ctrl),
	}
	f.sim = NewSimulator(cfg, env, f.vehicles, f.customers, f.engine, f.demand, rand.New(rand.NewSource(1)), log)
	return f
}

func (f *simFixture) addCustomer(t *testing.T, id int64, origin, destination models.Location) *entity.Customer {
	f.customers.UpdateCustomers([]models.Request{{ID: id, RequestTime: testStart, TripTime: 600, Origin: origin, Destination: destination, Fare: 12.5}})
	c, ok := f.customers.Get(id)
	require.True(t, ok)
	return c
}

func (f *simFixture) addVehicle(t *testing.T, id int64, location models.Location) *entity.Vehicle {
	v, err := f.vehicles.Populate(id, location)
	require.NoError(t, err)
	return v
}

func TestNewSimulator_BindsClock(t *testing.T) {
	f := newSimFixture(t, testSimConfig())

	require.NotNil(t, f.env.Clock)
	assert.Equal(t, testStart, f.env.Clock())
	assert.Equal(t, int64(60), f.sim.Timestep())
}

func TestSimulator_PopulateVehicles(t *testing.T) {
	// Arrange
	f := newSimFixture(t, testSimConfig())
	mesh := &utils.Mesh{MinLat: 40.70, MinLon: -74.00, DeltaLat: 0.01, DeltaLon: 0.01, Width: 3, Height: 3}
	snapped := []models.SnappedPoint{{Location: locA}, {Location: locB}, {Location: locC}}

	f.engine.EXPECT().
		NearestRoad(gomock.Any(), gomock.Len(3)).
		DoAndReturn(func(_ context.Context, points []models.Location) ([]models.SnappedPoint, error) {
			for _, p := range points {
				assert.True(t, mesh.Contains(mesh.LonLatToCell(p)))
				assert.GreaterOrEqual(t, p.Latitude, mesh.MinLat)
				assert.GreaterOrEqual(t, p.Longitude, mesh.MinLon)
			}
			return snapped, nil
		})

	// Act
	err := f.sim.PopulateVehicles(context.Background(), 3, mesh)

	// Assert
	require.NoError(t, err)
	states := f.sim.VehicleStates()
	require.Len(t, states, 3)
	for i, s := range states {
		assert.Equal(t, int64(i), s.ID)
		assert.Equal(t, snapped[i].Location, s.Location)
		assert.Equal(t, models.VehicleStatusIdle, s.Status)
	}
}

func TestSimulator_PopulateVehicles_IDsNeverReused(t *testing.T) {
	// Arrange
	f := newSimFixture(t, testSimConfig())
	mesh := &utils.Mesh{MinLat: 40.70, MinLon: -74.00, DeltaLat: 0.01, DeltaLon: 0.01, Width: 3, Height: 3}
	gomock.InOrder(
		f.engine.EXPECT().NearestRoad(gomock.Any(), gomock.Len(2)).
			Return([]models.SnappedPoint{{Location: locA}, {Location: locB}}, nil),
		f.engine.EXPECT().NearestRoad(gomock.Any(), gomock.Len(1)).
			Return([]models.SnappedPoint{{Location: locC}}, nil),
	)
	require.NoError(t, f.sim.PopulateVehicles(context.Background(), 2, mesh))
	f.vehicles.Delete(0)

	// Act
	err := f.sim.PopulateVehicles(context.Background(), 1, mesh)

	// Assert
	require.NoError(t, err)
	states := f.sim.VehicleStates()
	require.Len(t, states, 2)
	assert.Equal(t, int64(1), states[0].ID)
	assert.Equal(t, int64(2), states[1].ID)
	assert.Equal(t, locC, states[1].Location)
}

func TestSimulator_PopulateVehicles_SkipsExistingIDs(t *testing.T) {
	f := newSimFixture(t, testSimConfig())
	f.addVehicle(t, 4, locA)
	mesh := &utils.Mesh{MinLat: 40.70, MinLon: -74.00, DeltaLat: 0.01, DeltaLon: 0.01, Width: 3, Height: 3}
	f.engine.EXPECT().NearestRoad(gomock.Any(), gomock.Len(1)).Return([]models.SnappedPoint{{Location: locB}}, nil)

	require.NoError(t, f.sim.PopulateVehicles(context.Background(), 1, mesh))

	_, ok := f.vehicles.Get(5)
	assert.True(t, ok)
}

func TestSimulator_PopulateVehicles_EngineError(t *testing.T) {
	f := newSimFixture(t, testSimConfig())
	mesh := &utils.Mesh{MinLat: 40.70, MinLon: -74.00, DeltaLat: 0.01, DeltaLon: 0.01, Width: 3, Height: 3}
	f.engine.EXPECT().NearestRoad(gomock.Any(), gomock.Any()).Return(nil, errors.New("backend down"))

	err := f.sim.PopulateVehicles(context.Background(), 2, mesh)

	assert.Error(t, err)
	assert.Equal(t, 0, f.vehicles.Len())
}

func TestSimulator_Step(t *testing.T) {
	t.Run("registers new requests and advances the clock", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		requests := []models.Request{{ID: 1, RequestTime: testStart + 5, Origin: locA, Destination: locB}}
		f.demand.EXPECT().Generate(gomock.Any(), testStart, int64(60)).Return(requests, nil)

		require.NoError(t, f.sim.Step(context.Background()))

		assert.Equal(t, testStart+60, f.sim.CurrentTime())
		assert.Equal(t, requests, f.sim.NewRequests())
		c, ok := f.customers.Get(1)
		require.True(t, ok)
		assert.Equal(t, models.CustomerStatusCalling, c.Status())
	})

	t.Run("unmatched customers disappear on the next tick", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		gomock.InOrder(
			f.demand.EXPECT().Generate(gomock.Any(), testStart, int64(60)).
				Return([]models.Request{{ID: 1, Origin: locA, Destination: locB}}, nil),
			f.demand.EXPECT().Generate(gomock.Any(), testStart+60, int64(60)).Return(nil, nil),
		)

		require.NoError(t, f.sim.Step(context.Background()))
		require.NoError(t, f.sim.Step(context.Background()))

		assert.Equal(t, 0, f.customers.Len())
		assert.Empty(t, f.sim.NewRequests())
		assert.Empty(t, f.sim.CustomerStates())
	})

	t.Run("waiting customers survive", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		c := f.addCustomer(t, 1, locA, locB)
		c.WaitForVehicle(300)
		f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, f.sim.Step(context.Background()))

		states := f.sim.CustomerStates()
		require.Len(t, states, 1)
		assert.Equal(t, models.CustomerStatusWaiting, states[0].Status)
	})

	t.Run("demand error stops the tick", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		err := f.sim.Step(context.Background())

		assert.Error(t, err)
		assert.Equal(t, testStart, f.sim.CurrentTime())
	})

	t.Run("long idle vehicles may be sent to rest", func(t *testing.T) {
		cfg := testSimConfig()
		cfg.IdleDurationLimit = 60
		cfg.RestProbability = 1
		f := newSimFixture(t, cfg)
		v := f.addVehicle(t, 7, locA)
		f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, f.sim.Step(context.Background()))

		assert.Equal(t, models.VehicleStatusOffDuty, v.Status())
		assert.Less(t, v.TimeToDestination(), float64(cfg.RestDuration)*1.5)
	})

	t.Run("vehicles below the idle limit keep working", func(t *testing.T) {
		cfg := testSimConfig()
		cfg.RestProbability = 1
		f := newSimFixture(t, cfg)
		v := f.addVehicle(t, 7, locA)
		f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, f.sim.Step(context.Background()))

		assert.Equal(t, models.VehicleStatusIdle, v.Status())
		assert.Equal(t, int64(60), v.IdleDuration())
	})
}

func TestSimulator_Step_PreconditionViolationPanics(t *testing.T) {
	f := newSimFixture(t, testSimConfig())
	v := f.addVehicle(t, 1, locA)
	v.HeadForCustomer(locB, 30, 42) // customer 42 never existed

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, entity.ErrPrecondition)
	}()

	_ = f.sim.Step(context.Background())
	t.Fatal("step should have panicked")
}

func TestSimulator_FullTrip(t *testing.T) {
	// Arrange
	f := newSimFixture(t, testSimConfig())
	v := f.addVehicle(t, 1, locA)
	c := f.addCustomer(t, 5, locB, locC)
	f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return([]models.Route{{Distance: 1500, TripTime: 90}}, nil)
	f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.sim.MatchVehicles(context.Background(), []models.MatchCommand{{VehicleID: 1, CustomerID: 5}})
	require.NoError(t, err)

	// Act & Assert
	require.NoError(t, f.sim.Step(context.Background()))
	assert.Equal(t, models.VehicleStatusAssigned, v.Status())

	require.NoError(t, f.sim.Step(context.Background()))
	assert.Equal(t, models.VehicleStatusOccupied, v.Status())
	assert.Equal(t, locB, v.Location())
	assert.Equal(t, models.CustomerStatusInVehicle, c.Status())

	for i := 0; i < 11; i++ {
		require.NoError(t, f.sim.Step(context.Background()))
	}
	assert.Equal(t, models.VehicleStatusIdle, v.Status())
	assert.Equal(t, locC, v.Location())
	assert.Equal(t, 12.5, v.Earnings())
	assert.Equal(t, 0, f.customers.Len())

	scores := f.sim.Scores()
	require.Len(t, scores, 1)
	assert.Equal(t, int64(2), scores[0].Durations[models.VehicleStatusAssigned])
	assert.Equal(t, 12.5, scores[0].Earnings)
}

func TestSimulator_MatchVehicles(t *testing.T) {
	t.Run("routes valid commands in one batch", func(t *testing.T) {
		// Arrange
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		c := f.addCustomer(t, 5, locB, locC)
		f.engine.EXPECT().
			Route(gomock.Any(), []models.ODPair{{Origin: locA, Destination: locB}}).
			Return([]models.Route{{Distance: 1200, TripTime: 240}}, nil)

		commands := []models.MatchCommand{
			{VehicleID: 99, CustomerID: 5},
			{VehicleID: 1, CustomerID: 77},
			{VehicleID: 1, CustomerID: 5},
		}

		// Act
		applied, err := f.sim.MatchVehicles(context.Background(), commands)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []models.MatchCommand{{VehicleID: 1, CustomerID: 5, Duration: 240}}, applied)
		assert.Equal(t, models.VehicleStatusAssigned, v.Status())
		assert.Equal(t, int64(5), v.AssignedCustomerID())
		assert.Equal(t, 240.0, v.TimeToDestination())
		assert.Equal(t, models.CustomerStatusWaiting, c.Status())
		assert.Equal(t, 240.0, c.WaitingTime())
	})

	t.Run("a vehicle is matched at most once", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		f.addVehicle(t, 1, locA)
		f.addCustomer(t, 5, locB, locC)
		second := f.addCustomer(t, 6, locC, locA)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Len(1)).Return([]models.Route{{Distance: 1, TripTime: 1}}, nil)

		applied, err := f.sim.MatchVehicles(context.Background(), []models.MatchCommand{
			{VehicleID: 1, CustomerID: 5},
			{VehicleID: 1, CustomerID: 6},
		})

		require.NoError(t, err)
		assert.Len(t, applied, 1)
		assert.Equal(t, models.CustomerStatusCalling, second.Status())
	})

	t.Run("a customer is matched at most once", func(t *testing.T) {
		// Arrange
		f := newSimFixture(t, testSimConfig())
		first := f.addVehicle(t, 1, locA)
		second := f.addVehicle(t, 2, locC)
		c := f.addCustomer(t, 10, locB, locC)
		f.engine.EXPECT().
			Route(gomock.Any(), []models.ODPair{{Origin: locA, Destination: locB}}).
			Return([]models.Route{{Distance: 600, TripTime: 60}}, nil)

		// Act
		var (
			applied []models.MatchCommand
			err     error
		)
		assert.NotPanics(t, func() {
			applied, err = f.sim.MatchVehicles(context.Background(), []models.MatchCommand{
				{VehicleID: 1, CustomerID: 10},
				{VehicleID: 2, CustomerID: 10},
			})
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []models.MatchCommand{{VehicleID: 1, CustomerID: 10, Duration: 60}}, applied)
		assert.Equal(t, models.VehicleStatusAssigned, first.Status())
		assert.Equal(t, models.VehicleStatusIdle, second.Status())
		assert.Equal(t, models.CustomerStatusWaiting, c.Status())
	})

	t.Run("unreachable pickups are skipped", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		c := f.addCustomer(t, 5, locB, locC)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return([]models.Route{models.UnreachableRoute()}, nil)

		applied, err := f.sim.MatchVehicles(context.Background(), []models.MatchCommand{{VehicleID: 1, CustomerID: 5}})

		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.Equal(t, models.VehicleStatusIdle, v.Status())
		assert.Equal(t, models.CustomerStatusCalling, c.Status())
	})

	t.Run("routing failure fails the batch", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		f.addCustomer(t, 5, locB, locC)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.sim.MatchVehicles(context.Background(), []models.MatchCommand{{VehicleID: 1, CustomerID: 5}})

		assert.Error(t, err)
		assert.Equal(t, models.VehicleStatusIdle, v.Status())
	})

	t.Run("nothing to route", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())

		applied, err := f.sim.MatchVehicles(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, applied)
	})
}

func TestSimulator_DispatchVehicles(t *testing.T) {
	t.Run("destination commands cruise along the routed path", func(t *testing.T) {
		// Arrange
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		trajectory := []models.Location{locA, locB}
		f.engine.EXPECT().
			Route(gomock.Any(), []models.ODPair{{Origin: locA, Destination: locB}}).
			Return([]models.Route{{Trajectory: trajectory, Distance: 1000, TripTime: 100}}, nil)

		// Act
		err := f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, Destination: &locB}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusCruising, v.Status())
		assert.Equal(t, 10.0, v.Speed())
		assert.Equal(t, trajectory, v.Route())
		assert.Equal(t, 100.0, v.TimeToDestination())
	})

	t.Run("empty trajectories fall back to a straight line", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return([]models.Route{{Distance: 0, TripTime: 0}}, nil)

		require.NoError(t, f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, Destination: &locB}}))

		assert.Equal(t, models.VehicleStatusCruising, v.Status())
		assert.Equal(t, 0.0, v.Speed())
		assert.Equal(t, []models.Location{locA, locB}, v.Route())
	})

	t.Run("cache key commands reuse the cached route", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		key := models.RouteCacheKey{Cell: models.Cell{X: 3, Y: 4}, Offset: models.Offset{DX: 1, DY: -2}}
		f.engine.EXPECT().
			RouteFromCache(gomock.Any(), key).
			Return(models.Route{Trajectory: []models.Location{locA, locC}, Distance: 600, TripTime: 120}, nil)

		require.NoError(t, f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, CacheKey: &key}}))

		assert.Equal(t, models.VehicleStatusCruising, v.Status())
		assert.Equal(t, 5.0, v.Speed())
	})

	t.Run("off duty commands send the vehicle to rest", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)

		require.NoError(t, f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, OffDuty: true}}))

		assert.Equal(t, models.VehicleStatusOffDuty, v.Status())
		assert.GreaterOrEqual(t, v.TimeToDestination(), 1800.0)
		assert.Less(t, v.TimeToDestination(), 5400.0)
	})

	t.Run("invalid commands are skipped", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		busy := f.addVehicle(t, 1, locA)
		busy.TakeRest(600)
		idle := f.addVehicle(t, 2, locB)

		err := f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{
			{VehicleID: 1, Destination: &locC},
			{VehicleID: 3, Destination: &locC},
			{VehicleID: 2},
		})

		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusOffDuty, busy.Status())
		assert.Equal(t, models.VehicleStatusIdle, idle.Status())
	})

	t.Run("unreachable destinations are skipped", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		v := f.addVehicle(t, 1, locA)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return([]models.Route{models.UnreachableRoute()}, nil)

		require.NoError(t, f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, Destination: &locB}}))

		assert.Equal(t, models.VehicleStatusIdle, v.Status())
	})

	t.Run("cache failure fails the batch", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		f.addVehicle(t, 1, locA)
		key := models.RouteCacheKey{}
		f.engine.EXPECT().RouteFromCache(gomock.Any(), key).Return(models.Route{}, errors.New("redis down"))

		err := f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{{VehicleID: 1, CacheKey: &key}})

		assert.Error(t, err)
	})

	t.Run("routing failure leaves off duty commands unapplied", func(t *testing.T) {
		// Arrange
		f := newSimFixture(t, testSimConfig())
		resting := f.addVehicle(t, 1, locA)
		cruising := f.addVehicle(t, 2, locB)
		f.engine.EXPECT().Route(gomock.Any(), gomock.Len(1)).Return(nil, errors.New("timeout"))

		// Act
		err := f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{
			{VehicleID: 1, OffDuty: true},
			{VehicleID: 2, Destination: &locC},
		})

		// Assert
		assert.Error(t, err)
		assert.Equal(t, models.VehicleStatusIdle, resting.Status())
		assert.Equal(t, models.VehicleStatusIdle, cruising.Status())
	})

	t.Run("cache failure leaves off duty commands unapplied", func(t *testing.T) {
		f := newSimFixture(t, testSimConfig())
		resting := f.addVehicle(t, 1, locA)
		f.addVehicle(t, 2, locB)
		key := models.RouteCacheKey{}
		f.engine.EXPECT().RouteFromCache(gomock.Any(), key).Return(models.Route{}, errors.New("redis down"))

		err := f.sim.DispatchVehicles(context.Background(), []models.DispatchCommand{
			{VehicleID: 1, OffDuty: true},
			{VehicleID: 2, CacheKey: &key},
		})

		assert.Error(t, err)
		assert.Equal(t, models.VehicleStatusIdle, resting.Status())
	})
}

func TestCruiseSpeed(t *testing.T) {
	assert.Equal(t, 12.0, cruiseSpeed(models.Route{Distance: 1200, TripTime: 100}))
	assert.Equal(t, 0.0, cruiseSpeed(models.Route{Distance: 1200, TripTime: 0}))
}
