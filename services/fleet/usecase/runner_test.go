package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	fleetmocks "github.com/piresc/fleetsim/services/fleet/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFixture struct {
	*simFixture
	runner     *Runner
	matcher    *fleetmocks.MockMatchingPolicy
	dispatcher *fleetmocks.MockDispatchPolicy
	sink       *fleetmocks.MockEventSink
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	ctrl := gomock.NewController(t)
	f := &runnerFixture{
		simFixture: newSimFixture(t, testSimConfig()),
		matcher:    fleetmocks.NewMockMatchingPolicy(ctrl),
		dispatcher: fleetmocks.NewMockDispatchPolicy(ctrl),
		sink:       fleetmocks.NewMockEventSink(ctrl),
	}
	f.runner = NewRunner(f.sim, f.matcher, f.dispatcher, f.sink, logger.NewNopLogger())
	return f
}

func TestRunner_Step(t *testing.T) {
	// Arrange
	f := newRunnerFixture(t)
	f.addVehicle(t, 1, locA)
	f.addVehicle(t, 2, locC)
	request := models.Request{ID: 5, RequestTime: testStart, TripTime: 600, Origin: locB, Destination: locC}
	now := testStart + 60

	f.demand.EXPECT().Generate(gomock.Any(), testStart, int64(60)).Return([]models.Request{request}, nil)
	f.matcher.EXPECT().
		Match(gomock.Any(), now, gomock.Len(2), []models.Request{request}).
		Return([]models.MatchCommand{{VehicleID: 1, CustomerID: 5, Duration: 90}}, nil)
	f.dispatcher.EXPECT().
		Dispatch(gomock.Any(), now, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, vehicles []models.VehicleState) ([]models.DispatchCommand, error) {
			require.Len(t, vehicles, 2)
			assert.Equal(t, models.VehicleStatusAssigned, vehicles[0].Status)
			assert.Equal(t, models.VehicleStatusIdle, vehicles[1].Status)
			return []models.DispatchCommand{{VehicleID: 2, OffDuty: true}}, nil
		})
	f.engine.EXPECT().Route(gomock.Any(), gomock.Len(1)).Return([]models.Route{{Distance: 900, TripTime: 90}}, nil)

	var emitted models.TickSummary
	f.sink.EXPECT().
		OnEvent(models.EventKindSummary, gomock.Any()).
		Do(func(_ models.EventKind, data interface{}) {
			emitted = data.(models.TickSummary)
		})

	// Act
	summary, err := f.runner.Step(context.Background())

	// Assert
	require.NoError(t, err)
	expected := models.TickSummary{
		Time:             now,
		ActiveVehicles:   1,
		OccupiedVehicles: 0,
		Requests:         1,
		Matches:          1,
		Dispatches:       1,
		AverageWait:      90,
	}
	assert.Equal(t, expected, summary)
	assert.Equal(t, expected, emitted)

	snapshot, ok := f.runner.Latest()
	require.True(t, ok)
	assert.Equal(t, expected, snapshot.Summary)
	require.Len(t, snapshot.Vehicles, 2)
	assert.Equal(t, models.VehicleStatusAssigned, snapshot.Vehicles[0].Status)
	assert.Equal(t, models.VehicleStatusOffDuty, snapshot.Vehicles[1].Status)
}

func TestRunner_Step_SkipsMatchingWithoutRequests(t *testing.T) {
	f := newRunnerFixture(t)
	f.addVehicle(t, 1, locA)
	f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.sink.EXPECT().OnEvent(models.EventKindSummary, gomock.Any())

	summary, err := f.runner.Step(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.ActiveVehicles)
	assert.Zero(t, summary.Matches)
	assert.Zero(t, summary.AverageWait)
}

func TestRunner_Step_CountsAppliedMatchesOnly(t *testing.T) {
	// Arrange
	f := newRunnerFixture(t)
	f.addVehicle(t, 1, locA)
	f.addVehicle(t, 2, locC)
	requests := []models.Request{
		{ID: 5, RequestTime: testStart, TripTime: 600, Origin: locB, Destination: locC},
		{ID: 6, RequestTime: testStart, TripTime: 600, Origin: locC, Destination: locA},
	}

	f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(requests, nil)
	f.matcher.EXPECT().
		Match(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.MatchCommand{
			{VehicleID: 1, CustomerID: 5, Duration: 100},
			{VehicleID: 2, CustomerID: 6, Duration: 50},
			{VehicleID: 42, CustomerID: 6, Duration: 10},
		}, nil)
	f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.engine.EXPECT().
		Route(gomock.Any(), gomock.Len(2)).
		Return([]models.Route{{Distance: 1000, TripTime: 120}, models.UnreachableRoute()}, nil)
	f.sink.EXPECT().OnEvent(models.EventKindSummary, gomock.Any())

	// Act
	summary, err := f.runner.Step(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Requests)
	assert.Equal(t, 1, summary.Matches)
	assert.Equal(t, 120.0, summary.AverageWait)
}

func TestRunner_Step_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *runnerFixture)
	}{
		{
			name: "demand",
			setup: func(f *runnerFixture) {
				f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
		},
		{
			name: "matching",
			setup: func(f *runnerFixture) {
				f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]models.Request{{ID: 1, Origin: locA, Destination: locB}}, nil)
				f.matcher.EXPECT().Match(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
		},
		{
			name: "dispatch",
			setup: func(f *runnerFixture) {
				f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
		},
		{
			name: "routing",
			setup: func(f *runnerFixture) {
				f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]models.DispatchCommand{{VehicleID: 1, Destination: &locB}}, nil)
				f.engine.EXPECT().Route(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRunnerFixture(t)
			f.addVehicle(t, 1, locA)
			tt.setup(f)

			_, err := f.runner.Step(context.Background())

			assert.Error(t, err)
			_, ok := f.runner.Latest()
			assert.False(t, ok)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	// Arrange
	f := newRunnerFixture(t)
	f.addVehicle(t, 1, locA)
	f.addVehicle(t, 2, locB)
	f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

	gomock.InOrder(
		f.sink.EXPECT().OnEvent(models.EventKindSummary, gomock.Any()).Times(3),
		f.sink.EXPECT().OnEvent(models.EventKindScore, gomock.Any()).Times(2),
	)

	// Act
	err := f.runner.Run(context.Background(), 3)

	// Assert
	require.NoError(t, err)
	snapshot, ok := f.runner.Latest()
	require.True(t, ok)
	assert.Equal(t, testStart+180, snapshot.Summary.Time)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	f := newRunnerFixture(t)
	f.addVehicle(t, 1, locA)
	f.sink.EXPECT().OnEvent(models.EventKindScore, gomock.Any()).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.runner.Run(ctx, 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, testStart, f.sim.CurrentTime())
}

func TestRunner_NilSink(t *testing.T) {
	f := newRunnerFixture(t)
	f.runner.sink = nil
	f.demand.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	assert.NoError(t, f.runner.Run(context.Background(), 1))
}

func TestMarkAssigned(t *testing.T) {
	vehicles := []models.VehicleState{
		{ID: 1, Status: models.VehicleStatusIdle},
		{ID: 2, Status: models.VehicleStatusCruising},
	}

	markAssigned(vehicles, []models.MatchCommand{{VehicleID: 2, CustomerID: 9}})

	assert.Equal(t, models.VehicleStatusIdle, vehicles[0].Status)
	assert.Equal(t, models.VehicleStatusAssigned, vehicles[1].Status)
}
