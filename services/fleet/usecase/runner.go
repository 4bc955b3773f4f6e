package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet"
)

// progressEvery is how many ticks pass between two progress log lines
const progressEvery = 60

// Runner drives the simulator with a matching and a dispatch policy, one
// tick at a time, and publishes a snapshot of the fleet after every tick
type Runner struct {
	sim        *Simulator
	matcher    fleet.MatchingPolicy
	dispatcher fleet.DispatchPolicy
	sink       fleet.EventSink
	logger     *logger.ZapLogger

	mu     sync.RWMutex
	latest *fleet.Snapshot
}

// NewRunner creates a runner. sink may be nil.
func NewRunner(
	sim *Simulator,
	matcher fleet.MatchingPolicy,
	dispatcher fleet.DispatchPolicy,
	sink fleet.EventSink,
	log *logger.ZapLogger,
) *Runner {
	return &Runner{
		sim:        sim,
		matcher:    matcher,
		dispatcher: dispatcher,
		sink:       sink,
		logger:     log,
	}
}

// Step advances the simulation one tick and lets both policies act on it
func (r *Runner) Step(ctx context.Context) (models.TickSummary, error) {
	if err := r.sim.Step(ctx); err != nil {
		return models.TickSummary{}, err
	}

	t := r.sim.CurrentTime()
	vehicles := r.sim.VehicleStates()
	requests := r.sim.NewRequests()

	var matches []models.MatchCommand
	if len(requests) > 0 {
		var err error
		matches, err = r.matcher.Match(ctx, t, vehicles, requests)
		if err != nil {
			return models.TickSummary{}, fmt.Errorf("matching failed at %d: %w", t, err)
		}
		markAssigned(vehicles, matches)
	}

	dispatches, err := r.dispatcher.Dispatch(ctx, t, vehicles)
	if err != nil {
		return models.TickSummary{}, fmt.Errorf("dispatch failed at %d: %w", t, err)
	}

	applied, err := r.sim.MatchVehicles(ctx, matches)
	if err != nil {
		return models.TickSummary{}, err
	}
	if err := r.sim.DispatchVehicles(ctx, dispatches); err != nil {
		return models.TickSummary{}, err
	}

	states := r.sim.VehicleStates()
	summary := summarize(t, states, len(requests), applied, len(dispatches))
	r.emit(models.EventKindSummary, summary)
	r.publish(fleet.Snapshot{Summary: summary, Vehicles: states})

	return summary, nil
}

// Run executes steps ticks, stopping early when ctx is done, then emits the
// score of every vehicle
func (r *Runner) Run(ctx context.Context, steps int) error {
	started := time.Now()
	r.logger.Info("Simulation started",
		logger.String("start", models.FormatSimTime(r.sim.CurrentTime())),
		logger.Int("steps", steps))

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Simulation interrupted", logger.Int("step", i), logger.Err(err))
			r.emitScores()
			return err
		}

		summary, err := r.Step(ctx)
		if err != nil {
			r.logger.Error("Simulation step failed", logger.Int("step", i), logger.Err(err))
			return err
		}

		if (i+1)%progressEvery == 0 {
			r.logger.Info("Simulation progress",
				logger.String("t", models.FormatSimTime(summary.Time)),
				logger.Int("step", i+1),
				logger.Int("active_vehicles", summary.ActiveVehicles),
				logger.Int("occupied_vehicles", summary.OccupiedVehicles),
				logger.Int("requests", summary.Requests),
				logger.Int("matches", summary.Matches))
		}
	}

	r.emitScores()
	r.logger.Info("Simulation finished",
		logger.String("end", models.FormatSimTime(r.sim.CurrentTime())),
		logger.Duration("elapsed", time.Since(started)))
	return nil
}

// Latest returns the snapshot published by the last completed tick
func (r *Runner) Latest() (fleet.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.latest == nil {
		return fleet.Snapshot{}, false
	}
	return *r.latest, true
}

func (r *Runner) publish(snapshot fleet.Snapshot) {
	r.mu.Lock()
	r.latest = &snapshot
	r.mu.Unlock()
}

func (r *Runner) emitScores() {
	for _, score := range r.sim.Scores() {
		r.emit(models.EventKindScore, score)
	}
}

func (r *Runner) emit(kind models.EventKind, data interface{}) {
	if r.sink == nil {
		return
	}
	r.sink.OnEvent(kind, data)
}

// markAssigned hides matched vehicles from the dispatch policy
func markAssigned(vehicles []models.VehicleState, matches []models.MatchCommand) {
	if len(matches) == 0 {
		return
	}
	matched := make(map[int64]bool, len(matches))
	for _, m := range matches {
		matched[m.VehicleID] = true
	}
	for i := range vehicles {
		if matched[vehicles[i].ID] {
			vehicles[i].Status = models.VehicleStatusAssigned
		}
	}
}

func summarize(t int64, vehicles []models.VehicleState, requests int, matches []models.MatchCommand, dispatches int) models.TickSummary {
	summary := models.TickSummary{
		Time:       t,
		Requests:   requests,
		Matches:    len(matches),
		Dispatches: dispatches,
	}
	for _, v := range vehicles {
		switch v.Status {
		case models.VehicleStatusOffDuty:
			continue
		case models.VehicleStatusOccupied:
			summary.OccupiedVehicles++
		}
		summary.ActiveVehicles++
	}
	if len(matches) > 0 {
		var total float64
		for _, m := range matches {
			total += m.Duration
		}
		summary.AverageWait = total / float64(len(matches))
	}
	return summary
}
