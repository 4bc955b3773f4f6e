package gateway

import (
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet"
)

// LogSink writes events to the structured log
type LogSink struct {
	logger *logger.ZapLogger
}

// NewLogSink creates a sink backed by log
func NewLogSink(log *logger.ZapLogger) *LogSink {
	return &LogSink{logger: log}
}

// OnEvent logs summaries and scores at INFO, state transitions at DEBUG
func (s *LogSink) OnEvent(kind models.EventKind, data interface{}) {
	switch ev := data.(type) {
	case models.TickSummary:
		s.logger.Info("Tick summary",
			logger.Int64("t", ev.Time),
			logger.Int("active_vehicles", ev.ActiveVehicles),
			logger.Int("occupied_vehicles", ev.OccupiedVehicles),
			logger.Int("requests", ev.Requests),
			logger.Int("matches", ev.Matches),
			logger.Int("dispatches", ev.Dispatches),
			logger.Float64("average_wait", ev.AverageWait))
	case models.VehicleScore:
		s.logger.Info("Vehicle score",
			logger.Int64("vehicle_id", ev.ID),
			logger.Float64("earnings", ev.Earnings),
			logger.Any("durations", ev.Durations))
	case models.VehicleEvent:
		s.logger.Debug("Vehicle event",
			logger.Int64("t", ev.Time),
			logger.Int64("vehicle_id", ev.VehicleID),
			logger.String("status", string(ev.Status)),
			logger.Float64("lat", ev.Location.Latitude),
			logger.Float64("lon", ev.Location.Longitude),
			logger.Float64("speed", ev.Speed))
	case models.CustomerEvent:
		s.logger.Debug("Customer event",
			logger.Int64("t", ev.Time),
			logger.Int64("customer_id", ev.CustomerID),
			logger.String("status", string(ev.Status)),
			logger.Float64("waiting_time", ev.WaitingTime))
	default:
		s.logger.Debug("Event", logger.String("kind", string(kind)), logger.Any("data", data))
	}
}

// MultiSink fans every event out to several sinks in order
type MultiSink []fleet.EventSink

// OnEvent forwards the event to every sink
func (m MultiSink) OnEvent(kind models.EventKind, data interface{}) {
	for _, s := range m {
		s.OnEvent(kind, data)
	}
}

// NopSink drops every event
type NopSink struct{}

// OnEvent does nothing
func (NopSink) OnEvent(models.EventKind, interface{}) {}
