package entity

import (
	"testing"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

type recordingSink struct {
	events []recordedEvent
}

type recordedEvent struct {
	kind models.EventKind
	data interface{}
}

func (s *recordingSink) OnEvent(kind models.EventKind, data interface{}) {
	s.events = append(s.events, recordedEvent{kind: kind, data: data})
}

func (s *recordingSink) vehicleStatuses() []models.VehicleStatus {
	var out []models.VehicleStatus
	for _, e := range s.events {
		if ev, ok := e.data.(models.VehicleEvent); ok {
			out = append(out, ev.Status)
		}
	}
	return out
}

func (s *recordingSink) customerStatuses() []models.CustomerStatus {
	var out []models.CustomerStatus
	for _, e := range s.events {
		if ev, ok := e.data.(models.CustomerEvent); ok {
			out = append(out, ev.Status)
		}
	}
	return out
}

type customerMap map[int64]*Customer

func (m customerMap) Get(id int64) (*Customer, bool) {
	c, ok := m[id]
	return c, ok
}

func newTestEnv(t *testing.T) (*Env, *recordingSink, *int64) {
	t.Helper()
	sink := &recordingSink{}
	now := int64(1000)
	return &Env{Sink: sink, Clock: func() int64 { return now }}, sink, &now
}

var (
	midtown = models.Location{Latitude: 40.7549, Longitude: -73.9840}
	queens  = models.Location{Latitude: 40.7420, Longitude: -73.9000}
)
