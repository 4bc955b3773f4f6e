package models

// EventKind names the stream an event belongs to
type EventKind string

const (
	EventKindVehicle  EventKind = "vehicle"
	EventKindCustomer EventKind = "customer"
	EventKindSummary  EventKind = "summary"
	EventKindScore    EventKind = "score"
)

// Event is the envelope published to external sinks
type Event struct {
	ID    string      `json:"id"`
	RunID string      `json:"run_id"`
	Kind  EventKind   `json:"kind"`
	Data  interface{} `json:"data"`
}

// VehicleEvent records a vehicle status transition
type VehicleEvent struct {
	Time       int64         `json:"t"`
	VehicleID  int64         `json:"vehicle_id"`
	Status     VehicleStatus `json:"status"`
	Location   Location      `json:"location"`
	Geohash    string        `json:"geohash,omitempty"`
	Speed      float64       `json:"speed"`
	CustomerID int64         `json:"customer_id,omitempty"`
}

// CustomerEvent records a customer status transition
type CustomerEvent struct {
	Time        int64          `json:"t"`
	CustomerID  int64          `json:"customer_id"`
	Status      CustomerStatus `json:"status"`
	Location    Location       `json:"location"`
	Geohash     string         `json:"geohash,omitempty"`
	WaitingTime float64        `json:"waiting_time"`
}

// TickSummary aggregates one simulation tick
type TickSummary struct {
	Time             int64   `json:"t"`
	ActiveVehicles   int     `json:"active_vehicles"`
	OccupiedVehicles int     `json:"occupied_vehicles"`
	Requests         int     `json:"requests"`
	Matches          int     `json:"matches"` // matches applied to the fleet
	Dispatches       int     `json:"dispatches"`
	AverageWait      float64 `json:"average_wait"` // seconds
}
