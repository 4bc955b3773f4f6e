package models

// VehicleStatus represents the behavior a vehicle is currently in
type VehicleStatus string

const (
	VehicleStatusIdle     VehicleStatus = "IDLE"
	VehicleStatusCruising VehicleStatus = "CRUISING"
	VehicleStatusAssigned VehicleStatus = "ASSIGNED"
	VehicleStatusOccupied VehicleStatus = "OCCUPIED"
	VehicleStatusOffDuty  VehicleStatus = "OFF_DUTY"
)

// VehicleStatuses lists every status in a stable order
var VehicleStatuses = []VehicleStatus{
	VehicleStatusIdle,
	VehicleStatusCruising,
	VehicleStatusAssigned,
	VehicleStatusOccupied,
	VehicleStatusOffDuty,
}

// Available reports whether a vehicle in this status may take a new command
func (s VehicleStatus) Available() bool {
	return s == VehicleStatusIdle || s == VehicleStatusCruising
}

// VehicleState is a read-only snapshot of a vehicle
type VehicleState struct {
	ID                int64         `json:"id"`
	Location          Location      `json:"location"`
	Speed             float64       `json:"speed"`
	Status            VehicleStatus `json:"status"`
	Destination       *Location     `json:"destination,omitempty"`
	AssignedCustomer  int64         `json:"assigned_customer_id,omitempty"`
	TimeToDestination float64       `json:"time_to_destination"`
	IdleDuration      int64         `json:"idle_duration"`
	Earnings          float64       `json:"earnings"`
}

// VehicleScore summarizes what a vehicle did during a run
type VehicleScore struct {
	ID        int64                   `json:"id"`
	Earnings  float64                 `json:"earnings"`
	Durations map[VehicleStatus]int64 `json:"durations"` // ticks spent in each status
}
