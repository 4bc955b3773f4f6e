package models

// CustomerStatus represents the lifecycle stage of a customer
type CustomerStatus string

const (
	CustomerStatusCalling     CustomerStatus = "CALLING"
	CustomerStatusWaiting     CustomerStatus = "WAITING"
	CustomerStatusInVehicle   CustomerStatus = "IN_VEHICLE"
	CustomerStatusArrived     CustomerStatus = "ARRIVED"
	CustomerStatusDisappeared CustomerStatus = "DISAPPEARED"
)

// Terminal reports whether the customer is done and can be removed
func (s CustomerStatus) Terminal() bool {
	return s == CustomerStatusArrived || s == CustomerStatusDisappeared
}

// CustomerState is a read-only snapshot of a customer
type CustomerState struct {
	ID          int64          `json:"id"`
	Status      CustomerStatus `json:"status"`
	Origin      Location       `json:"origin"`
	Destination Location       `json:"destination"`
	TripTime    float64        `json:"trip_time"`
	Fare        float64        `json:"fare"`
	WaitingTime float64        `json:"waiting_time"`
}
