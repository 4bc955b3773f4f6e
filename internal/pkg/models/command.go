package models

// MatchCommand assigns a vehicle to a waiting customer
type MatchCommand struct {
	VehicleID  int64   `json:"vehicle_id"`
	CustomerID int64   `json:"customer_id"`
	Duration   float64 `json:"duration"` // expected pickup time in seconds
}

// DispatchCommand repositions a vehicle. Exactly one of Destination, CacheKey
// or OffDuty is set.
type DispatchCommand struct {
	VehicleID   int64          `json:"vehicle_id"`
	Destination *Location      `json:"destination,omitempty"`
	CacheKey    *RouteCacheKey `json:"cache_key,omitempty"`
	OffDuty     bool           `json:"offduty,omitempty"`
}
