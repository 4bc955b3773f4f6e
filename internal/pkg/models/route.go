package models

import "math"

// Route is a routed trajectory between two points
type Route struct {
	Trajectory []Location `json:"trajectory"`
	Distance   float64    `json:"distance"`  // meters
	TripTime   float64    `json:"trip_time"` // seconds, +Inf when unreachable
}

// Reachable reports whether the route has a finite trip time
func (r Route) Reachable() bool {
	return !math.IsInf(r.TripTime, 0) && !math.IsNaN(r.TripTime)
}

// UnreachableRoute returns a route with an infinite trip time
func UnreachableRoute() Route {
	return Route{TripTime: math.Inf(1)}
}

// RouteCacheKey identifies a cached route by its origin cell and the move applied to it
type RouteCacheKey struct {
	Cell   Cell   `json:"cell"`
	Offset Offset `json:"offset"`
}
