package entity

import (
	"fmt"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// behavior is the per-status transition function of a vehicle
type behavior struct {
	available bool
	step      func(v *Vehicle, dt int64, customers CustomerLookup)
}

var behaviors = map[models.VehicleStatus]behavior{
	models.VehicleStatusIdle:     {available: true, step: stepIdle},
	models.VehicleStatusCruising: {available: true, step: stepCruising},
	models.VehicleStatusAssigned: {available: false, step: stepAssigned},
	models.VehicleStatusOccupied: {available: false, step: stepOccupied},
	models.VehicleStatusOffDuty:  {available: false, step: stepOffDuty},
}

func behaviorOf(status models.VehicleStatus) behavior {
	b, ok := behaviors[status]
	if !ok {
		panic(fmt.Sprintf("unknown vehicle status %q", status))
	}
	return b
}

func stepIdle(v *Vehicle, dt int64, customers CustomerLookup) {}

func stepCruising(v *Vehicle, dt int64, customers CustomerLookup) {
	if v.UpdateTimeToDestination(dt) {
		v.Park()
		return
	}
	v.drive(dt)
}

func stepAssigned(v *Vehicle, dt int64, customers CustomerLookup) {
	if !v.UpdateTimeToDestination(dt) {
		return
	}
	customer, ok := customers.Get(v.assignedCustomer)
	v.require(ok, "pickup", fmt.Sprintf("assigned customer %d is gone", v.assignedCustomer))
	v.Pickup(customer)
}

func stepOccupied(v *Vehicle, dt int64, customers CustomerLookup) {
	if !v.UpdateTimeToDestination(dt) {
		return
	}
	customer := v.Dropoff()
	customer.GetOff()
}

func stepOffDuty(v *Vehicle, dt int64, customers CustomerLookup) {
	if v.UpdateTimeToDestination(dt) {
		v.Park()
	}
}
