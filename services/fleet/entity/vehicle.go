package entity

import (
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

// CustomerLookup resolves customers by id
type CustomerLookup interface {
	Get(id int64) (*Customer, bool)
}

// Vehicle is a simulated vehicle. Its state only changes through the
// operations below, each of which checks the current behavior first.
type Vehicle struct {
	id                int64
	location          models.Location
	speed             float64
	status            models.VehicleStatus
	destination       *models.Location
	assignedCustomer  int64
	onboard           *Customer
	timeToDestination float64
	idleDuration      int64
	earnings          float64
	route             []models.Location
	durations         map[models.VehicleStatus]int64
	env               *Env
}

// NewVehicle creates an idle vehicle at location
func NewVehicle(id int64, location models.Location, env *Env) *Vehicle {
	v := &Vehicle{
		id:        id,
		location:  location,
		status:    models.VehicleStatusIdle,
		durations: make(map[models.VehicleStatus]int64, len(models.VehicleStatuses)),
		env:       env,
	}
	v.emit()
	return v
}

// Step advances the vehicle by dt seconds according to its behavior
func (v *Vehicle) Step(dt int64, customers CustomerLookup) {
	b := behaviorOf(v.status)
	if b.available {
		v.idleDuration += dt
	} else {
		v.idleDuration = 0
	}
	v.durations[v.status]++
	b.step(v, dt, customers)
}

// Cruise moves the vehicle along route without a passenger
func (v *Vehicle) Cruise(route []models.Location, tripTime, speed float64) {
	v.requireAvailable("cruise")
	v.require(len(route) > 0, "cruise", "empty route")

	v.resetPlan()
	v.route = append([]models.Location(nil), route...)
	v.speed = speed
	v.setDestination(route[len(route)-1], tripTime)
	v.changeTo(models.VehicleStatusCruising)
}

// HeadForCustomer sends the vehicle to pick up a customer at destination
func (v *Vehicle) HeadForCustomer(destination models.Location, tripTime float64, customerID int64) {
	v.requireAvailable("head_for_customer")

	v.resetPlan()
	v.setDestination(destination, tripTime)
	v.assignedCustomer = customerID
	v.changeTo(models.VehicleStatusAssigned)
}

// Pickup boards the assigned customer
func (v *Vehicle) Pickup(customer *Customer) {
	v.require(v.status == models.VehicleStatusAssigned, "pickup", "vehicle is not assigned")
	v.require(customer.ID() == v.assignedCustomer, "pickup", "customer is not the assigned one")
	v.require(v.location == customer.Origin(), "pickup", "vehicle is not at the customer origin")

	customer.RideOn()
	v.resetPlan()
	v.assignedCustomer = customer.ID()
	v.setDestination(customer.Destination(), customer.TripTime())
	v.onboard = customer
	v.changeTo(models.VehicleStatusOccupied)
}

// Dropoff releases the passenger and collects the fare
func (v *Vehicle) Dropoff() *Customer {
	v.require(v.onboard != nil, "dropoff", "no customer on board")
	v.require(v.location == v.onboard.Destination(), "dropoff", "vehicle is not at the customer destination")

	customer := v.onboard
	v.onboard = nil
	v.resetPlan()
	v.earnings += customer.MakePayment()
	v.changeTo(models.VehicleStatusIdle)
	return customer
}

// Park stops the vehicle where it is
func (v *Vehicle) Park() {
	v.resetPlan()
	v.changeTo(models.VehicleStatusIdle)
}

// TakeRest takes the vehicle off duty for duration seconds
func (v *Vehicle) TakeRest(duration float64) {
	v.requireAvailable("take_rest")

	v.resetPlan()
	v.idleDuration = 0
	v.setDestination(v.location, duration)
	v.changeTo(models.VehicleStatusOffDuty)
}

// UpdateLocation moves the vehicle and replaces the remaining route
func (v *Vehicle) UpdateLocation(location models.Location, route []models.Location) {
	v.location = location
	v.route = route
}

// UpdateTimeToDestination consumes dt seconds of the remaining trip and
// reports whether the vehicle arrived, in which case it is moved onto its
// destination
func (v *Vehicle) UpdateTimeToDestination(dt int64) bool {
	v.timeToDestination -= float64(dt)
	if v.timeToDestination > 0 {
		return false
	}

	v.timeToDestination = 0
	if v.destination != nil {
		v.location = *v.destination
	}
	return true
}

func (v *Vehicle) ID() int64                             { return v.id }
func (v *Vehicle) Location() models.Location             { return v.location }
func (v *Vehicle) Status() models.VehicleStatus          { return v.status }
func (v *Vehicle) Speed() float64                        { return v.speed }
func (v *Vehicle) IdleDuration() int64                   { return v.idleDuration }
func (v *Vehicle) Earnings() float64                     { return v.earnings }
func (v *Vehicle) TimeToDestination() float64            { return v.timeToDestination }
func (v *Vehicle) AssignedCustomerID() int64             { return v.assignedCustomer }
func (v *Vehicle) Route() []models.Location              { return v.route }
func (v *Vehicle) Available() bool                       { return behaviorOf(v.status).available }
func (v *Vehicle) Duration(s models.VehicleStatus) int64 { return v.durations[s] }

// State returns a snapshot of the vehicle
func (v *Vehicle) State() models.VehicleState {
	state := models.VehicleState{
		ID:                v.id,
		Location:          v.location,
		Speed:             v.speed,
		Status:            v.status,
		AssignedCustomer:  v.assignedCustomer,
		TimeToDestination: v.timeToDestination,
		IdleDuration:      v.idleDuration,
		Earnings:          v.earnings,
	}
	if v.destination != nil {
		dest := *v.destination
		state.Destination = &dest
	}
	return state
}

// Score returns the earnings and time spent per status
func (v *Vehicle) Score() models.VehicleScore {
	durations := make(map[models.VehicleStatus]int64, len(v.durations))
	for s, d := range v.durations {
		durations[s] = d
	}
	return models.VehicleScore{ID: v.id, Earnings: v.earnings, Durations: durations}
}

func (v *Vehicle) resetPlan() {
	v.destination = nil
	v.speed = 0
	v.timeToDestination = 0
	v.assignedCustomer = 0
	v.route = nil
}

func (v *Vehicle) setDestination(destination models.Location, tripTime float64) {
	v.destination = &destination
	v.timeToDestination = tripTime
}

func (v *Vehicle) changeTo(status models.VehicleStatus) {
	v.status = status
	v.emit()
}

func (v *Vehicle) emit() {
	v.env.emit(models.EventKindVehicle, models.VehicleEvent{
		Time:       v.env.now(),
		VehicleID:  v.id,
		Status:     v.status,
		Location:   v.location,
		Speed:      v.speed,
		CustomerID: v.assignedCustomer,
	})
}

func (v *Vehicle) requireAvailable(op string) {
	v.require(v.Available(), op, "vehicle is "+string(v.status))
}

func (v *Vehicle) require(ok bool, op, reason string) {
	if !ok {
		panic(&PreconditionError{Entity: "vehicle", ID: v.id, Op: op, Reason: reason})
	}
}

// drive advances along the route by speed*dt meters, stepping across
// polyline segments on the great circle
func (v *Vehicle) drive(dt int64) {
	left := v.speed * float64(dt)
	from := v.location
	for i, to := range v.route {
		d := utils.GreatCircleDistance(from, to)
		if left < d {
			next := utils.EndLocation(from, utils.Bearing(from, to), left)
			v.UpdateLocation(next, v.route[i:])
			return
		}
		left -= d
		from = to
	}
	if len(v.route) > 0 {
		v.UpdateLocation(v.route[len(v.route)-1], nil)
	}
}
