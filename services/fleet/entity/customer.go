package entity

import "github.com/piresc/fleetsim/internal/pkg/models"

// Customer wraps a ride request with its lifecycle
type Customer struct {
	request     models.Request
	status      models.CustomerStatus
	waitingTime float64
	env         *Env
}

// NewCustomer creates a customer that is calling for a vehicle
func NewCustomer(request models.Request, env *Env) *Customer {
	return &Customer{
		request: request,
		status:  models.CustomerStatusCalling,
		env:     env,
	}
}

// Step disappears a customer nobody answered during the previous tick
func (c *Customer) Step() {
	if c.status == models.CustomerStatusCalling {
		c.Disappear()
	}
}

// WaitForVehicle records the expected wait of a matched customer
func (c *Customer) WaitForVehicle(waitingTime float64) {
	c.require(c.status == models.CustomerStatusCalling, "wait_for_vehicle", "customer is not calling")
	c.waitingTime = waitingTime
	c.changeTo(models.CustomerStatusWaiting)
}

// RideOn boards the customer
func (c *Customer) RideOn() {
	c.require(c.status == models.CustomerStatusWaiting, "ride_on", "customer is not waiting")
	c.changeTo(models.CustomerStatusInVehicle)
}

// GetOff ends the ride
func (c *Customer) GetOff() {
	c.require(c.status == models.CustomerStatusInVehicle, "get_off", "customer is not in a vehicle")
	c.changeTo(models.CustomerStatusArrived)
}

// Disappear abandons the request
func (c *Customer) Disappear() {
	c.require(c.status == models.CustomerStatusCalling, "disappear", "customer is not calling")
	c.changeTo(models.CustomerStatusDisappeared)
}

// MakePayment returns the fare paid at dropoff
func (c *Customer) MakePayment() float64 {
	return c.request.Fare
}

func (c *Customer) ID() int64                     { return c.request.ID }
func (c *Customer) Status() models.CustomerStatus { return c.status }
func (c *Customer) Origin() models.Location       { return c.request.Origin }
func (c *Customer) Destination() models.Location  { return c.request.Destination }
func (c *Customer) TripTime() float64             { return c.request.TripTime }
func (c *Customer) WaitingTime() float64          { return c.waitingTime }
func (c *Customer) Request() models.Request       { return c.request }

// State returns a snapshot of the customer
func (c *Customer) State() models.CustomerState {
	return models.CustomerState{
		ID:          c.request.ID,
		Status:      c.status,
		Origin:      c.request.Origin,
		Destination: c.request.Destination,
		TripTime:    c.request.TripTime,
		Fare:        c.request.Fare,
		WaitingTime: c.waitingTime,
	}
}

func (c *Customer) changeTo(status models.CustomerStatus) {
	c.status = status

	location := c.request.Origin
	if status == models.CustomerStatusArrived {
		location = c.request.Destination
	}
	c.env.emit(models.EventKindCustomer, models.CustomerEvent{
		Time:        c.env.now(),
		CustomerID:  c.request.ID,
		Status:      status,
		Location:    location,
		WaitingTime: c.waitingTime,
	})
}

func (c *Customer) require(ok bool, op, reason string) {
	if !ok {
		panic(&PreconditionError{Entity: "customer", ID: c.request.ID, Op: op, Reason: reason})
	}
}
