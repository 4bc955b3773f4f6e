package fleet

import (
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet/entity"
)

// VehicleRepo holds the live vehicles of one simulation
type VehicleRepo interface {
	Populate(id int64, location models.Location) (*entity.Vehicle, error)
	Get(id int64) (*entity.Vehicle, bool)
	GetAll() []*entity.Vehicle
	States() []models.VehicleState
	Delete(id int64)
	Len() int
}

// CustomerRepo holds the live customers of one simulation
type CustomerRepo interface {
	// UpdateCustomers registers the requests of the tick as calling customers
	// and makes them the current set of new requests
	UpdateCustomers(requests []models.Request)
	Get(id int64) (*entity.Customer, bool)
	GetAll() []*entity.Customer
	NewRequests() []models.Request
	Delete(id int64)
	Len() int
}
