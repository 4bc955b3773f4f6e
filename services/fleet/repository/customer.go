package repository

import (
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet/entity"
)

// CustomerRepository is an in-memory, insertion-ordered customer registry
type CustomerRepository struct {
	env         *entity.Env
	logger      *logger.ZapLogger
	customers   map[int64]*entity.Customer
	order       []int64
	newRequests []models.Request
}

// NewCustomerRepository creates an empty registry whose customers report to env
func NewCustomerRepository(env *entity.Env, log *logger.ZapLogger) *CustomerRepository {
	return &CustomerRepository{
		env:       env,
		logger:    log,
		customers: make(map[int64]*entity.Customer),
	}
}

// UpdateCustomers registers requests as calling customers and replaces the
// previous set of new requests. A request whose id is still live is dropped.
func (r *CustomerRepository) UpdateCustomers(requests []models.Request) {
	r.newRequests = make([]models.Request, 0, len(requests))
	for _, req := range requests {
		if _, exists := r.customers[req.ID]; exists {
			r.logger.Warn("Duplicate request id, skipping", logger.Int64("customer_id", req.ID))
			continue
		}
		r.customers[req.ID] = entity.NewCustomer(req, r.env)
		r.order = append(r.order, req.ID)
		r.newRequests = append(r.newRequests, req)
	}
}

// Get returns the customer with the given id
func (r *CustomerRepository) Get(id int64) (*entity.Customer, bool) {
	c, ok := r.customers[id]
	return c, ok
}

// GetAll returns every live customer in arrival order
func (r *CustomerRepository) GetAll() []*entity.Customer {
	out := make([]*entity.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.customers[id])
	}
	return out
}

// NewRequests returns the requests registered by the last UpdateCustomers
func (r *CustomerRepository) NewRequests() []models.Request {
	return append([]models.Request(nil), r.newRequests...)
}

// Delete removes a customer; unknown ids are ignored
func (r *CustomerRepository) Delete(id int64) {
	if _, ok := r.customers[id]; !ok {
		return
	}
	delete(r.customers, id)
	r.order = removeID(r.order, id)
}

// Len returns the number of live customers
func (r *CustomerRepository) Len() int {
	return len(r.customers)
}
