package repository

import (
	"fmt"

	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet/entity"
)

// VehicleRepository is an in-memory, insertion-ordered vehicle registry
type VehicleRepository struct {
	env      *entity.Env
	vehicles map[int64]*entity.Vehicle
	order    []int64
}

// NewVehicleRepository creates an empty registry whose vehicles report to env
func NewVehicleRepository(env *entity.Env) *VehicleRepository {
	return &VehicleRepository{
		env:      env,
		vehicles: make(map[int64]*entity.Vehicle),
	}
}

// Populate creates an idle vehicle at location
func (r *VehicleRepository) Populate(id int64, location models.Location) (*entity.Vehicle, error) {
	if _, exists := r.vehicles[id]; exists {
		return nil, fmt.Errorf("vehicle %d already exists", id)
	}
	v := entity.NewVehicle(id, location, r.env)
	r.vehicles[id] = v
	r.order = append(r.order, id)
	return v, nil
}

// Get returns the vehicle with the given id
func (r *VehicleRepository) Get(id int64) (*entity.Vehicle, bool) {
	v, ok := r.vehicles[id]
	return v, ok
}

// GetAll returns every vehicle in insertion order
func (r *VehicleRepository) GetAll() []*entity.Vehicle {
	out := make([]*entity.Vehicle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.vehicles[id])
	}
	return out
}

// States returns a snapshot of every vehicle in insertion order
func (r *VehicleRepository) States() []models.VehicleState {
	out := make([]models.VehicleState, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.vehicles[id].State())
	}
	return out
}

// Delete removes a vehicle; unknown ids are ignored
func (r *VehicleRepository) Delete(id int64) {
	if _, ok := r.vehicles[id]; !ok {
		return
	}
	delete(r.vehicles, id)
	r.order = removeID(r.order, id)
}

// Len returns the number of vehicles
func (r *VehicleRepository) Len() int {
	return len(r.vehicles)
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
