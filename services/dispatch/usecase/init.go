package usecase

import (
	"math/rand"

	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
)

// RandomCruiseUC sends vehicles that have not been commanded recently to a
// random nearby cell, and long idle ones off duty now and then
type RandomCruiseUC struct {
	cfg       models.DispatchConfig
	maxMove   int
	mesh      *utils.Mesh
	rng       *rand.Rand
	updatedAt map[int64]int64
	logger    *logger.ZapLogger
}

// NewRandomCruiseUC creates a new random cruise dispatch use case
func NewRandomCruiseUC(
	cfg models.DispatchConfig,
	maxMove int,
	mesh *utils.Mesh,
	rng *rand.Rand,
	log *logger.ZapLogger,
) *RandomCruiseUC {
	return &RandomCruiseUC{
		cfg:       cfg,
		maxMove:   maxMove,
		mesh:      mesh,
		rng:       rng,
		updatedAt: make(map[int64]int64),
		logger:    log,
	}
}

// NopUC never dispatches
type NopUC struct{}

// NewNopUC creates a dispatch use case that leaves vehicles alone
func NewNopUC() *NopUC {
	return &NopUC{}
}
