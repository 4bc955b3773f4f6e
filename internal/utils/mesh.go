package utils

import (
	"math"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// Mesh bins coordinates into a fixed grid of cells
type Mesh struct {
	MinLat   float64
	MinLon   float64
	DeltaLat float64
	DeltaLon float64
	Width    int
	Height   int
}

// NewMesh builds the grid described by the mesh configuration
func NewMesh(cfg models.MeshConfig) *Mesh {
	return &Mesh{
		MinLat:   cfg.CenterLatitude - cfg.LatWidth/2,
		MinLon:   cfg.CenterLongitude - cfg.LonWidth/2,
		DeltaLat: cfg.DeltaLat,
		DeltaLon: cfg.DeltaLon,
		Width:    int(cfg.LonWidth/cfg.DeltaLon) + 1,
		Height:   int(cfg.LatWidth/cfg.DeltaLat) + 1,
	}
}

// LonLatToCell returns the cell containing l, clamped to the grid
func (m *Mesh) LonLatToCell(l models.Location) models.Cell {
	return models.Cell{
		X: clampIndex(math.Floor((l.Longitude-m.MinLon)/m.DeltaLon), m.Width),
		Y: clampIndex(math.Floor((l.Latitude-m.MinLat)/m.DeltaLat), m.Height),
	}
}

// CellToLonLat returns the center of the cell
func (m *Mesh) CellToLonLat(c models.Cell) models.Location {
	return models.Location{
		Latitude:  m.MinLat + m.DeltaLat*(float64(c.Y)+0.5),
		Longitude: m.MinLon + m.DeltaLon*(float64(c.X)+0.5),
	}
}

// Snap returns the center of the cell containing l
func (m *Mesh) Snap(l models.Location) models.Location {
	return m.CellToLonLat(m.LonLatToCell(l))
}

// Contains reports whether the cell lies inside the grid
func (m *Mesh) Contains(c models.Cell) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

func clampIndex(v float64, size int) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > float64(size-1) {
		return size - 1
	}
	return int(v)
}
