package models

import "fmt"

// Location is a WGS84 coordinate
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Cell is a discrete square of the simulation mesh
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Offset is a relative move between two cells
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Add returns the cell reached by applying the offset
func (c Cell) Add(o Offset) Cell {
	return Cell{X: c.X + o.DX, Y: c.Y + o.DY}
}

// OffsetTo returns the offset that moves c onto other
func (c Cell) OffsetTo(other Cell) Offset {
	return Offset{DX: other.X - c.X, DY: other.Y - c.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func (o Offset) String() string {
	return fmt.Sprintf("%d,%d", o.DX, o.DY)
}

// ODPair is an origin-destination pair submitted to the routing engine
type ODPair struct {
	Origin      Location `json:"origin"`
	Destination Location `json:"destination"`
}

// SnappedPoint is a coordinate snapped onto the road network
type SnappedPoint struct {
	Location Location `json:"location"`
	Distance float64  `json:"distance"` // meters from the query point
}
