package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/twpayne/go-polyline"
)

// Asset file names under the routing data directory
const (
	ReachableMapFile = "reachable_map.json"
	TripTimeMapFile  = "tt_map.json"
	RoutesFile       = "routes.json"
)

// Assets holds the precomputed routing tables of a mesh
type Assets struct {
	Width     int
	Height    int
	MaxMove   int
	Reachable [][]bool // [x][y]
	tripTimes []float64
	routes    map[models.Cell]map[models.Offset][]models.Location
}

type reachableFile struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]bool `json:"cells"`
}

type tripTimeFile struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	MaxMove int       `json:"max_move"`
	Values  []float64 `json:"values"`
}

// LoadAssets reads the reachability map, the trip time tensor and the route
// table from dir
func LoadAssets(dir string) (*Assets, error) {
	var reach reachableFile
	if err := readJSON(filepath.Join(dir, ReachableMapFile), &reach); err != nil {
		return nil, err
	}
	var tt tripTimeFile
	if err := readJSON(filepath.Join(dir, TripTimeMapFile), &tt); err != nil {
		return nil, err
	}
	var raw map[string]map[string]string
	if err := readJSON(filepath.Join(dir, RoutesFile), &raw); err != nil {
		return nil, err
	}

	if reach.Width != tt.Width || reach.Height != tt.Height {
		return nil, fmt.Errorf("asset shape mismatch: reachable %dx%d, trip times %dx%d",
			reach.Width, reach.Height, tt.Width, tt.Height)
	}
	if len(reach.Cells) != reach.Width {
		return nil, fmt.Errorf("reachable map has %d columns, expected %d", len(reach.Cells), reach.Width)
	}
	for x, col := range reach.Cells {
		if len(col) != reach.Height {
			return nil, fmt.Errorf("reachable map column %d has %d cells, expected %d", x, len(col), reach.Height)
		}
	}
	side := 2*tt.MaxMove + 1
	if want := tt.Width * tt.Height * side * side; len(tt.Values) != want {
		return nil, fmt.Errorf("trip time tensor has %d values, expected %d", len(tt.Values), want)
	}

	routes, err := decodeRoutes(raw)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(tt.Values))
	for i, v := range tt.Values {
		if v < 0 {
			v = math.Inf(1)
		}
		values[i] = v
	}

	return &Assets{
		Width:     tt.Width,
		Height:    tt.Height,
		MaxMove:   tt.MaxMove,
		Reachable: reach.Cells,
		tripTimes: values,
		routes:    routes,
	}, nil
}

// NewAssets builds assets from in-memory tables. tripTimes is indexed like
// the tt_map.json values.
func NewAssets(width, height, maxMove int, reachable [][]bool, tripTimes []float64,
	routes map[models.Cell]map[models.Offset][]models.Location) *Assets {
	return &Assets{
		Width:     width,
		Height:    height,
		MaxMove:   maxMove,
		Reachable: reachable,
		tripTimes: tripTimes,
		routes:    routes,
	}
}

// InMove reports whether the offset lies within the precomputed move radius
func (a *Assets) InMove(o models.Offset) bool {
	return abs(o.DX) <= a.MaxMove && abs(o.DY) <= a.MaxMove
}

// IsReachable reports whether the cell is inside the grid and on the road network
func (a *Assets) IsReachable(c models.Cell) bool {
	if c.X < 0 || c.X >= a.Width || c.Y < 0 || c.Y >= a.Height {
		return false
	}
	return a.Reachable[c.X][c.Y]
}

// TripTime returns the precomputed trip time of moving by o from c, +Inf when
// there is none
func (a *Assets) TripTime(c models.Cell, o models.Offset) float64 {
	i, ok := a.index(c, o)
	if !ok {
		return math.Inf(1)
	}
	return a.tripTimes[i]
}

// Trajectory returns the precomputed polyline of moving by o from c
func (a *Assets) Trajectory(c models.Cell, o models.Offset) ([]models.Location, bool) {
	byOffset, ok := a.routes[c]
	if !ok {
		return nil, false
	}
	path, ok := byOffset[o]
	if !ok {
		return nil, false
	}
	return append([]models.Location(nil), path...), true
}

func (a *Assets) index(c models.Cell, o models.Offset) (int, bool) {
	if c.X < 0 || c.X >= a.Width || c.Y < 0 || c.Y >= a.Height || !a.InMove(o) {
		return 0, false
	}
	side := 2*a.MaxMove + 1
	return ((c.X*a.Height+c.Y)*side+o.DX+a.MaxMove)*side + o.DY + a.MaxMove, true
}

func decodeRoutes(raw map[string]map[string]string) (map[models.Cell]map[models.Offset][]models.Location, error) {
	routes := make(map[models.Cell]map[models.Offset][]models.Location, len(raw))
	for cellKey, byOffset := range raw {
		x, y, err := parsePair(cellKey)
		if err != nil {
			return nil, fmt.Errorf("route table cell %q: %w", cellKey, err)
		}
		cell := models.Cell{X: x, Y: y}
		routes[cell] = make(map[models.Offset][]models.Location, len(byOffset))
		for offsetKey, encoded := range byOffset {
			dx, dy, err := parsePair(offsetKey)
			if err != nil {
				return nil, fmt.Errorf("route table offset %q: %w", offsetKey, err)
			}
			path, err := DecodePolyline(encoded)
			if err != nil {
				return nil, fmt.Errorf("route %s/%s: %w", cellKey, offsetKey, err)
			}
			routes[cell][models.Offset{DX: dx, DY: dy}] = path
		}
	}
	return routes, nil
}

// DecodePolyline decodes a precision 5 encoded polyline into locations
func DecodePolyline(encoded string) ([]models.Location, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]models.Location, len(coords))
	for i, c := range coords {
		path[i] = models.Location{Latitude: c[0], Longitude: c[1]}
	}
	return path, nil
}

// EncodePolyline encodes locations as a precision 5 polyline
func EncodePolyline(path []models.Location) string {
	coords := make([][]float64, len(path))
	for i, l := range path {
		coords[i] = []float64{l.Latitude, l.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}

func parsePair(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"a,b\"")
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
