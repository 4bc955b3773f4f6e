package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	httpclient "github.com/piresc/fleetsim/internal/pkg/http"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
	"github.com/piresc/fleetsim/services/routing"
	"github.com/piresc/fleetsim/services/routing/repository"
)

// maxTableSources bounds the number of origins sent in one table request
const maxTableSources = 50

// OSRM response codes meaning the points are not connected
var unreachableCodes = map[string]bool{
	"NoRoute":   true,
	"NoSegment": true,
	"NoTable":   true,
}

// OSRMEngine answers routing queries through an OSRM HTTP backend
type OSRMEngine struct {
	host      string
	requester *Requester
	cache     *repository.RouteCache
	mesh      *utils.Mesh
	logger    *logger.ZapLogger
}

// NewOSRMEngine creates an engine sending requests to host through requester
func NewOSRMEngine(host string, requester *Requester, cache *repository.RouteCache, mesh *utils.Mesh, log *logger.ZapLogger) *OSRMEngine {
	return &OSRMEngine{
		host:      strings.TrimRight(host, "/"),
		requester: requester,
		cache:     cache,
		mesh:      mesh,
		logger:    log,
	}
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

type osrmNearestResponse struct {
	Code      string `json:"code"`
	Waypoints []struct {
		Location [2]float64 `json:"location"` // lon, lat
		Distance float64    `json:"distance"`
	} `json:"waypoints"`
}

type osrmTableResponse struct {
	Code      string       `json:"code"`
	Durations [][]*float64 `json:"durations"`
}

// Route requests one route per pair
func (e *OSRMEngine) Route(ctx context.Context, pairs []models.ODPair) ([]models.Route, error) {
	urls := make([]string, len(pairs))
	for i, p := range pairs {
		urls[i] = e.routeURL(p.Origin, p.Destination)
	}

	routes := make([]models.Route, len(pairs))
	err := e.requester.Send(ctx, urls, func(ctx context.Context, i int, u string) error {
		var resp osrmRouteResponse
		if err := e.fetch(ctx, u, &resp); err != nil {
			if !errors.Is(err, routing.ErrNoRoute) {
				return err
			}
			resp.Code = "NoRoute"
		}
		if unreachableCodes[resp.Code] {
			routes[i] = models.UnreachableRoute()
			return nil
		}
		if len(resp.Routes) == 0 {
			return fmt.Errorf("%w: no routes in response (code %q)", routing.ErrBadResponse, resp.Code)
		}

		r := resp.Routes[0]
		trajectory, err := repository.DecodePolyline(r.Geometry)
		if err != nil {
			return fmt.Errorf("%w: %v", routing.ErrBadResponse, err)
		}
		if len(trajectory) == 0 {
			trajectory = []models.Location{pairs[i].Origin, pairs[i].Destination}
		}
		routes[i] = models.Route{Trajectory: trajectory, Distance: r.Distance, TripTime: r.Duration}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}
	return routes, nil
}

// RouteFromCache routes between the centers of key.Cell and the cell reached
// by key.Offset, remembering the result
func (e *OSRMEngine) RouteFromCache(ctx context.Context, key models.RouteCacheKey) (models.Route, error) {
	return e.cache.GetOrCompute(ctx, key, func(ctx context.Context) (models.Route, error) {
		pair := models.ODPair{
			Origin:      e.mesh.CellToLonLat(key.Cell),
			Destination: e.mesh.CellToLonLat(key.Cell.Add(key.Offset)),
		}
		routes, err := e.Route(ctx, []models.ODPair{pair})
		if err != nil {
			return models.Route{}, err
		}
		return routes[0], nil
	})
}

// NearestRoad snaps each point with the nearest service. Points the backend
// cannot snap keep their location with an infinite distance.
func (e *OSRMEngine) NearestRoad(ctx context.Context, points []models.Location) ([]models.SnappedPoint, error) {
	urls := make([]string, len(points))
	for i, p := range points {
		urls[i] = e.nearestURL(p)
	}

	snapped := make([]models.SnappedPoint, len(points))
	err := e.requester.Send(ctx, urls, func(ctx context.Context, i int, u string) error {
		var resp osrmNearestResponse
		if err := e.fetch(ctx, u, &resp); err != nil {
			if !errors.Is(err, routing.ErrNoRoute) {
				return err
			}
			resp.Code = "NoRoute"
		}
		if unreachableCodes[resp.Code] {
			snapped[i] = models.SnappedPoint{Location: points[i], Distance: math.Inf(1)}
			return nil
		}
		if len(resp.Waypoints) == 0 {
			return fmt.Errorf("%w: no waypoints in response (code %q)", routing.ErrBadResponse, resp.Code)
		}

		w := resp.Waypoints[0]
		snapped[i] = models.SnappedPoint{
			Location: models.Location{Latitude: w.Location[1], Longitude: w.Location[0]},
			Distance: w.Distance,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm nearest: %w", err)
	}
	return snapped, nil
}

// ETAManyToMany requests the duration table between origins and
// destinations. Origins are split into groups to bound the URL length; null
// durations become +Inf.
func (e *OSRMEngine) ETAManyToMany(ctx context.Context, origins, destinations []models.Location) ([][]float64, error) {
	etas := make([][]float64, len(origins))
	if len(origins) == 0 {
		return etas, nil
	}
	if len(destinations) == 0 {
		for i := range etas {
			etas[i] = []float64{}
		}
		return etas, nil
	}

	var (
		urls   []string
		starts []int
	)
	for start := 0; start < len(origins); start += maxTableSources {
		end := min(start+maxTableSources, len(origins))
		urls = append(urls, e.tableURL(origins[start:end], destinations))
		starts = append(starts, start)
	}

	err := e.requester.Send(ctx, urls, func(ctx context.Context, i int, u string) error {
		start := starts[i]
		end := min(start+maxTableSources, len(origins))

		var resp osrmTableResponse
		if err := e.fetch(ctx, u, &resp); err != nil {
			if !errors.Is(err, routing.ErrNoRoute) {
				return err
			}
			resp.Code = "NoRoute"
		}
		if unreachableCodes[resp.Code] {
			for o := start; o < end; o++ {
				etas[o] = infRow(len(destinations))
			}
			return nil
		}
		if len(resp.Durations) != end-start {
			return fmt.Errorf("%w: table has %d rows, expected %d", routing.ErrBadResponse, len(resp.Durations), end-start)
		}

		for r, durations := range resp.Durations {
			if len(durations) != len(destinations) {
				return fmt.Errorf("%w: table row has %d columns, expected %d", routing.ErrBadResponse, len(durations), len(destinations))
			}
			row := make([]float64, len(durations))
			for c, d := range durations {
				if d == nil || math.IsNaN(*d) {
					row[c] = math.Inf(1)
					continue
				}
				row[c] = *d
			}
			etas[start+r] = row
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm table: %w", err)
	}
	return etas, nil
}

// fetch decodes a response into out. A 400 carrying one of the unreachable
// codes is reported as routing.ErrNoRoute.
func (e *OSRMEngine) fetch(ctx context.Context, u string, out interface{}) error {
	err := e.requester.client.GetJSON(ctx, u, out)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusBadRequest {
		var body struct {
			Code string `json:"code"`
		}
		if json.Unmarshal(httpErr.Body, &body) == nil && unreachableCodes[body.Code] {
			e.logger.Debug("OSRM reports no route", logger.String("code", body.Code), logger.String("url", u))
			return fmt.Errorf("%w: %s", routing.ErrNoRoute, body.Code)
		}
	}
	return err
}

func (e *OSRMEngine) routeURL(from, to models.Location) string {
	return fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full",
		e.host, formatCoord(from.Longitude), formatCoord(from.Latitude), formatCoord(to.Longitude), formatCoord(to.Latitude))
}

func (e *OSRMEngine) nearestURL(p models.Location) string {
	return fmt.Sprintf("%s/nearest/v1/driving/%s,%s?number=1", e.host, formatCoord(p.Longitude), formatCoord(p.Latitude))
}

func (e *OSRMEngine) tableURL(origins, destinations []models.Location) string {
	points := make([]models.Location, 0, len(origins)+len(destinations))
	points = append(points, origins...)
	points = append(points, destinations...)

	sources := make([]string, len(origins))
	for i := range origins {
		sources[i] = strconv.Itoa(i)
	}
	destins := make([]string, len(destinations))
	for j := range destinations {
		destins[j] = strconv.Itoa(len(origins) + j)
	}

	return fmt.Sprintf("%s/table/v1/driving/polyline(%s)?sources=%s&destinations=%s",
		e.host, url.PathEscape(repository.EncodePolyline(points)), strings.Join(sources, ";"), strings.Join(destins, ";"))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func infRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.Inf(1)
	}
	return row
}
