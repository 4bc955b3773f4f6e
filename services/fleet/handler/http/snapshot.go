package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/internal/utils"
	"github.com/piresc/fleetsim/services/fleet"
)

const notStarted = "Simulation has not completed a tick yet"

// SnapshotHandler serves the latest published snapshot of the fleet
type SnapshotHandler struct {
	snapshots fleet.SnapshotReader
}

// NewSnapshotHandler creates a new snapshot HTTP handler
func NewSnapshotHandler(snapshots fleet.SnapshotReader) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// ListVehicles returns every vehicle, optionally filtered by ?status=
func (h *SnapshotHandler) ListVehicles(c echo.Context) error {
	snapshot, ok := h.snapshots.Latest()
	if !ok {
		return utils.ServiceUnavailableResponse(c, notStarted)
	}

	status := strings.ToUpper(c.QueryParam("status"))
	if status == "" {
		return utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved", snapshot.Vehicles)
	}
	if !knownStatus(models.VehicleStatus(status)) {
		return utils.BadRequestResponse(c, "Unknown vehicle status: "+status)
	}

	vehicles := make([]models.VehicleState, 0, len(snapshot.Vehicles))
	for _, v := range snapshot.Vehicles {
		if v.Status == models.VehicleStatus(status) {
			vehicles = append(vehicles, v)
		}
	}
	return utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved", vehicles)
}

// GetVehicle returns one vehicle by id
func (h *SnapshotHandler) GetVehicle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("vehicleID"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid vehicle ID")
	}

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		return utils.ServiceUnavailableResponse(c, notStarted)
	}

	for _, v := range snapshot.Vehicles {
		if v.ID == id {
			return utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved", v)
		}
	}
	return utils.NotFoundResponse(c, "Vehicle not found")
}

// GetSummary returns the summary of the last tick
func (h *SnapshotHandler) GetSummary(c echo.Context) error {
	snapshot, ok := h.snapshots.Latest()
	if !ok {
		return utils.ServiceUnavailableResponse(c, notStarted)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Summary retrieved", snapshot.Summary)
}

func knownStatus(status models.VehicleStatus) bool {
	for _, s := range models.VehicleStatuses {
		if s == status {
			return true
		}
	}
	return false
}
