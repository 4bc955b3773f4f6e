package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetsim/services/fleet"
	httpHandler "github.com/piresc/fleetsim/services/fleet/handler/http"
)

// Handler combines all handlers for the simulator
type Handler struct {
	snapshotHTTP *httpHandler.SnapshotHandler
}

// NewHandler creates a new combined handler
func NewHandler(snapshots fleet.SnapshotReader) *Handler {
	return &Handler{
		snapshotHTTP: httpHandler.NewSnapshotHandler(snapshots),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.GET("/vehicles", h.snapshotHTTP.ListVehicles)
	v1.GET("/vehicles/:vehicleID", h.snapshotHTTP.GetVehicle)
	v1.GET("/summary", h.snapshotHTTP.GetSummary)
}
