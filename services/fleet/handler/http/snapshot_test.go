package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetsim/internal/pkg/models"
	"github.com/piresc/fleetsim/services/fleet"
	"github.com/piresc/fleetsim/services/fleet/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehiclesResponse struct {
	Success bool                  `json:"success"`
	Data    []models.VehicleState `json:"data"`
	Error   string                `json:"error"`
}

func testSnapshot() fleet.Snapshot {
	return fleet.Snapshot{
		Summary: models.TickSummary{Time: 1464753660, ActiveVehicles: 2, Requests: 3},
		Vehicles: []models.VehicleState{
			{ID: 1, Status: models.VehicleStatusIdle, Location: models.Location{Latitude: 40.75, Longitude: -73.99}},
			{ID: 2, Status: models.VehicleStatusCruising, Location: models.Location{Latitude: 40.76, Longitude: -73.98}},
		},
	}
}

func serve(h echo.HandlerFunc, target string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	_ = h(c)
	return rec
}

func TestSnapshotHandler_ListVehicles(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ready      bool
		wantStatus int
		wantIDs    []int64
	}{
		{name: "all vehicles", target: "/v1/vehicles", ready: true, wantStatus: http.StatusOK, wantIDs: []int64{1, 2}},
		{name: "filtered by status", target: "/v1/vehicles?status=cruising", ready: true, wantStatus: http.StatusOK, wantIDs: []int64{2}},
		{name: "unknown status", target: "/v1/vehicles?status=flying", ready: true, wantStatus: http.StatusBadRequest},
		{name: "no tick yet", target: "/v1/vehicles", ready: false, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockSnapshotReader(ctrl)
			if tt.ready {
				reader.EXPECT().Latest().Return(testSnapshot(), true)
			} else {
				reader.EXPECT().Latest().Return(fleet.Snapshot{}, false)
			}
			h := NewSnapshotHandler(reader)

			// Act
			rec := serve(h.ListVehicles, tt.target, nil)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			var body vehiclesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantStatus != http.StatusOK {
				assert.False(t, body.Success)
				assert.NotEmpty(t, body.Error)
				return
			}
			var ids []int64
			for _, v := range body.Data {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSnapshotHandler_GetVehicle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		expectRead bool
		wantStatus int
	}{
		{name: "found", id: "2", expectRead: true, wantStatus: http.StatusOK},
		{name: "missing", id: "9", expectRead: true, wantStatus: http.StatusNotFound},
		{name: "invalid id", id: "abc", expectRead: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockSnapshotReader(ctrl)
			if tt.expectRead {
				reader.EXPECT().Latest().Return(testSnapshot(), true)
			}
			h := NewSnapshotHandler(reader)

			rec := serve(h.GetVehicle, "/v1/vehicles/"+tt.id, map[string]string{"vehicleID": tt.id})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSnapshotHandler_GetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockSnapshotReader(ctrl)
	reader.EXPECT().Latest().Return(testSnapshot(), true)
	h := NewSnapshotHandler(reader)

	rec := serve(h.GetSummary, "/v1/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool               `json:"success"`
		Data    models.TickSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, testSnapshot().Summary, body.Data)
}
