package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	err := NewPingHandler("fleetsim")(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "fleetsim", info.ServiceName)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		checkers       map[string]Checker
		expectedStatus int
		expectedReport Report
	}{
		{
			name:           "no dependencies",
			checkers:       nil,
			expectedStatus: http.StatusOK,
			expectedReport: Report{Status: "OK"},
		},
		{
			name: "one dependency down",
			checkers: map[string]Checker{
				"redis": CheckerFunc(func(ctx context.Context) error { return nil }),
				"nats":  CheckerFunc(func(ctx context.Context) error { return errors.New("disconnected") }),
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedReport: Report{
				Status:       "DEGRADED",
				Dependencies: map[string]string{"redis": "OK", "nats": "disconnected"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			RegisterHealthEndpoints(e, "fleetsim", tt.checkers)
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var report Report
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			assert.Equal(t, tt.expectedReport.Status, report.Status)
			assert.Equal(t, len(tt.expectedReport.Dependencies), len(report.Dependencies))
			for k, v := range tt.expectedReport.Dependencies {
				assert.Equal(t, v, report.Dependencies[k])
			}
		})
	}
}
