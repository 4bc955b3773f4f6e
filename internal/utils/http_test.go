package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := SuccessResponse(c, http.StatusOK, "vehicles", []int{1, 2})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "vehicles", resp.Message)
	assert.Equal(t, []interface{}{1.0, 2.0}, resp.Data)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(c echo.Context) error
		statusCode int
		message    string
	}{
		{
			name:       "bad request",
			respond:    func(c echo.Context) error { return BadRequestResponse(c, "invalid id") },
			statusCode: http.StatusBadRequest,
			message:    "invalid id",
		},
		{
			name:       "not found",
			respond:    func(c echo.Context) error { return NotFoundResponse(c, "") },
			statusCode: http.StatusNotFound,
			message:    "Resource not found",
		},
		{
			name:       "unavailable",
			respond:    func(c echo.Context) error { return ServiceUnavailableResponse(c, "") },
			statusCode: http.StatusServiceUnavailable,
			message:    "Service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, tt.respond(c))

			assert.Equal(t, tt.statusCode, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, tt.statusCode, resp.Code)
		})
	}
}
