package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

type stubSource struct {
	stats *Stats
	err   error
	asOf  caldate.Date
}

func (s *stubSource) Stats(ctx context.Context, today caldate.Date) (*Stats, error) {
	s.asOf = today
	return s.stats, s.err
}

func passthrough(next http.Handler) http.Handler { return next }

func TestGetStats(t *testing.T) {
	src := &stubSource{stats: &Stats{
		TotalVenues:      4,
		TotalBookings:    7,
		TotalRevenue:     decimal.RequireFromString("12500.50"),
		UpcomingBookings: 3,
	}}
	svc := NewService(src)
	svc.now = func() time.Time { return time.Date(2025, time.March, 1, 23, 30, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	Routes(NewHandler(svc), passthrough).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, caldate.New(2025, time.March, 1), src.asOf)

	var out struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, float64(4), out.Data["totalVenues"])
	assert.Equal(t, "12500.5", out.Data["totalRevenue"])
	assert.Equal(t, float64(3), out.Data["upcomingBookings"])
}

func TestGetStatsFailureIsHidden(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("connection refused")})

	rr := httptest.NewRecorder()
	Routes(NewHandler(svc), passthrough).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestStatsRequireAdmin(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) })
	}
	rr := httptest.NewRecorder()
	Routes(NewHandler(NewService(&stubSource{})), deny).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
