package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes
const (
	OutcomeCreated   = "created"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venuebook_bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	availabilityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venuebook_availability_checks_total",
			Help: "Single-day availability checks by result",
		},
		[]string{"result"},
	)

	dateBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venuebook_date_blocks_total",
			Help: "Blocked dates added or removed",
		},
		[]string{"action"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "venuebook_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// BookingOutcome counts one booking attempt
func BookingOutcome(outcome string) {
	bookingsTotal.WithLabelValues(outcome).Inc()
}

// AvailabilityChecked counts one availability answer
func AvailabilityChecked(available bool) {
	result := "unavailable"
	if available {
		result = "available"
	}
	availabilityChecks.WithLabelValues(result).Inc()
}

// DatesBlocked counts n added blocks
func DatesBlocked(n int) {
	dateBlocks.WithLabelValues("block").Add(float64(n))
}

// DatesUnblocked counts n removed blocks
func DatesUnblocked(n int64) {
	dateBlocks.WithLabelValues("unblock").Add(float64(n))
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request latency labelled by chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
