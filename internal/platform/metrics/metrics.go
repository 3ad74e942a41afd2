package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the lending service.
// Every method is safe to call on a nil *Metrics.
type Metrics struct {
	BooksAdded        prometheus.Counter
	MembersRegistered prometheus.Counter

	// Lending outcomes by type (borrow, return) and result ("success" or the rejection kind)
	LendingOutcomes *prometheus.CounterVec

	// Compensating actions applied after a partial lending failure, by step
	Compensations *prometheus.CounterVec

	LendingDuration *prometheus.HistogramVec
	HTTPLatency     *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so instances never collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BooksAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "libraria_books_added_total",
			Help: "Total number of books added to the catalog",
		}),
		MembersRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "libraria_members_registered_total",
			Help: "Total number of members registered in the directory",
		}),
		LendingOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "libraria_lending_outcomes_total",
			Help: "Borrow and return outcomes by type and result",
		}, []string{"type", "result"}),
		Compensations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "libraria_lending_compensations_total",
			Help: "Compensating actions applied to undo partial lending updates",
		}, []string{"step"}),
		LendingDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "libraria_lending_duration_seconds",
			Help:    "Duration of borrow and return operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"type"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "libraria_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncrementBooksAdded records a successful catalog insertion.
func (m *Metrics) IncrementBooksAdded() {
	if m != nil {
		m.BooksAdded.Inc()
	}
}

// IncrementMembersRegistered records a successful directory insertion.
func (m *Metrics) IncrementMembersRegistered() {
	if m != nil {
		m.MembersRegistered.Inc()
	}
}

// IncrementLendingOutcome records the result of a borrow or return.
func (m *Metrics) IncrementLendingOutcome(txType, result string) {
	if m != nil {
		m.LendingOutcomes.WithLabelValues(txType, result).Inc()
	}
}

// IncrementCompensation records one applied compensating action.
func (m *Metrics) IncrementCompensation(step string) {
	if m != nil {
		m.Compensations.WithLabelValues(step).Inc()
	}
}

// ObserveLending records the duration of a borrow or return.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLending(txType string, start time.Time) {
	if m != nil {
		m.LendingDuration.WithLabelValues(txType).Observe(time.Since(start).Seconds())
	}
}

// ObserveHTTP records the latency of one HTTP request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}
