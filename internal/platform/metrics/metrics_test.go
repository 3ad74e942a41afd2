package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementBooksAdded()
	m.IncrementBooksAdded()
	m.IncrementMembersRegistered()
	m.IncrementLendingOutcome("borrow", "success")
	m.IncrementCompensation("book_availability")
	m.ObserveLending("borrow", time.Now())

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BooksAdded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MembersRegistered))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LendingOutcomes.WithLabelValues("borrow", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Compensations.WithLabelValues("book_availability")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementBooksAdded()
		m.IncrementMembersRegistered()
		m.IncrementLendingOutcome("return", "success")
		m.IncrementCompensation("member_borrowed_set")
		m.ObserveLending("return", time.Now())
		m.ObserveHTTP("GET", "/books", "200", time.Millisecond)
	})
}
