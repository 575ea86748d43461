// Package metrics provides Prometheus instrumentation for the core.
//
// Repositories and services record into the package collectors; the CLI's
// stats command reads them back through Snapshot. Nothing is exposed over
// the network.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"

	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

const namespace = "menumanager"

var (
	// StoreOperations counts repository operations by entity, operation and
	// outcome ("ok" or the lower-cased error code).
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total repository operations.",
		},
		[]string{"entity", "operation", "outcome"},
	)

	// StoreOperationDuration tracks repository latency.
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of repository operations in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"entity", "operation"},
	)

	// AuthAttempts counts credential checks by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total credential verifications.",
		},
		[]string{"outcome"}, // "ok" | "authentication" | "storage"
	)

	// DocumentsGenerated counts PDF documents written, by kind.
	DocumentsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "generated_total",
			Help:      "Total documents generated.",
		},
		[]string{"kind"}, // "menu" | "purchase_order"
	)
)

// DefaultRegistry holds every collector in this package.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(
		StoreOperations,
		StoreOperationDuration,
		AuthAttempts,
		DocumentsGenerated,
	)
}

// Outcome maps an operation result to a label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if typed := apperr.As(err); typed != nil {
		return strings.ToLower(string(typed.Code()))
	}
	return "error"
}

// ObserveStoreOp records a repository call with a simple timer:
//
//	defer func() { metrics.ObserveStoreOp("dishes", "create", start, err) }()
func ObserveStoreOp(entity, operation string, start time.Time, err error) {
	StoreOperations.WithLabelValues(entity, operation, Outcome(err)).Inc()
	StoreOperationDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

// RecordAuth records one credential verification.
func RecordAuth(err error) {
	AuthAttempts.WithLabelValues(Outcome(err)).Inc()
}

// Snapshot returns one "name{labels} value" line per counter sample in the
// menumanager namespace, sorted.
func Snapshot() ([]string, error) {
	families, err := DefaultRegistry.Gather()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), formatLabels(m.GetLabel()), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
