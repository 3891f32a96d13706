package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every series when New is given an empty namespace.
const DefaultNamespace = "errorlog"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the pipeline counters.
type Metrics struct {
	reports       *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	duplicates    prometheus.Counter
	collected     *prometheus.CounterVec
	logsCollected *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
// A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Error reports sent to the metrics sink.",
		}, []string{"segment", "client"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Sink deliveries by outcome.",
		}, []string{"sink", "outcome"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Error reports dropped because they were already reported.",
		}),
		collected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collected_total",
			Help:      "Stats increments received by the collector.",
		}, []string{"segment", "client"}),
		logsCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logs_collected_total",
			Help:      "Log records received by the collector.",
		}, []string{"env", "api_failure"}),
	}

	var err error
	if m.reports, err = register(reg, m.reports); err != nil {
		return nil, err
	}
	if m.deliveries, err = register(reg, m.deliveries); err != nil {
		return nil, err
	}
	if m.duplicates, err = register(reg, m.duplicates); err != nil {
		return nil, err
	}
	if m.collected, err = register(reg, m.collected); err != nil {
		return nil, err
	}
	if m.logsCollected, err = register(reg, m.logsCollected); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, returning the collector already registered under
// the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Join(ErrRegister, err)
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(reg prometheus.Registerer, namespace string) *Metrics {
	m, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return m
}

// ReportSent counts a report delivered to the metrics sink.
func (m *Metrics) ReportSent(segment, client string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(segment, client).Inc()
}

// Delivery counts a finished sink delivery.
func (m *Metrics) Delivery(sink string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.deliveries.WithLabelValues(sink, outcome).Inc()
}

// Duplicate counts a report suppressed by deduplication.
func (m *Metrics) Duplicate() {
	if m == nil {
		return
	}
	m.duplicates.Inc()
}

// Collected adds n to the collector's stats counter.
func (m *Metrics) Collected(segment, client string, n float64) {
	if m == nil || n <= 0 {
		return
	}
	m.collected.WithLabelValues(segment, client).Add(n)
}

// LogCollected counts a log record received by the collector.
func (m *Metrics) LogCollected(env string, apiFailure bool) {
	if m == nil {
		return
	}
	m.logsCollected.WithLabelValues(env, strconv.FormatBool(apiFailure)).Inc()
}
