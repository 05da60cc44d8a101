package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed requests and observes their
// latency, labelled by message path and result code.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ quorum.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// the given registerer. It panics if the collectors are already registered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of processed transactions.",
		}, []string{"mode", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"mode", "path"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Check observes the check request.
func (m *Metrics) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver observes the deliver request.
func (m *Metrics) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(mode string, tx quorum.Tx, start time.Time, err error) {
	path := quorum.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.requests.WithLabelValues(mode, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(mode, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == 0 {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
