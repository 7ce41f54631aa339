package utils

import (
	"strconv"
	"time"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions by message
// path and result code and observes how long the delivery took.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ paystream.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paystream",
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paystream",
			Name:      "deliver_duration_seconds",
			Help:      "Time spent delivering a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check counts the result of a check call.
func (m *Metrics) Check(ctx paystream.Context, store paystream.KVStore, tx paystream.Tx, next paystream.Checker) (*paystream.CheckResult, error) {
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, err)
	return res, err
}

// Deliver counts the result of a deliver call and its duration.
func (m *Metrics) Deliver(ctx paystream.Context, store paystream.KVStore, tx paystream.Tx, next paystream.Deliverer) (*paystream.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.duration.WithLabelValues(paystream.GetPath(tx)).Observe(time.Since(start).Seconds())
	m.observe("deliver", tx, err)
	return res, err
}

func (m *Metrics) observe(phase string, tx paystream.Tx, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, paystream.GetPath(tx), codeLabel(code)).Inc()
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
