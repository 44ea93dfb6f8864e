package store

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InstrumentedBackend records per-operation counts and latencies for the
// wrapped backend.
type InstrumentedBackend struct {
	next     Backend
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Instrument wraps b so that every call is observed on reg.
func Instrument(b Backend, reg prometheus.Registerer) *InstrumentedBackend {
	f := promauto.With(reg)
	return &InstrumentedBackend{
		next: b,
		ops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hr_portal",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Key-value operations by operation and result.",
		}, []string{"driver", "op", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hr_portal",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Key-value operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"driver", "op"}),
	}
}

func (b *InstrumentedBackend) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	driver := b.next.Driver()
	b.ops.WithLabelValues(driver, op, result).Inc()
	b.duration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
}

func (b *InstrumentedBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, ok, err := b.next.Get(ctx, key)
	b.observe("get", start, err)
	return v, ok, err
}

func (b *InstrumentedBackend) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := b.next.Set(ctx, key, value)
	b.observe("set", start, err)
	return err
}

func (b *InstrumentedBackend) SetMany(ctx context.Context, values map[string][]byte) error {
	start := time.Now()
	err := b.next.SetMany(ctx, values)
	b.observe("set_many", start, err)
	return err
}

func (b *InstrumentedBackend) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := b.next.Delete(ctx, key)
	b.observe("delete", start, err)
	return err
}

func (b *InstrumentedBackend) Close(ctx context.Context) error { return b.next.Close(ctx) }

func (b *InstrumentedBackend) Driver() string { return b.next.Driver() }
