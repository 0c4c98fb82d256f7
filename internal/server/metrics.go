package server

import (
	"io"
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const metricsContentType = "text/plain; version=0.0.4; charset=utf-8"

// Metrics counts captures, clears and storage failures for /metrics.
type Metrics struct {
	mu          sync.Mutex
	captured    map[string]float64
	storeErrors map[string]float64
	clears      float64
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{
		captured:    make(map[string]float64),
		storeErrors: make(map[string]float64),
	}
}

// Captured counts one capture for method.
func (m *Metrics) Captured(method string) {
	m.mu.Lock()
	m.captured[method]++
	m.mu.Unlock()
}

// StoreError counts one storage failure for op. Its signature matches
// query.WithErrorHook.
func (m *Metrics) StoreError(op string, _ error) {
	m.mu.Lock()
	m.storeErrors[op]++
	m.mu.Unlock()
}

// Cleared counts one clear.
func (m *Metrics) Cleared() {
	m.mu.Lock()
	m.clears++
	m.mu.Unlock()
}

// Write renders every family in the Prometheus text format. records is
// the current log length.
func (m *Metrics) Write(w io.Writer, records int) error {
	for _, mf := range m.families(records) {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) families(records int) []*dto.MetricFamily {
	m.mu.Lock()
	defer m.mu.Unlock()

	return []*dto.MetricFamily{
		counterVec("qtrack_captured_total", "Requests captured, by method.", "method", m.captured),
		counterVec("qtrack_store_errors_total", "Storage failures, by operation.", "op", m.storeErrors),
		{
			Name:   proto.String("qtrack_clears_total"),
			Help:   proto.String("Log clears."),
			Type:   dto.MetricType_COUNTER.Enum(),
			Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(m.clears)}}},
		},
		{
			Name:   proto.String("qtrack_log_records"),
			Help:   proto.String("Records currently held in the log."),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(float64(records))}}},
		},
	}
}

func counterVec(name, help, label string, values map[string]float64) *dto.MetricFamily {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String(label), Value: proto.String(k)}},
			Counter: &dto.Counter{Value: proto.Float64(values[k])},
		})
	}
	return mf
}
