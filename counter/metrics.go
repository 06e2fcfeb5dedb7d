package counter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opCreate = "create"
	opGet    = "get"
	opIncr   = "incr"
	opDel    = "del"
	opList   = "list"

	resultOK       = "ok"
	resultNotFound = "not_found"
	resultConflict = "conflict"
)

// Metrics of the store operations. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	counters   prometheus.Gauge
}

// NewMetrics register the store metrics to reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hitcounter",
			Name:      "operations_total",
			Help:      "Total number of counter store operations.",
		}, []string{"op", "result"}),
		counters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hitcounter",
			Name:      "counters",
			Help:      "Number of live counters.",
		}),
	}
}

func (p *Metrics) observe(op, result string) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(op, result).Inc()
}

// addSize 按增量调整存活计数器的数量,与map的修改一一对应
func (p *Metrics) addSize(delta int) {
	if p == nil {
		return
	}
	p.counters.Add(float64(delta))
}

func (p *Metrics) resetSize() {
	if p == nil {
		return
	}
	p.counters.Set(0)
}
