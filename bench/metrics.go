package bench

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds benchmark results as prometheus gauges in a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	nsPerOp     *prometheus.GaugeVec
	bytesPerOp  *prometheus.GaugeVec
	allocsPerOp *prometheus.GaugeVec
	iterations  *prometheus.GaugeVec
}

// NewMetrics creates the gauges under namespace.
func NewMetrics(namespace string) *Metrics {
	labels := []string{"strategy", "size"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}

	m := &Metrics{
		registry:    prometheus.NewRegistry(),
		nsPerOp:     gauge("ns_per_op", "Nanoseconds per benchmark iteration"),
		bytesPerOp:  gauge("bytes_per_op", "Bytes allocated per benchmark iteration"),
		allocsPerOp: gauge("allocs_per_op", "Allocations per benchmark iteration"),
		iterations:  gauge("iterations", "Iterations run to reach a stable measurement"),
	}
	m.registry.MustRegister(m.nsPerOp, m.bytesPerOp, m.allocsPerOp, m.iterations)
	return m
}

// Observe records r, replacing any earlier value for the same case.
func (m *Metrics) Observe(r Result) {
	size := strconv.Itoa(r.Size)
	st := string(r.Strategy)
	m.nsPerOp.WithLabelValues(st, size).Set(float64(r.NsPerOp))
	m.bytesPerOp.WithLabelValues(st, size).Set(float64(r.BytesPerOp))
	m.allocsPerOp.WithLabelValues(st, size).Set(float64(r.AllocsPerOp))
	m.iterations.WithLabelValues(st, size).Set(float64(r.N))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
