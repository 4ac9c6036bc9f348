package richblocks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
)

const metricsNamespace = "richblocks"

// Metrics collects editor counters for the /metrics endpoint.
type Metrics struct {
	registry *prometheus.Registry

	bootTime   prometheus.Gauge
	operations *prometheus.CounterVec
	normalized prometheus.Counter
	renders    *prometheus.CounterVec
	flushed    prometheus.Counter
	swept      prometheus.Counter
}

func NewMetrics(sessions func() int) (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bootTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "boot_time",
			Help:      "Server startup time",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Operations applied to session documents",
		}, []string{"kind"}),
		normalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "normalize_steps_total",
			Help:      "Dirty nodes visited by the normalizer",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Rendered documents by output format",
		}, []string{"format"}),
		flushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_flushes_total",
			Help:      "Session snapshots written to storage",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions closed after their lifetime ended",
		}),
	}
	m.bootTime.Set(float64(time.Now().UnixMilli()))

	openSessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "sessions_open",
		Help:      "Open editing sessions",
	}, func() float64 { return float64(sessions()) })

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bootTime, m.operations, m.normalized, m.renders, m.flushed, m.swept, openSessions,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Plugin returns the editor plugin that counts operations and normalization steps.
func (m *Metrics) Plugin() editor.Plugin {
	return metricsPlugin{m}
}

type metricsPlugin struct {
	m *Metrics
}

func (metricsPlugin) PluginName() string { return "metrics" }

func (p metricsPlugin) Apply(ed *editor.Editor, op editor.Operation, next func(editor.Operation)) {
	p.m.operations.WithLabelValues(op.Kind()).Inc()
	next(op)
}

func (p metricsPlugin) NormalizeNode(ed *editor.Editor, e editor.NodeEntry, next func()) {
	p.m.normalized.Inc()
	next()
}
