package engine

import (
	"net/http"

	"Voxelbox/internal/voxel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the engine's Prometheus collectors, kept on a private registry
type Metrics struct {
	registry *prometheus.Registry

	frames     prometheus.Counter
	blocks     prometheus.Gauge
	edits      *prometheus.CounterVec
	pickMisses prometheus.Counter
	editErrors prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelbox",
			Name:      "frames_total",
			Help:      "Frames stepped by the engine.",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelbox",
			Name:      "blocks",
			Help:      "Blocks currently in the world.",
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelbox",
			Name:      "edits_total",
			Help:      "Pointer edits that changed the world, by action.",
		}, []string{"action"}),
		pickMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelbox",
			Name:      "pick_misses_total",
			Help:      "Pointer events that hit no block.",
		}),
		editErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelbox",
			Name:      "edit_errors_total",
			Help:      "Placements rejected because no render instance could be acquired.",
		}),
	}

	m.registry.MustRegister(m.frames, m.blocks, m.edits, m.pickMisses, m.editErrors)
	return m
}

func (m *Metrics) observeEdit(res voxel.EditResult, err error) {
	switch {
	case err != nil:
		m.editErrors.Inc()
	case !res.HasHit:
		m.pickMisses.Inc()
	case res.Changed:
		m.edits.WithLabelValues(res.Action.String()).Inc()
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
