package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MiiUpdates           *prometheus.CounterVec
	ResolveFailures      *prometheus.CounterVec
	RenderDispatches     *prometheus.CounterVec
	RenderDuration       prometheus.Histogram
	PreviewCacheFailures prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		MiiUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "miigate_mii_updates_total",
			Help: "Total number of successful Mii updates, labeled by mii type",
		}, []string{"mii_type"}),
		ResolveFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "miigate_resolve_failures_total",
			Help: "Total number of failed resolutions, labeled by error code",
		}, []string{"code"}),
		RenderDispatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "miigate_render_dispatches_total",
			Help: "Total number of render dispatches, labeled by upstream branch",
		}, []string{"branch"}),
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "miigate_render_duration_seconds",
			Help:    "Duration of upstream render calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PreviewCacheFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "miigate_preview_cache_failures_total",
			Help: "Total number of best-effort preview cache writes that failed",
		}),
	}
}

func (m *Metrics) IncrementMiiUpdate(miiType string) {
	if m == nil {
		return
	}
	m.MiiUpdates.WithLabelValues(miiType).Inc()
}

func (m *Metrics) IncrementResolveFailure(code string) {
	if m == nil {
		return
	}
	m.ResolveFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) IncrementRenderDispatch(branch string) {
	if m == nil {
		return
	}
	m.RenderDispatches.WithLabelValues(branch).Inc()
}

func (m *Metrics) ObserveRender(start time.Time) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementPreviewCacheFailure() {
	if m == nil {
		return
	}
	m.PreviewCacheFailures.Inc()
}
