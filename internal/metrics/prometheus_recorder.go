package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	planCacheLookups *prom.CounterVec
	renders          prom.Counter
	renderDuration   prom.Histogram
	placeholders     prom.Counter
	documentOutcomes *prom.CounterVec
	documentDuration prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.planCacheLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdgraph",
			Name:      "plan_cache_lookups_total",
			Help:      "Dispatch plan cache lookups by result",
		}, []string{"result"})
		pr.renders = prom.NewCounter(prom.CounterOpts{
			Namespace: "mdgraph",
			Name:      "renders_total",
			Help:      "Markup engine invocations",
		})
		pr.renderDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdgraph",
			Name:      "render_duration_seconds",
			Help:      "Duration of individual markup engine invocations",
			Buckets:   prom.DefBuckets,
		})
		pr.placeholders = prom.NewCounter(prom.CounterOpts{
			Namespace: "mdgraph",
			Name:      "placeholder_substitutions_total",
			Help:      "Content fields substituted by the placeholder sentinel",
		})
		pr.documentOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdgraph",
			Name:      "document_outcomes_total",
			Help:      "Processed documents by final outcome",
		}, []string{"outcome"})
		pr.documentDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdgraph",
			Name:      "document_duration_seconds",
			Help:      "Total per-document traversal duration",
			Buckets:   prom.DefBuckets,
		})
		reg.MustRegister(pr.planCacheLookups, pr.renders, pr.renderDuration, pr.placeholders, pr.documentOutcomes, pr.documentDuration)
	})
	return pr
}

func (pr *PrometheusRecorder) IncPlanCacheHit() {
	pr.planCacheLookups.WithLabelValues("hit").Inc()
}

func (pr *PrometheusRecorder) IncPlanCacheMiss() {
	pr.planCacheLookups.WithLabelValues("miss").Inc()
}

func (pr *PrometheusRecorder) IncRenders() {
	pr.renders.Inc()
}

func (pr *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	pr.renderDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncPlaceholderSubstitutions() {
	pr.placeholders.Inc()
}

func (pr *PrometheusRecorder) IncDocumentOutcome(outcome OutcomeLabel) {
	pr.documentOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	pr.documentDuration.Observe(d.Seconds())
}
