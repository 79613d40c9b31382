// Package metrics exposes Prometheus counters for config resolution and widget
// rendering.
//
// Usage:
//
//	m := metrics.New(prometheus.NewRegistry())
//	resolver := whatsapp.NewResolver(client, endpoint, whatsapp.WithObserver(m))
//	m.WidgetRendered("popup", "mounted")
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	// ConfigFetches counts GraphQL fetches.
	// Labels: outcome (ok|error)
	ConfigFetches *prometheus.CounterVec

	// ConfigCacheHits counts Resolve calls answered from the cache.
	ConfigCacheHits prometheus.Counter

	// WidgetRenders counts mount decisions.
	// Labels: mode (button|popup), reason (mounted|suppressed_path|...)
	WidgetRenders *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers all metrics on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConfigFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whatsapp_widget_config_fetches_total",
				Help: "GraphQL store config fetches by outcome",
			},
			[]string{"outcome"},
		),
		ConfigCacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "whatsapp_widget_config_cache_hits_total",
				Help: "Config resolutions served from the cache",
			},
		),
		WidgetRenders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whatsapp_widget_renders_total",
				Help: "Widget mount decisions by mode and reason",
			},
			[]string{"mode", "reason"},
		),
		gatherer: reg,
	}
}

// FetchDone implements whatsapp.Observer.
func (m *Metrics) FetchDone(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.ConfigFetches.WithLabelValues(outcome).Inc()
}

// CacheHit implements whatsapp.Observer.
func (m *Metrics) CacheHit() {
	m.ConfigCacheHits.Inc()
}

func (m *Metrics) WidgetRendered(mode, reason string) {
	m.WidgetRenders.WithLabelValues(mode, reason).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
