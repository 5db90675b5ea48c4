package server

import (
	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests       *prometheus.CounterVec
	bundleRequests *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, extensions *registry.Registry, bundles *bundle.Store) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extensiond_http_requests_total",
				Help: "HTTP requests by matched route and status code",
			},
			[]string{"route", "code"}),
		bundleRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extensiond_bundle_requests_total",
				Help: "Bundle requests by kind (entry, chunk) and result (hit, miss)",
			},
			[]string{"kind", "result"}),
	}

	reg.MustRegister(
		m.requests,
		m.bundleRequests,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "extensiond_registry_generation",
			Help: "Generation of the current registry snapshot",
		}, func() float64 { return float64(extensions.Current().Generation) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "extensiond_registry_extensions",
			Help: "Number of extensions in the current registry snapshot",
		}, func() float64 { return float64(extensions.Current().Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "extensiond_bundle_generation",
			Help: "Number of extension bundle builds published",
		}, func() float64 { return float64(bundles.Generation()) }),
	)
	return m
}

func (m *metrics) observeBundle(id string, found bool) {
	kind := "chunk"
	if id == bundle.EntryID {
		kind = "entry"
	}
	result := "miss"
	if found {
		result = "hit"
	}
	m.bundleRequests.WithLabelValues(kind, result).Inc()
}
