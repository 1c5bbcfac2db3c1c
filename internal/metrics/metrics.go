// Package metrics holds the server's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Operations  *prometheus.CounterVec
	Uploads     *prometheus.CounterVec
	UploadBytes prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planphotos",
			Name:      "graphql_operations_total",
			Help:      "GraphQL fields resolved, by field and outcome.",
		}, []string{"field", "outcome"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planphotos",
			Name:      "uploads_total",
			Help:      "Upload requests, by outcome.",
		}, []string{"outcome"}),
		UploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planphotos",
			Name:      "upload_bytes_total",
			Help:      "Bytes of stored uploads.",
		}),
	}
	m.registry.MustRegister(m.Operations, m.Uploads, m.UploadBytes)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
