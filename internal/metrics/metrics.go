// Package metrics exposes Prometheus instrumentation for the report
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsGenerated counts successful report generations by type.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reportwriter_reports_generated_total",
		Help: "Reports generated, by report type.",
	}, []string{"type"})

	// TokensCharged counts tokens billed for generation.
	TokensCharged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reportwriter_tokens_charged_total",
		Help: "Tokens charged across all generated reports.",
	})

	// GenerationRefused counts generations refused by the quota check.
	GenerationRefused = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reportwriter_generation_refused_total",
		Help: "Report generations refused because the user's limit was reached.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
