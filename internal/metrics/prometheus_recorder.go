package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	commandDuration *prom.HistogramVec
	commandResults  *prom.CounterVec
	generation      prom.Histogram
	pages           *prom.CounterVec
	skipped         *prom.CounterVec
	modules         prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		commandDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docops",
			Name:      "command_duration_seconds",
			Help:      "Duration of external versioning tool invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"step"}),
		commandResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docops",
			Name:      "command_results_total",
			Help:      "External tool invocations by step and exit code",
		}, []string{"step", "exit_code"}),
		generation: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docops",
			Name:      "reference_generation_seconds",
			Help:      "Duration of a full reference page generation pass",
			Buckets:   prom.DefBuckets,
		}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docops",
			Name:      "reference_pages_total",
			Help:      "Reference pages by action",
		}, []string{"action"}),
		skipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docops",
			Name:      "reference_skipped_total",
			Help:      "Source files excluded from generation by reason",
		}, []string{"reason"}),
		modules: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docops",
			Name:      "reference_modules",
			Help:      "Modules documented by the last generation pass",
		}),
	}
	reg.MustRegister(pr.commandDuration, pr.commandResults, pr.generation, pr.pages, pr.skipped, pr.modules)
	return pr
}

// Registry exposes the registry the recorder writes to.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveCommand(step string, d time.Duration, exitCode int) {
	p.commandDuration.WithLabelValues(step).Observe(d.Seconds())
	p.commandResults.WithLabelValues(step, strconv.Itoa(exitCode)).Inc()
}

func (p *PrometheusRecorder) ObserveGeneration(d time.Duration) {
	p.generation.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPage(action PageAction) {
	p.pages.WithLabelValues(string(action)).Inc()
}

func (p *PrometheusRecorder) IncSkipped(reason string) {
	p.skipped.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) SetModules(n int) {
	p.modules.Set(float64(n))
}
