package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Generation modes used as the "mode" label.
const (
	ModeProject         = "project"
	ModeUserRunSettings = "user_runsettings"
)

var (
	RunSettingsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runsettings_generated_total",
			Help: "Total number of run settings files generated",
		},
		[]string{"mode", "succeeded"},
	)

	RunSettingsTemplateFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runsettings_template_failures_total",
			Help: "Number of templates that were not valid xml after replacement",
		},
		[]string{"mode"},
	)

	RunSettingsGenerationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runsettings_generation_seconds",
			Help:    "Time taken to build, apply and write one run settings file",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"mode"},
	)
)

// RegisterGeneration records the outcome of one generated file.
func RegisterGeneration(mode string, started time.Time, succeeded bool) {
	RunSettingsGeneratedTotal.With(prometheus.Labels{
		"mode":      mode,
		"succeeded": strconv.FormatBool(succeeded),
	}).Inc()
	RunSettingsGenerationSeconds.With(prometheus.Labels{"mode": mode}).Observe(time.Since(started).Seconds())
}

// RegisterTemplateFailure records a template that failed xml validation.
func RegisterTemplateFailure(mode string) {
	RunSettingsTemplateFailuresTotal.With(prometheus.Labels{"mode": mode}).Inc()
}

// Register adds every collector of this package to r.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		RunSettingsGeneratedTotal,
		RunSettingsTemplateFailuresTotal,
		RunSettingsGenerationSeconds,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
