// Package metrics exports use-case telemetry as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"

	"github.com/alexanderramin/consistency/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "consistency"

// Recorder is a service.UseCaseObserver backed by its own registry, so a
// short-lived CLI process can flush everything to a textfile on exit.
type Recorder struct {
	registry *prometheus.Registry

	calls           *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	checkInsCreated prometheus.Counter
	dayPercentage   prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_case_total",
			Help:      "Use-case executions by outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Use-case latency.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"use_case"}),
		checkInsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_created_total",
			Help:      "Check-ins opened by recording or guided check-in.",
		}),
		dayPercentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "day_percentage",
			Help:      "Today's consistency percentage after the last write.",
		}),
	}
	r.registry.MustRegister(r.calls, r.duration, r.checkInsCreated, r.dayPercentage)
	return r
}

func (r *Recorder) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	outcome := "success"
	if !e.Success {
		outcome = "error"
	}
	r.calls.WithLabelValues(e.Name, outcome).Inc()
	r.duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())

	if created, _ := e.Fields["created_check_in"].(bool); created && e.Success {
		r.checkInsCreated.Inc()
	}
	if pct, ok := e.Fields["day_percentage"].(int); ok && e.Success {
		r.dayPercentage.Set(float64(pct))
	}
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
