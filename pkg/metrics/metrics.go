// Package metrics provides Prometheus metrics for roster generation runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Registry is the custom prometheus registry for roster metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// UnfilledSlots tracks the EMPTY positions of the latest roster per profile.
// Non-zero values mean the staff pool cannot cover the minimum daily counts.
var UnfilledSlots = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "roster",
	Name:      "unfilled_slots",
	Help:      "Number of positions left EMPTY in the latest generated roster",
}, []string{"profile"})

// QuotaDeviation tracks the summed quota deviation of the latest roster per profile
var QuotaDeviation = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "roster",
	Name:      "quota_deviation",
	Help:      "Sum of |target - actual| shifts over staff and quota categories",
}, []string{"profile"})

// AssignmentsTotal tracks the filled positions of the latest roster per profile
var AssignmentsTotal = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "roster",
	Name:      "assignments_total",
	Help:      "Number of filled positions in the latest generated roster",
}, []string{"profile"})

// RunsTotal counts generation runs by profile and controller
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roster",
	Name:      "runs_total",
	Help:      "Total roster generation runs",
}, []string{"profile", "controller"})

// GenerationDurationSeconds tracks time taken by a full generation run
var GenerationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "roster",
	Name:      "generation_duration_seconds",
	Help:      "Time taken to generate a roster",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
})

// Recorder records generation runs into the package metrics
type Recorder struct{}

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveRun records the outcome of one generation run
func (r *Recorder) ObserveRun(profile model.Profile, controller string, res *model.Result, duration time.Duration) {
	p := string(profile)
	RunsTotal.WithLabelValues(p, controller).Inc()
	GenerationDurationSeconds.Observe(duration.Seconds())
	if res == nil {
		return
	}

	filled := 0
	for _, day := range res.Schedule {
		for _, a := range day.Assignments {
			if !a.IsEmpty() {
				filled++
			}
		}
	}
	UnfilledSlots.WithLabelValues(p).Set(float64(res.UnfilledSlots))
	QuotaDeviation.WithLabelValues(p).Set(float64(res.QuotaDeviation))
	AssignmentsTotal.WithLabelValues(p).Set(float64(filled))
}

// Push sends the registry to a Pushgateway. A one-shot CLI run has no scrape window.
func Push(url, job string) error {
	if err := push.New(url, job).Gatherer(Registry).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
