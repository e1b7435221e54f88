package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	createTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aws_toolkit_sam_init_total",
			Help: "Total number of project creation workflow runs",
		},
		[]string{"result", "reason", "package_type"},
	)

	createRuntime = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aws_toolkit_sam_init_runtime_total",
			Help: "Project creation runs by runtime identifier",
		},
		[]string{"runtime"},
	)
)

// recordCreateMetrics mirrors an outcome event into Prometheus counters.
func recordCreateMetrics(event CreateEvent) {
	createTotal.With(prometheus.Labels{
		"result":       string(event.Result),
		"reason":       string(event.Reason),
		"package_type": event.PackageType,
	}).Inc()

	if event.Runtime != "" {
		createRuntime.With(prometheus.Labels{"runtime": event.Runtime}).Inc()
	}
}
