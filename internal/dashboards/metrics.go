package dashboards

import (
	"stats-collector/internal/shared/metrics"
)

var (
	metricLogReadsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDashboard,
			Name:      "log_reads_total",
		},
		[]string{metrics.FieldLogName, metrics.FieldErrorCode},
	)

	metricPageReadsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDashboard,
			Name:      "page_reads_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)

// unlistedLogName labels reads of names outside the served set so the label stays bounded.
const unlistedLogName = "unlisted"
