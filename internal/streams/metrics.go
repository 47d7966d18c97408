package streams

import (
	"stats-collector/internal/shared/metrics"
)

var (
	metricRecordAppendPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAppend,
			Name:      "records_published_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordAppendedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAppend,
			Name:      "records_appended_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordAppendDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAppend,
			Name:      "append_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
