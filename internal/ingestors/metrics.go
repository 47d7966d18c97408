package ingestors

import (
	"stats-collector/internal/shared/metrics"
)

var (
	metricRecordIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_ingested_total",
		},
		[]string{metrics.FieldErrorCode, metrics.FieldClient},
	)

	metricRecordBodyBytes = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "record_body_bytes",
			Buckets:   []float64{64, 128, 256, 512, 1024, 2048, 4096, 16384},
		},
		[]string{metrics.FieldClient},
	)
)
