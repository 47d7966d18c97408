package streams

import (
	"context"
	"fmt"

	"stats-collector/internal/events"
	"stats-collector/internal/models"
	"stats-collector/internal/shared/metrics"
)

// RecordAppendProducer hands a record to the append lane owning its tag and waits for
// the write to finish.
//
// Partition strategy: partitionKey = record.Tag. Every record for a tag is routed to the
// same partition and the consumer runs one worker per partition, so each <tag>.jsonl has
// exactly one writer at a time and lines land in publish order. Different tags hash to
// different partitions and are written in parallel.
//
//go:generate mockgen -source=record_append_producer.go -destination=./mocks/record_append_producer_mock.go -package=mocks
type RecordAppendProducer interface {
	Produce(ctx context.Context, requestID string, record *models.Record) error
}

type recordAppendProducer struct {
	queue *PartitionedQueue[events.RecordAppendEvent]
}

func NewRecordAppendProducer(queue *PartitionedQueue[events.RecordAppendEvent]) RecordAppendProducer {
	return &recordAppendProducer{
		queue: queue,
	}
}

func (producer *recordAppendProducer) Produce(ctx context.Context, requestID string, record *models.Record) error {
	event := events.NewRecordAppendEvent(ctx, requestID, record)

	if err := producer.queue.Publish(ctx, record.Tag, event); err != nil {
		metricRecordAppendPublishedTotal.WithLabelValues(codePublishFailed).Inc()
		return fmt.Errorf("publish record append: %w", err)
	}
	metricRecordAppendPublishedTotal.WithLabelValues(metrics.ValueNoError).Inc()

	select {
	case err := <-event.Result:
		return err
	case <-ctx.Done():
		return fmt.Errorf("await record append: %w", ctx.Err())
	}
}
