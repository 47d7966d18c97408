package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"stats-collector/internal/events"
	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/shared/metrics"
	"stats-collector/internal/shared/svcerrors"
	"stats-collector/internal/shared/ulid"
	"stats-collector/internal/stores"
)

//go:generate mockgen -source=record_append_consumer.go -destination=./mocks/record_append_consumer_mock.go -package=mocks
type RecordAppendConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type recordAppendConsumer struct {
	queue          *PartitionedQueue[events.RecordAppendEvent]
	recordLogStore stores.RecordLogStore

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewRecordAppendConsumer(queue *PartitionedQueue[events.RecordAppendEvent], recordLogStore stores.RecordLogStore, logger loggers.Logger) RecordAppendConsumer {
	return &recordAppendConsumer{
		queue:          queue,
		recordLogStore: recordLogStore,
		stopCh:         make(chan struct{}),
		logger:         logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is the single writer for every tag that hashes to it.
func (consumer *recordAppendConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.Partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown, after the HTTP
// server has drained).
func (consumer *recordAppendConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *recordAppendConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.RecordAppendEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event := <-ch:
			consumer.handle(partitionIndex, event)
		}
	}
}

// handle appends one record and always replies on event.Result, even when the append
// panics.
func (consumer *recordAppendConsumer) handle(partitionIndex int, event events.RecordAppendEvent) {
	start := time.Now()

	requestID := event.RequestID
	if requestID == "" {
		requestID = ulid.NewULID()
	}
	eventCtx := event.Ctx
	if eventCtx == nil {
		eventCtx = context.Background()
	}
	ctx := consumer.logger.With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldRequestID, requestID).
		Str(loggers.FieldTag, event.Record.Tag).
		Logger().WithContext(eventCtx)

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("record append panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			consumer.observe(codeAppendPanicked, start)
			event.Result <- svcErr
		}
	}()

	if eventCtx.Err() != nil {
		loggers.Ctx(ctx).Debug().Msg("request ended before append, skipping record")
		consumer.observe(codeRequestGone, start)
		event.Result <- ErrRequestAbandoned
		return
	}

	err := consumer.recordLogStore.Append(ctx, event.Record)
	if err != nil {
		loggers.Ctx(ctx).Error().Err(err).Msg("record append failed")
		consumer.observe(codeAppendFailed, start)
		event.Result <- err
		return
	}

	loggers.Ctx(ctx).Debug().Msg("record appended")
	consumer.observe(metrics.ValueNoError, start)
	event.Result <- nil
}

func (consumer *recordAppendConsumer) observe(errorCode string, start time.Time) {
	metricRecordAppendedTotal.WithLabelValues(errorCode).Inc()
	metricRecordAppendDuration.WithLabelValues(errorCode).Observe(time.Since(start).Seconds())
}
