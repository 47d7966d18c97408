package events

import (
	"context"

	"stats-collector/internal/models"
)

// RecordAppendEvent asks the append lane owning Record.Tag to write the record.
//
// Ctx is the publishing request's context; a worker skips the write when it is already
// done. Result receives exactly one value: nil on success or the append error. It must be
// buffered with capacity 1 so the worker never blocks on a publisher that gave up.
type RecordAppendEvent struct {
	Ctx       context.Context
	RequestID string
	Record    *models.Record
	Result    chan error
}

// NewRecordAppendEvent builds an event with a correctly sized result channel.
func NewRecordAppendEvent(ctx context.Context, requestID string, record *models.Record) RecordAppendEvent {
	return RecordAppendEvent{
		Ctx:       ctx,
		RequestID: requestID,
		Record:    record,
		Result:    make(chan error, 1),
	}
}
