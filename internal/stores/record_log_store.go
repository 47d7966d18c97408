package stores

import (
	"context"
	"errors"
	"fmt"
	"io"

	"stats-collector/internal/models"
	"stats-collector/internal/shared/filestorages"
)

const logFileExt = ".jsonl"

var (
	ErrRecordLogNotFound = errors.New("record log not found")
	ErrInvalidTag        = errors.New("invalid tag")
)

// RecordLogStore keeps one newline-delimited JSON log per tag, named <tag>.jsonl.
//
// Append is not safe for concurrent use on the same tag; callers route every record for
// a tag through a single writer (see streams.RecordAppendConsumer).
//
//go:generate mockgen -source=record_log_store.go -destination=./mocks/record_log_store_mock.go -package=mocks
type RecordLogStore interface {
	Append(ctx context.Context, record *models.Record) error
	Open(ctx context.Context, tag string) (io.ReadCloser, error)
}

type recordLogStore struct {
	fileStorage filestorages.FileStorage
}

func NewRecordLogStore(fileStorage filestorages.FileStorage) RecordLogStore {
	return &recordLogStore{fileStorage: fileStorage}
}

func (s *recordLogStore) Append(ctx context.Context, record *models.Record) error {
	line := make([]byte, 0, len(record.Payload)+1)
	line = append(line, record.Payload...)
	line = append(line, '\n')

	err := s.fileStorage.Append(ctx, LogKey(record.Tag), line)
	if err != nil {
		if errors.Is(err, filestorages.ErrInvalidKey) {
			return fmt.Errorf("%w: %q", ErrInvalidTag, record.Tag)
		}
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

func (s *recordLogStore) Open(ctx context.Context, tag string) (io.ReadCloser, error) {
	readCloser, err := s.fileStorage.Get(ctx, LogKey(tag))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrRecordLogNotFound
		}
		if errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
		return nil, fmt.Errorf("failed to open record log: %w", err)
	}
	return readCloser, nil
}

// LogKey returns the storage key of a tag's log.
func LogKey(tag string) string {
	return tag + logFileExt
}
