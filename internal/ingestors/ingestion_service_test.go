package ingestors_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stats-collector/internal/ingestors"
	"stats-collector/internal/models"
	"stats-collector/internal/shared/svcerrors"
	streammocks "stats-collector/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testMaxBodyBytes = 2000

var fixedReceivedAt = time.Date(2026, 10, 16, 7, 48, 5, 0, time.UTC)

func newTestService(producer *streammocks.MockRecordAppendProducer) ingestors.IngestionService {
	return ingestors.NewIngestionService(testMaxBodyBytes, producer,
		ingestors.WithClock(func() time.Time { return fixedReceivedAt }))
}

// paddedRecord returns a valid record body of exactly size bytes.
func paddedRecord(t *testing.T, size int) []byte {
	t.Helper()
	prefix := `{"tag":"start_up_time","serial_number":"00:04:a3:01:02:03","pad":"`
	suffix := `"}`
	padLen := size - len(prefix) - len(suffix)
	require.GreaterOrEqual(t, padLen, 0)
	return []byte(prefix + strings.Repeat("x", padLen) + suffix)
}

func TestIngestRecord_ErrPayloadTooLarge(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	body := bytes.NewReader(paddedRecord(t, testMaxBodyBytes+1))
	result, err := service.IngestRecord(context.Background(), "req", "", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1001", svcErr.Code)
	assert.Equal(t, "payload_rejected", svcErr.Category)
	assert.Equal(t, http.StatusForbidden, svcErr.HttpStatusCode)
	assert.Equal(t, "request body too large", svcErr.Message)
	assert.Nil(t, result)
}

func TestIngestRecord_ErrPayloadTooLarge_StopsReading(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	body := bytes.NewReader(make([]byte, 1<<20))
	_, err := service.IngestRecord(context.Background(), "req", "", body)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1001", svcErr.Code)
	assert.Equal(t, 1<<20-(testMaxBodyBytes+1), body.Len(), "only max+1 bytes may be consumed")
}

func TestIngestRecord_ErrPayloadTooLarge_FromMaxBytesReader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(bytes.NewReader(paddedRecord(t, 200))), 100)
	_, err := service.IngestRecord(context.Background(), "req", "", body)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1001", svcErr.Code)
}

func TestIngestRecord_AcceptsBodyAtLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	producer.EXPECT().Produce(gomock.Any(), "req", gomock.Any()).Return(nil)

	body := paddedRecord(t, testMaxBodyBytes)
	require.Len(t, body, testMaxBodyBytes)

	result, err := service.IngestRecord(context.Background(), "req", "", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "start_up_time", result.Tag)
}

func TestIngestRecord_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{name: "empty body", body: ``, wantMessage: "invalid json"},
		{name: "invalid json", body: `{invalid json}`, wantMessage: "invalid json"},
		{name: "truncated json", body: `{"tag":"t","serial_number":"s"`, wantMessage: "invalid json"},
		{name: "array", body: `[{"tag":"t","serial_number":"s"}]`, wantMessage: "record must be a JSON object"},
		{name: "string", body: `"tag"`, wantMessage: "record must be a JSON object"},
		{name: "missing tag", body: `{"serial_number":"s"}`, wantMessage: "missing tag"},
		{name: "missing serial_number", body: `{"tag":"t"}`, wantMessage: "missing serial_number"},
		{name: "tag not a string", body: `{"tag":7,"serial_number":"s"}`, wantMessage: "tag must be a string"},
		{name: "serial_number not a string", body: `{"tag":"t","serial_number":null}`, wantMessage: "serial_number must be a string"},
		{name: "empty tag", body: `{"tag":"","serial_number":"s"}`, wantMessage: "tag must not be empty"},
		{name: "empty serial_number", body: `{"tag":"t","serial_number":""}`, wantMessage: "serial_number must not be empty"},
		{name: "tag traverses up", body: `{"tag":"../../etc/passwd","serial_number":"s"}`, wantMessage: "tag must be"},
		{name: "tag with separator", body: `{"tag":"a/b","serial_number":"s"}`, wantMessage: "tag must be"},
		{name: "hidden tag", body: `{"tag":".hidden","serial_number":"s"}`, wantMessage: "tag must be"},
		{name: "tag too long", body: `{"tag":"` + strings.Repeat("a", 129) + `","serial_number":"s"}`, wantMessage: "tag must be"},
		{name: "duplicate tag", body: `{"tag":"t","serial_number":"s","tag":"../etc"}`, wantMessage: "duplicate key tag"},
		{name: "duplicate serial_number", body: `{"serial_number":"a","tag":"t","serial_number":"b"}`, wantMessage: "duplicate key serial_number"},
		{name: "duplicate timestamp", body: `{"tag":"t","serial_number":"s","timestamp":"forged1","timestamp":"forged2"}`, wantMessage: "duplicate key timestamp"},
		{name: "serial_number too long", body: `{"tag":"t","serial_number":"` + strings.Repeat("s", 257) + `"}`, wantMessage: "serial_number too long: max 256 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.IngestRecord(context.Background(), "req", "", strings.NewReader(tt.body))

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ING_1000", svcErr.Code)
			assert.Equal(t, "invalid_argument", svcErr.Category)
			assert.Contains(t, svcErr.Message, tt.wantMessage)
			assert.Nil(t, result, "expected nil result on error")
		})
	}
}

func TestIngestRecord_ErrValidationFailed_NilBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(streammocks.NewMockRecordAppendProducer(ctrl))

	_, err := service.IngestRecord(context.Background(), "req", "", nil)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1000", svcErr.Code)
}

func TestIngestRecord_ErrRecordAppendFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockRecordAppendProducer(ctrl)
	service := newTestService(producer)

	producer.EXPECT().Produce(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	body := strings.NewReader(`{"tag":"t","serial_number":"s"}`)
	result, err := service.IngestRecord(context.Background(), "req", "", body)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_9000", svcErr.Code)
	assert.Equal(t, "internal", svcErr.Category)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result)
}

func TestIngestRecord_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantPayload string
	}{
		{
			name:        "appends timestamp and keeps field order",
			body:        `{"seconds":3.25,"tag":"start_up_time","serial_number":"00:04:a3:01:02:03"}`,
			wantPayload: `{"seconds":3.25,"tag":"start_up_time","serial_number":"00:04:a3:01:02:03","timestamp":"Fri, 16 Oct 2026 07:48:05 GMT"}`,
		},
		{
			name:        "overwrites client timestamp in place",
			body:        `{"timestamp":"yesterday","tag":"t","serial_number":"s"}`,
			wantPayload: `{"timestamp":"Fri, 16 Oct 2026 07:48:05 GMT","tag":"t","serial_number":"s"}`,
		},
		{
			name:        "compacts whitespace and keeps nested values",
			body:        "{ \"tag\": \"t\",\n \"serial_number\": \"s\", \"nested\": {\"a\": [1, 2, null]}, \"ok\": true }",
			wantPayload: `{"tag":"t","serial_number":"s","nested":{"a":[1,2,null]},"ok":true,"timestamp":"Fri, 16 Oct 2026 07:48:05 GMT"}`,
		},
		{
			name:        "keeps escaped strings",
			body:        `{"tag":"t","serial_number":"s","note":"line\nbreak \"quoted\""}`,
			wantPayload: `{"tag":"t","serial_number":"s","note":"line\nbreak \"quoted\"","timestamp":"Fri, 16 Oct 2026 07:48:05 GMT"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			producer := streammocks.NewMockRecordAppendProducer(ctrl)
			service := newTestService(producer)

			var produced *models.Record
			producer.EXPECT().Produce(gomock.Any(), "req-123", gomock.Any()).
				Do(func(ctx context.Context, requestID string, record *models.Record) {
					produced = record
				}).
				Return(nil)

			result, err := service.IngestRecord(context.Background(), "req-123", "Python-urllib/3.7", strings.NewReader(tt.body))
			require.NoError(t, err)
			require.NotNil(t, result)
			require.NotNil(t, produced)

			assert.Equal(t, tt.wantPayload, string(produced.Payload))
			assert.Equal(t, fixedReceivedAt, produced.ReceivedAt)
			assert.Equal(t, produced.Tag, result.Tag)
			assert.Equal(t, produced.SerialNumber, result.SerialNumber)
			assert.Equal(t, fixedReceivedAt, result.ReceivedAt)
		})
	}
}
