package ingestors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"stats-collector/internal/models"
	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/shared/metrics"
	"stats-collector/internal/shared/svcerrors"
	"stats-collector/internal/shared/validators"
	"stats-collector/internal/streams"

	"github.com/valyala/fastjson"
)

const (
	keyTag          = "tag"
	keySerialNumber = "serial_number"
	keyTimestamp    = "timestamp"
)

// IngestResult describes a record that was appended to its tag's log.
type IngestResult struct {
	Tag          string
	SerialNumber string
	ReceivedAt   time.Time
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestRecord reads one JSON record from r, stamps its receipt time and appends it
	// to the log named by its tag.
	IngestRecord(ctx context.Context, requestID string, userAgent string, r io.Reader) (*IngestResult, error)
}

// recordHeader holds the keys every record must carry.
type recordHeader struct {
	Tag          string `validate:"required,tagname"`
	SerialNumber string `validate:"required,max=256"`
}

type IngestionServiceOption func(*ingestionService)

// WithClock overrides the receipt time source.
func WithClock(now func() time.Time) IngestionServiceOption {
	return func(s *ingestionService) {
		s.now = now
	}
}

type ingestionService struct {
	maxBodyBytes         int
	recordAppendProducer streams.RecordAppendProducer
	validate             *validators.Validate
	parsers              fastjson.ParserPool
	arenas               fastjson.ArenaPool
	now                  func() time.Time
}

func NewIngestionService(maxBodyBytes int, recordAppendProducer streams.RecordAppendProducer, opts ...IngestionServiceOption) IngestionService {
	s := &ingestionService{
		maxBodyBytes:         maxBodyBytes,
		recordAppendProducer: recordAppendProducer,
		validate:             validators.New(),
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ingestionService) IngestRecord(ctx context.Context, requestID string, userAgent string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	client := ClientFamily(userAgent)

	record, err := s.buildRecord(ctx, client, r)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricRecordIngestedTotal.WithLabelValues(svcErr.Code, client).Inc()
		}
		return nil, err
	}

	logger.Debug().
		Str(loggers.FieldTag, record.Tag).
		Str(loggers.FieldSerialNumber, record.SerialNumber).
		Msg("started appending record")

	if err := s.recordAppendProducer.Produce(ctx, requestID, record); err != nil {
		svcErr := errInternalRecordAppendFailed(err)
		metricRecordIngestedTotal.WithLabelValues(svcErr.Code, client).Inc()
		return nil, svcErr
	}

	metricRecordIngestedTotal.WithLabelValues(metrics.ValueNoError, client).Inc()
	return &IngestResult{
		Tag:          record.Tag,
		SerialNumber: record.SerialNumber,
		ReceivedAt:   record.ReceivedAt,
	}, nil
}

// buildRecord turns the request body into a stamped, serialized Record.
func (s *ingestionService) buildRecord(ctx context.Context, client string, r io.Reader) (*models.Record, error) {
	logger := loggers.Ctx(ctx)

	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, s.maxBodyBytes)
	if err != nil {
		logger.Warn().Err(err).Msg("request body rejected")
		return nil, err
	}
	metricRecordBodyBytes.WithLabelValues(client).Observe(float64(len(buf)))

	parser := s.parsers.Get()
	defer s.parsers.Put(parser)

	value, err := parser.ParseBytes(buf)
	if err != nil {
		logger.Warn().Err(err).Int(loggers.FieldBodyBytes, len(buf)).Msg("malformed record body")
		return nil, errValidationFailed("invalid json", err)
	}
	obj, err := value.Object()
	if err != nil {
		logger.Warn().Str("json_type", value.Type().String()).Msg("record is not a JSON object")
		return nil, errValidationFailed("record must be a JSON object", err)
	}

	if err := rejectDuplicateKeys(obj); err != nil {
		logger.Warn().Err(err).Msg("invalid record")
		return nil, err
	}

	header, err := s.readHeader(obj)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid record")
		return nil, err
	}

	receivedAt := s.now()

	arena := s.arenas.Get()
	defer s.arenas.Put(arena)
	// Replaces a client-supplied timestamp in place, otherwise appends the key.
	obj.Set(keyTimestamp, arena.NewString(models.FormatReceiptTime(receivedAt)))

	return &models.Record{
		Tag:          header.Tag,
		SerialNumber: header.SerialNumber,
		ReceivedAt:   receivedAt,
		Payload:      value.MarshalTo(nil),
	}, nil
}

// readWithLimit reads up to max+1 bytes from r and rejects the body once it exceeds max.
// The remainder of an oversized body is never read.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errPayloadTooLarge(max)
		}
		return nil, errValidationFailed("failed to read request body", err)
	}

	if len(buf) > max {
		return nil, errPayloadTooLarge(max)
	}

	return buf, nil
}

// readHeader extracts and validates the required string keys.
func (s *ingestionService) readHeader(obj *fastjson.Object) (*recordHeader, error) {
	tag, err := requiredString(obj, keyTag)
	if err != nil {
		return nil, err
	}
	serialNumber, err := requiredString(obj, keySerialNumber)
	if err != nil {
		return nil, err
	}

	header := &recordHeader{Tag: tag, SerialNumber: serialNumber}
	if err := s.validate.Struct(header); err != nil {
		var ve validators.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return nil, errValidationFailed(describeHeaderError(ve[0]), err)
		}
		return nil, errValidationFailed("invalid record", err)
	}
	return header, nil
}

// rejectDuplicateKeys refuses a record that repeats a key the server reads or stamps.
// fastjson only reads and replaces the first occurrence, so later copies would reach the
// log untouched.
func rejectDuplicateKeys(obj *fastjson.Object) error {
	seen := make(map[string]int, 3)
	obj.Visit(func(key []byte, _ *fastjson.Value) {
		switch k := string(key); k {
		case keyTag, keySerialNumber, keyTimestamp:
			seen[k]++
		}
	})
	for _, key := range []string{keyTag, keySerialNumber, keyTimestamp} {
		if seen[key] > 1 {
			return errValidationFailed(fmt.Sprintf("duplicate key %s", key), nil)
		}
	}
	return nil
}

func requiredString(obj *fastjson.Object, key string) (string, error) {
	v := obj.Get(key)
	if v == nil {
		return "", errValidationFailed(fmt.Sprintf("missing %s", key), nil)
	}
	if v.Type() != fastjson.TypeString {
		return "", errValidationFailed(fmt.Sprintf("%s must be a string", key), nil)
	}
	return string(v.GetStringBytes()), nil
}

func describeHeaderError(e validators.FieldError) string {
	key := keyTag
	if e.StructField() == "SerialNumber" {
		key = keySerialNumber
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", key)
	case "max":
		return fmt.Sprintf("%s too long: max %s characters", key, e.Param())
	case validators.TagTagName:
		return fmt.Sprintf("%s must be 1-128 characters of letters, digits, '.', '_' or '-' and start with a letter or digit", key)
	default:
		return fmt.Sprintf("invalid %s", key)
	}
}
