package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stats-collector/internal/shared/loggers"
)

const (
	// DefaultTimeout bounds a report so a missing collector never stalls the device.
	DefaultTimeout = 100 * time.Millisecond

	keyTag          = "tag"
	keySerialNumber = "serial_number"
)

var ErrEmptyTag = errors.New("tag cannot be empty")

// StatusError is returned when the collector answered with a non-200 status.
type StatusError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *StatusError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("collector responded %d", e.StatusCode)
	}
	return fmt.Sprintf("collector responded %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Client posts records to a stats collector on behalf of one device.
type Client struct {
	baseURL      string
	serialNumber string
	httpClient   *http.Client
	logger       loggers.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the request timeout on a copy of the current HTTP client, leaving a
// client passed through WithHTTPClient untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		httpClient := *c.httpClient
		httpClient.Timeout = timeout
		c.httpClient = &httpClient
	}
}

func WithLogger(logger loggers.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL, serialNumber string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serialNumber: serialNumber,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		logger:       loggers.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report sends data under tag. The tag and the device serial number overwrite any keys of
// the same name in data; data itself is not modified.
//
// Failures are logged and returned. Devices usually ignore the error.
func (c *Client) Report(ctx context.Context, tag string, data map[string]any) error {
	if tag == "" {
		return ErrEmptyTag
	}

	record := make(map[string]any, len(data)+2)
	for k, v := range data {
		record[k] = v
	}
	record[keyTag] = tag
	record[keySerialNumber] = c.serialNumber

	err := c.post(ctx, record)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str(loggers.FieldTag, tag).
			Msg("could not contact stats collector")
	}
	return err
}

func (c *Client) post(ctx context.Context, record map[string]any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	var errorBody struct {
		Error     string `json:"error"`
		ErrorCode string `json:"errorCode"`
	}
	if json.NewDecoder(resp.Body).Decode(&errorBody) == nil {
		statusErr.ErrorCode = errorBody.ErrorCode
		statusErr.Message = errorBody.Error
	}
	return statusErr
}
