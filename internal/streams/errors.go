package streams

import "errors"

// Metric error codes for the append lanes.
const (
	codePublishFailed  = "APP_1000"
	codeRequestGone    = "APP_1001"
	codeAppendFailed   = "APP_9000"
	codeAppendPanicked = "SYS_9000"
)

// ErrRequestAbandoned is replied when the publishing request ended before its record
// reached the head of its lane. Nothing was written.
var ErrRequestAbandoned = errors.New("request abandoned before append")
