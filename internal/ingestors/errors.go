package ingestors

import (
	"fmt"

	"stats-collector/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed = "ING_1000"
	codePayloadTooLarge  = "ING_1001"

	codeInternalRecordAppendFailed = "ING_9000"
)

// errValidationFailed returns an error for a malformed body or an invalid record.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errPayloadTooLarge returns an error when the body exceeds the configured limit.
func errPayloadTooLarge(maxBytes int) *svcerrors.ServiceError {
	return svcerrors.NewPayloadRejectedError(codePayloadTooLarge, "request body too large",
		fmt.Errorf("body exceeds %d bytes", maxBytes))
}

// errInternalRecordAppendFailed returns an error when the record could not be appended to its log.
func errInternalRecordAppendFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRecordAppendFailed, fmt.Errorf("recordAppendFailed: %w", cause))
}
