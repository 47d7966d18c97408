package dashboards

import (
	"fmt"

	"stats-collector/internal/shared/svcerrors"
)

// DashboardService errors
const (
	codeLogNotFound = "DASH_1000"

	codeInternalPageUnreadable = "DASH_9000"
)

// errLogNotFound returns an error for a log name that is not served or has no records yet.
func errLogNotFound(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeLogNotFound, "404 not found",
		fmt.Errorf("log %q: %w", name, cause))
}

// errInternalUnreadable returns an error when the page or a log exists but cannot be read.
func errInternalUnreadable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPageUnreadable, cause)
}
