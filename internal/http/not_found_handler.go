package http

import (
	"errors"
	"net/http"

	"stats-collector/internal/shared/svcerrors"
)

const codeRouteNotFound = "HTTP_1000"

type notFoundHandler struct{}

func NewNotFoundHandler() AppHttpHandler {
	return &notFoundHandler{}
}

// Handle answers every request no route matched, including a known path with another method.
func (h *notFoundHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return errRouteNotFound(r)
}

func errRouteNotFound(r *http.Request) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeRouteNotFound, "404 not found",
		errors.New(r.Method+" "+r.URL.Path))
}
