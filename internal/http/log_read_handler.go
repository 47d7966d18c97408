package http

import (
	"io"
	"net/http"
	"strings"

	"stats-collector/internal/dashboards"
	"stats-collector/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
)

const (
	paramLogFile = "logFile"
	logFileExt   = ".jsonl"
)

type logReadHandler struct {
	dashboardService dashboards.DashboardService
}

func NewLogReadHandler(dashboardService dashboards.DashboardService) AppHttpHandler {
	return &logReadHandler{dashboardService: dashboardService}
}

// Handle processes GET /{logFile} requests. Only names ending in .jsonl are logs; the
// name itself may contain dots, e.g. boot.v2.jsonl.
func (h *logReadHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	logFile := chi.URLParam(r, paramLogFile)
	if !strings.HasSuffix(logFile, logFileExt) {
		return errRouteNotFound(r)
	}
	logName := strings.TrimSuffix(logFile, logFileExt)

	readCloser, err := h.dashboardService.OpenLog(r.Context(), logName)
	if err != nil {
		return err
	}
	defer readCloser.Close()

	w.Header().Set(headerContentType, contentTypeJSONL)
	w.WriteHeader(http.StatusOK)

	// Status is already sent; a failed copy can only be logged.
	if _, err := io.Copy(w, readCloser); err != nil {
		loggers.Ctx(r.Context()).Warn().
			Err(err).
			Str(loggers.FieldLogName, logName).
			Msg("log read interrupted")
	}
	return nil
}
