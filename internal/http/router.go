package http

import (
	"net/http"

	"stats-collector/internal/dashboards"
	"stats-collector/internal/ingestors"
	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	ingestionService ingestors.IngestionService,
	dashboardService dashboards.DashboardService,
	maxBodyBytes int,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestRecordHandler := NewIngestRecordHandler(ingestionService, maxBodyBytes)
	dashboardPageHandler := NewDashboardPageHandler(dashboardService)
	logReadHandler := NewLogReadHandler(dashboardService)
	notFoundHandler := errorHandlingAdapter(NewNotFoundHandler())

	// Routes
	router.Post("/", errorHandlingAdapter(ingestRecordHandler))
	router.Get("/", errorHandlingAdapter(dashboardPageHandler))
	router.Get("/{"+paramLogFile+"}", gzhttp.GzipHandler(errorHandlingAdapter(logReadHandler)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(notFoundHandler)

	return router
}
