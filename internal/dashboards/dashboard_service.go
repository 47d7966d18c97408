package dashboards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/shared/metrics"
	"stats-collector/internal/stores"
)

//go:generate mockgen -source=dashboard_service.go -destination=./mocks/dashboard_service_mock.go -package=mocks
type DashboardService interface {
	// Page returns the dashboard HTML, read from disk on every call.
	Page(ctx context.Context) ([]byte, error)
	// OpenLog opens the raw log of a served name. The caller closes the reader.
	OpenLog(ctx context.Context, name string) (io.ReadCloser, error)
}

type dashboardService struct {
	pageFile       string
	logNames       map[string]struct{}
	recordLogStore stores.RecordLogStore
}

func NewDashboardService(pageFile string, logNames []string, recordLogStore stores.RecordLogStore) DashboardService {
	names := make(map[string]struct{}, len(logNames))
	for _, name := range logNames {
		names[name] = struct{}{}
	}
	return &dashboardService{
		pageFile:       pageFile,
		logNames:       names,
		recordLogStore: recordLogStore,
	}
}

func (s *dashboardService) Page(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := os.ReadFile(s.pageFile)
	if err != nil {
		svcErr := errInternalUnreadable(fmt.Errorf("failed to read dashboard page %q: %w", s.pageFile, err))
		metricPageReadsTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	metricPageReadsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return page, nil
}

func (s *dashboardService) OpenLog(ctx context.Context, name string) (io.ReadCloser, error) {
	logger := loggers.Ctx(ctx)

	if _, ok := s.logNames[name]; !ok {
		svcErr := errLogNotFound(name, errors.New("not a served log"))
		metricLogReadsTotal.WithLabelValues(unlistedLogName, svcErr.Code).Inc()
		return nil, svcErr
	}

	readCloser, err := s.recordLogStore.Open(ctx, name)
	if err != nil {
		var svcErr error
		if errors.Is(err, stores.ErrRecordLogNotFound) {
			svcErr = errLogNotFound(name, err)
			metricLogReadsTotal.WithLabelValues(name, codeLogNotFound).Inc()
		} else {
			logger.Error().Err(err).Str(loggers.FieldLogName, name).Msg("failed to open log")
			svcErr = errInternalUnreadable(err)
			metricLogReadsTotal.WithLabelValues(name, codeInternalPageUnreadable).Inc()
		}
		return nil, svcErr
	}

	metricLogReadsTotal.WithLabelValues(name, metrics.ValueNoError).Inc()
	return readCloser, nil
}
