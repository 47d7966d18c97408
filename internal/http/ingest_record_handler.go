package http

import (
	"net/http"

	"stats-collector/internal/ingestors"
	"stats-collector/internal/shared/svcerrors"
)

type ingestRecordHandler struct {
	ingestionService ingestors.IngestionService
	maxBodyBytes     int
}

func NewIngestRecordHandler(ingestionService ingestors.IngestionService, maxBodyBytes int) AppHttpHandler {
	return &ingestRecordHandler{
		ingestionService: ingestionService,
		maxBodyBytes:     maxBodyBytes,
	}
}

// Handle processes POST / requests.
func (h *ingestRecordHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body := http.MaxBytesReader(w, r.Body, int64(h.maxBodyBytes))

	_, err := h.ingestionService.IngestRecord(r.Context(), requestID(r), userAgent(r), body)
	if err != nil {
		// The unread remainder of an oversized body stays on the wire.
		if svcErr, ok := svcerrors.AsServiceError(err); ok && svcErr.IsPayloadRejected() {
			w.Header().Set(headerConnection, "close")
		}
		return err
	}

	w.Header().Set(headerContentType, contentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
	return nil
}
