package ingestors

import (
	"github.com/mileusna/useragent"
)

const (
	clientUnknown = "unknown"
	clientOther   = "other"
)

// ClientFamily reduces a User-Agent header to a bounded label, e.g. "Python-urllib/3.7"
// becomes the parsed agent name. Devices normally report through urllib; browsers hit the
// dashboard.
func ClientFamily(ua string) string {
	if ua == "" {
		return clientUnknown
	}
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return clientOther
}
