package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReceiptTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc",
			in:   time.Date(2026, 10, 16, 7, 48, 5, 0, time.UTC),
			want: "Fri, 16 Oct 2026 07:48:05 GMT",
		},
		{
			name: "converted to utc",
			in:   time.Date(2026, 10, 16, 9, 48, 5, 0, time.FixedZone("CEST", 2*60*60)),
			want: "Fri, 16 Oct 2026 07:48:05 GMT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReceiptTime(tt.in))
		})
	}
}

func TestReceiptTimeLayout_MatchesHTTPDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.TimeFormat, ReceiptTimeLayout)
}
