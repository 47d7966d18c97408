package models

import "time"

// ReceiptTimeLayout is the RFC 1123 GMT layout stamped into every record's "timestamp".
const ReceiptTimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Record is one telemetry event accepted from a device.
//
// Payload is the serialized JSON object exactly as it will be written to the tag's log,
// without the trailing newline. It already carries the server's "timestamp" key.
type Record struct {
	Tag          string
	SerialNumber string
	ReceivedAt   time.Time
	Payload      []byte
}

// FormatReceiptTime renders t the way records store their receipt time.
func FormatReceiptTime(t time.Time) string {
	return t.UTC().Format(ReceiptTimeLayout)
}
