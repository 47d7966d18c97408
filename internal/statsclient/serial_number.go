package statsclient

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	DefaultSerialNumberFile = "/opt/camera/serial_number"
	DefaultARPTable         = "/proc/net/arp"
)

var ErrNoSerialNumber = errors.New("no serial number found")

var macAddressPattern = regexp.MustCompile(`(?i)\b(?:[0-9a-f]{2}:){5}[0-9a-f]{2}\b`)

// ReadSerialNumber returns the trimmed contents of serialFile. When that file is missing or
// empty it falls back to the first MAC address listed in arpTable.
func ReadSerialNumber(serialFile, arpTable string) (string, error) {
	if content, err := os.ReadFile(serialFile); err == nil {
		if serial := strings.TrimSpace(string(content)); serial != "" {
			return serial, nil
		}
	}

	content, err := os.ReadFile(arpTable)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoSerialNumber, err)
	}
	mac := macAddressPattern.FindString(string(content))
	if mac == "" {
		return "", fmt.Errorf("%w: no MAC address in %s", ErrNoSerialNumber, arpTable)
	}
	return mac, nil
}
