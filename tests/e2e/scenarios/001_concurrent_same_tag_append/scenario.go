package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"stats-collector/internal/statsclient"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
const (
	devices          = 16  // Number of simulated devices
	reportsPerDevice = 250 // start_up_time reports sent by each device
	tag              = "start_up_time"
)

// ### End - fixed configs

// main runs the e2e scenario: 001_concurrent_same_tag_append
//
// Many devices report the same tag at the same time while a few malformed requests are
// mixed in. The collector must serialize the appends for the tag.
//
// What it tests:
//   - Record ingestion via POST /
//   - Per-tag single writer: concurrent reports for one tag never interleave within a line
//   - Oversized bodies are refused with 403, invalid records with 400, and neither is written
//   - Log read-back via GET /start_up_time.jsonl
//
// Expected results:
//   - devices * reportsPerDevice accepted reports (200)
//   - start_up_time.jsonl holds exactly that many lines, each a JSON object carrying tag,
//     serial_number, seq and a server timestamp
//   - For each device, seq values appear in increasing order
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:19861")
	// concurrent malformed requests
	parallel := getEnvInt("PARALLEL", 4)
	// per-report timeout, well above the device default so a loaded collector still passes
	timeout := time.Duration(getEnvInt("TIMEOUT_MS", 2000)) * time.Millisecond
	// output folder relative to project root
	outputDir := getEnv("OUTPUT_DIR", "stats_reported")
	// remove the tag's log before running
	wantCleanOutput := getEnvBool("WANT_CLEAN_OUTPUT", true)

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(projectRoot, outputDir, tag+".jsonl")

	if wantCleanOutput {
		fmt.Printf("Removing log: %s\n", logPath)
		if err := os.Remove(logPath); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to remove log: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_concurrent_same_tag_append")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DEVICES: %d\n", devices)
	fmt.Printf("REPORTS_PER_DEVICE: %d\n", reportsPerDevice)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("LOG_PATH: %s\n", logPath)
	fmt.Println()

	var accepted int64
	var failed int64
	var wg sync.WaitGroup

	for d := 0; d < devices; d++ {
		serial := fmt.Sprintf("00:04:a3:00:00:%02x", d)
		client := statsclient.New(baseURL, serial, statsclient.WithTimeout(timeout))

		wg.Add(1)
		go func() {
			defer wg.Done()
			// Sequential per device so seq order is observable in the log.
			for seq := 0; seq < reportsPerDevice; seq++ {
				err := client.Report(context.Background(), tag, map[string]any{
					"seq":     seq,
					"seconds": float64(seq%50) / 10,
				})
				if err != nil {
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: device %s seq %d: %v\n", serial, seq, err)
					continue
				}
				atomic.AddInt64(&accepted, 1)
			}
		}()
	}

	rejected, err := sendRejectedRequests(baseURL, parallel)
	wg.Wait()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted reports: %d\n", atomic.LoadInt64(&accepted))
	fmt.Printf("Failed reports: %d\n", atomic.LoadInt64(&failed))
	fmt.Printf("Rejected requests (expected): %d\n", rejected)

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d reports failed\n", failed)
		os.Exit(1)
	}

	lines, err := verifyLog(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Lines in %s.jsonl: %d\n", tag, lines)
	fmt.Println("Scenario completed successfully")
}

// sendRejectedRequests posts requests the collector must refuse, parallel at a time.
func sendRejectedRequests(baseURL string, parallel int) (int, error) {
	cases := []struct {
		body       []byte
		wantStatus int
	}{
		{body: []byte(`{"tag":"` + tag + `","serial_number":"x","pad":"` + strings.Repeat("x", 4000) + `"}`), wantStatus: http.StatusForbidden},
		{body: []byte(`{"tag":"` + tag + `"}`), wantStatus: http.StatusBadRequest},
		{body: []byte(`{"tag":"../` + tag + `","serial_number":"x"}`), wantStatus: http.StatusBadRequest},
		{body: []byte(`not json`), wantStatus: http.StatusBadRequest},
	}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for round := 0; round < 25; round++ {
		for _, c := range cases {
			wg.Add(1)
			workerChan <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-workerChan }()

				resp, err := http.Post(baseURL+"/", "application/json", bytes.NewReader(c.body))
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				resp.Body.Close()
				if resp.StatusCode != c.wantStatus {
					errs = append(errs, fmt.Errorf("expected status %d, got %d", c.wantStatus, resp.StatusCode))
				}
			}()
		}
	}
	wg.Wait()

	return 25 * len(cases), errors.Join(errs...)
}

// verifyLog reads the tag's log back through the collector and checks every line.
func verifyLog(baseURL string) (int, error) {
	resp, err := http.Get(baseURL + "/" + tag + ".jsonl")
	if err != nil {
		return 0, fmt.Errorf("failed to read log: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("log read returned %d", resp.StatusCode)
	}

	lastSeq := make(map[string]float64)
	lines := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		lines++
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return lines, fmt.Errorf("line %d is not a JSON object: %w", lines, err)
		}
		serial, _ := record["serial_number"].(string)
		seq, _ := record["seq"].(float64)
		if record["tag"] != tag || serial == "" {
			return lines, fmt.Errorf("line %d is missing tag or serial_number", lines)
		}
		timestamp, _ := record["timestamp"].(string)
		if _, err := http.ParseTime(timestamp); err != nil {
			return lines, fmt.Errorf("line %d has bad timestamp %q", lines, timestamp)
		}
		if prev, ok := lastSeq[serial]; ok && seq <= prev {
			return lines, fmt.Errorf("line %d: device %s seq %v after %v", lines, serial, seq, prev)
		}
		lastSeq[serial] = seq
	}
	if err := scanner.Err(); err != nil {
		return lines, err
	}

	if want := devices * reportsPerDevice; lines != want {
		return lines, fmt.Errorf("expected %d lines, got %d", want, lines)
	}
	return lines, nil
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("could not find go.mod, run from the project root")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
