package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"stats-collector/internal/dashboards"
	"stats-collector/internal/events"
	internalhttp "stats-collector/internal/http"
	"stats-collector/internal/ingestors"
	"stats-collector/internal/shared/filestorages"
	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/stores"
	"stats-collector/internal/streams"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = "<!DOCTYPE html><html><body>stats</body></html>"

type testServer struct {
	*httptest.Server
	rootDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	baseDir := t.TempDir()
	rootDir := filepath.Join(baseDir, "stats_reported")
	pageFile := filepath.Join(baseDir, "stats.html")
	require.NoError(t, os.WriteFile(pageFile, []byte(testPage), 0o644))

	fileStorage, err := filestorages.NewFileStorage(rootDir)
	require.NoError(t, err)
	recordLogStore := stores.NewRecordLogStore(fileStorage)

	queue := streams.NewPartitionedQueue[events.RecordAppendEvent](4, 64)
	consumer := streams.NewRecordAppendConsumer(queue, recordLogStore, loggers.Nop())
	consumer.Start(context.Background())
	t.Cleanup(consumer.Stop)

	ingestionService := ingestors.NewIngestionService(2000, streams.NewRecordAppendProducer(queue))
	dashboardService := dashboards.NewDashboardService(pageFile,
		[]string{"start_up_time", "screen_cache_time", "boot.v2"}, recordLogStore)

	router := internalhttp.NewRouter(ingestionService, dashboardService, 2000, loggers.Nop())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{Server: server, rootDir: rootDir}
}

func (s *testServer) post(t *testing.T, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(s.URL+"/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) do(t *testing.T, method, path string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) logLines(t *testing.T, tag string) []map[string]any {
	t.Helper()
	file, err := os.Open(filepath.Join(s.rootDir, tag+".jsonl"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer file.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func decodeError(t *testing.T, resp *http.Response) internalhttp.ErrorResponse {
	t.Helper()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var errorResponse internalhttp.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errorResponse))
	return errorResponse
}

func TestRouter_PostRecord_AppendsLine(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := server.post(t, `{"tag":"start_up_time","serial_number":"00:04:a3:01:02:03","seconds":12.5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))

	lines := server.logLines(t, "start_up_time")
	require.Len(t, lines, 1)
	assert.Equal(t, "start_up_time", lines[0]["tag"])
	assert.Equal(t, "00:04:a3:01:02:03", lines[0]["serial_number"])
	assert.Equal(t, 12.5, lines[0]["seconds"])
	_, err := http.ParseTime(lines[0]["timestamp"].(string))
	assert.NoError(t, err)
}

func TestRouter_PostRecord_TooLarge(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	padding := strings.Repeat("x", 2001)
	resp := server.post(t, `{"tag":"start_up_time","serial_number":"s","pad":"`+padding+`"}`)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.True(t, resp.Close, "connection must not be reused")
	errorResponse := decodeError(t, resp)
	assert.Equal(t, "request body too large", errorResponse.Error)
	assert.Equal(t, "ING_1001", errorResponse.ErrorCode)

	assert.Empty(t, server.logLines(t, "start_up_time"))
}

func TestRouter_PostRecord_BodyAtLimit(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	prefix := `{"tag":"start_up_time","serial_number":"s","pad":"`
	suffix := `"}`
	body := prefix + strings.Repeat("x", 2000-len(prefix)-len(suffix)) + suffix
	require.Len(t, body, 2000)

	resp := server.post(t, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
	assert.Len(t, server.logLines(t, "start_up_time"), 1)
}

func TestRouter_PostRecord_Rejected(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	bodies := map[string]string{
		"malformed":      `{"tag":`,
		"not an object":  `["tag","serial_number"]`,
		"missing tag":    `{"serial_number":"s"}`,
		"missing serial": `{"tag":"start_up_time"}`,
		"traversal":      `{"tag":"../escaped","serial_number":"s"}`,
		"separator":      `{"tag":"a/b","serial_number":"s"}`,
		"duplicate tag":  `{"tag":"start_up_time","serial_number":"s","tag":"../escaped"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp := server.post(t, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			errorResponse := decodeError(t, resp)
			assert.Equal(t, "ING_1000", errorResponse.ErrorCode)
			assert.NotEmpty(t, errorResponse.Error)
		})
	}

	entries, err := os.ReadDir(server.rootDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected records must not create files")
	_, err = os.Stat(filepath.Join(filepath.Dir(server.rootDir), "escaped.jsonl"))
	assert.True(t, os.IsNotExist(err))
}

func TestRouter_DashboardPage(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp := server.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, testPage, readBody(t, resp))
}

func TestRouter_DashboardPage_AfterPost(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	post := server.post(t, `{"tag":"start_up_time","serial_number":"s"}`)
	require.Equal(t, http.StatusOK, post.StatusCode)

	resp := server.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, testPage, readBody(t, resp))
}

func TestRouter_ReadLog(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	server.post(t, `{"tag":"start_up_time","serial_number":"a"}`)
	server.post(t, `{"tag":"start_up_time","serial_number":"b"}`)

	resp := server.do(t, http.MethodGet, "/start_up_time.jsonl", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/jsonl", resp.Header.Get("Content-Type"))

	content, err := os.ReadFile(filepath.Join(server.rootDir, "start_up_time.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, string(content), readBody(t, resp))
	assert.Equal(t, 2, strings.Count(string(content), "\n"))
}

func TestRouter_ReadLog_DottedName(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	post := server.post(t, `{"tag":"boot.v2","serial_number":"s"}`)
	require.Equal(t, http.StatusOK, post.StatusCode)

	resp := server.do(t, http.MethodGet, "/boot.v2.jsonl", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/jsonl", resp.Header.Get("Content-Type"))

	content, err := os.ReadFile(filepath.Join(server.rootDir, "boot.v2.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, string(content), readBody(t, resp))
}

func TestRouter_ReadLog_Gzip(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	for i := 0; i < 40; i++ {
		resp := server.post(t, fmt.Sprintf(`{"tag":"start_up_time","serial_number":"dev-%d","seconds":%d}`, i, i))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := server.do(t, http.MethodGet, "/start_up_time.jsonl", http.Header{"Accept-Encoding": {"gzip"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	defer gz.Close()
	decompressed, err := io.ReadAll(gz)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(server.rootDir, "start_up_time.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, string(content), string(decompressed))
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/foo", wantCode: "HTTP_1000"},
		{name: "log name without extension", method: http.MethodGet, path: "/start_up_time", wantCode: "HTTP_1000"},
		{name: "nested path", method: http.MethodGet, path: "/a/b.jsonl", wantCode: "HTTP_1000"},
		{name: "known path other method", method: http.MethodDelete, path: "/", wantCode: "HTTP_1000"},
		{name: "post to log", method: http.MethodPost, path: "/start_up_time.jsonl", wantCode: "HTTP_1000"},
		{name: "unlisted log", method: http.MethodGet, path: "/unknown.jsonl", wantCode: "DASH_1000"},
		{name: "listed log never written", method: http.MethodGet, path: "/screen_cache_time.jsonl", wantCode: "DASH_1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := server.do(t, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			errorResponse := decodeError(t, resp)
			assert.Equal(t, "404 not found", errorResponse.Error)
			assert.Equal(t, tt.wantCode, errorResponse.ErrorCode)
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.post(t, `{"tag":"start_up_time","serial_number":"s"}`)

	resp := server.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "stats_collector_ingestion_records_ingested_total")
}

func TestRouter_ConcurrentPostsSameTag(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	const clients = 10
	const perClient = 20

	var wg sync.WaitGroup
	for c := 0; c < clients; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			for i := 0; i < perClient; i++ {
				body := fmt.Sprintf(`{"tag":"start_up_time","serial_number":"dev-%d","n":%d}`, c, i)
				resp, err := http.Post(server.URL+"/", "application/json", strings.NewReader(body))
				if !assert.NoError(t, err) {
					return
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}(c)
	}
	wg.Wait()

	lines := server.logLines(t, "start_up_time")
	assert.Len(t, lines, clients*perClient)
}
