// Package testutil provides testing utilities for the NEIS client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

// HubPrefix is the path prefix every NEIS dataset is served under.
const HubPrefix = "/hub/"

// MockNEISResponse defines a fixed response for one resource path.
type MockNEISResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockNEIS is a paging mock of the NEIS hub. Rows registered with SetRows are
// served page by page according to pIndex and pSize; SetResponse and
// SetHandler override a resource entirely.
type MockNEIS struct {
	server   *httptest.Server
	mu       sync.RWMutex
	rows     map[string][]any
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	Queries           []url.Values
	LastRequestHeader http.Header
}

// NewMockNEIS creates a new mock NEIS server.
func NewMockNEIS() *MockNEIS {
	mock := &MockNEIS{
		rows:     make(map[string][]any),
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.Queries = append(mock.Queries, r.URL.Query())
		mock.LastRequestHeader = r.Header.Clone()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockNEIS) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockNEIS) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockNEIS) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Queries = nil
	m.LastRequestHeader = nil
}

// SetRows registers the full dataset for a resource.
func (m *MockNEIS) SetRows(res resource.Resource, rows []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[HubPrefix+res.Path()] = rows
}

// SetHandler sets a custom handler for a resource.
func (m *MockNEIS) SetHandler(res resource.Resource, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[HubPrefix+res.Path()] = handler
}

// SetResponse configures a fixed response for a resource.
func (m *MockNEIS) SetResponse(res resource.Resource, resp MockNEISResponse) {
	m.SetHandler(res, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockNEIS) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetQueries returns a copy of the query parameters of every request so far.
func (m *MockNEIS) GetQueries() []url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]url.Values, len(m.Queries))
	copy(out, m.Queries)
	return out
}

// defaultHandler serves registered rows the way the NEIS hub does.
func (m *MockNEIS) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")

	if !strings.HasPrefix(r.URL.Path, HubPrefix) {
		http.NotFound(w, r)
		return
	}
	tag := strings.TrimPrefix(r.URL.Path, HubPrefix)

	q := r.URL.Query()
	if q.Get("KEY") == "" {
		w.Write(ResultJSON("ERROR-290", "인증키가 유효하지 않습니다."))
		return
	}
	page, errPage := strconv.Atoi(q.Get("pIndex"))
	size, errSize := strconv.Atoi(q.Get("pSize"))
	if errPage != nil || errSize != nil || page < 1 || size < 1 {
		w.Write(ResultJSON("ERROR-333", "요청위치 값의 타입이 유효하지 않습니다."))
		return
	}
	if size > 1000 {
		w.Write(ResultJSON("ERROR-336", "데이터요청은 한번에 최대 1,000건을 넘을 수 없습니다."))
		return
	}

	m.mu.RLock()
	rows, known := m.rows[r.URL.Path]
	m.mu.RUnlock()

	if !known {
		w.Write(ResultJSON("ERROR-310", "해당하는 서비스를 찾을 수 없습니다."))
		return
	}

	start := (page - 1) * size
	if start >= len(rows) {
		w.Write(ResultJSON("INFO-200", "해당하는 데이터가 없습니다."))
		return
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}

	w.Write(PayloadJSON(tag, len(rows), rows[start:end]))
}

// PayloadJSON renders a resource envelope with the given head total and rows.
func PayloadJSON(tag string, total int, rows any) []byte {
	if rows == nil {
		rows = []any{}
	}
	body := map[string]any{
		tag: []any{
			map[string]any{"head": []any{
				map[string]any{"list_total_count": total},
				map[string]any{"RESULT": map[string]string{"CODE": "INFO-000", "MESSAGE": "정상 처리되었습니다."}},
			}},
			map[string]any{"row": rows},
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal payload: %v", err))
	}
	return data
}

// ResultJSON renders a bare RESULT envelope.
func ResultJSON(code, message string) []byte {
	data, err := json.Marshal(map[string]any{
		"RESULT": map[string]string{"CODE": code, "MESSAGE": message},
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal result: %v", err))
	}
	return data
}

// NewPayloadResponse creates a 200 OK response carrying a resource envelope.
func NewPayloadResponse(res resource.Resource, total int, rows any) MockNEISResponse {
	return MockNEISResponse{
		StatusCode: http.StatusOK,
		Body:       string(PayloadJSON(string(res), total, rows)),
		Headers:    map[string]string{"Content-Type": "application/json;charset=UTF-8"},
	}
}

// NewResultResponse creates a 200 OK response carrying a bare RESULT.
func NewResultResponse(code, message string) MockNEISResponse {
	return MockNEISResponse{
		StatusCode: http.StatusOK,
		Body:       string(ResultJSON(code, message)),
		Headers:    map[string]string{"Content-Type": "application/json;charset=UTF-8"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockNEISResponse {
	return MockNEISResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `<html><body>Internal Server Error</body></html>`,
		Headers:    map[string]string{"Content-Type": "text/html"},
	}
}

// SchoolRows returns n schoolInfo rows with codes S0001, S0002, ...
func SchoolRows(n int) []any {
	rows := make([]any, n)
	for i := range rows {
		rows[i] = map[string]string{
			"ATPT_OFCDC_SC_CODE": "B10",
			"SD_SCHUL_CODE":      fmt.Sprintf("S%04d", i+1),
			"SCHUL_NM":           fmt.Sprintf("학교%d", i+1),
		}
	}
	return rows
}
