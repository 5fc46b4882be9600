package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Sternrassler/neis-client/internal/testutil"
	"github.com/Sternrassler/neis-client/pkg/client"
	"github.com/Sternrassler/neis-client/pkg/resource"
	"github.com/Sternrassler/neis-client/pkg/stats"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var quietLogger = zerolog.New(io.Discard)

// newTestServer starts the proxy mux in front of a mock NEIS hub.
func newTestServer(t *testing.T, mock *testutil.MockNEIS, redisClient *redis.Client) *httptest.Server {
	t.Helper()

	cfg := client.DefaultConfig("proxy-key")
	cfg.BaseURL = mock.URL()
	cfg.PageSize = 2
	cfg.Redis = redisClient

	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create NEIS client: %v", err)
	}

	srv := httptest.NewServer(newMux(c, c.Stats(), quietLogger))
	t.Cleanup(func() {
		srv.Close()
		c.Close()
	})
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestReadyEndpoint_WithoutRedis(t *testing.T) {
	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()

	readyHandler(nil)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestReadyEndpoint_RedisDown(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:1", MaxRetries: -1})
	defer redisClient.Close()
	recorder := stats.NewRecorder(redisClient, quietLogger)

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()

	readyHandler(recorder)(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestNEISEndpoint(t *testing.T) {
	mock := testutil.NewMockNEIS()
	defer mock.Close()
	mock.SetRows(resource.SchoolInfo, testutil.SchoolRows(5))
	mock.SetResponse(resource.MealService, testutil.NewServerErrorResponse())

	srv := newTestServer(t, mock, nil)

	t.Run("rows", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/neis/schoolInfo?ATPT_OFCDC_SC_CODE=B10")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
		}

		var payload struct {
			Resource string                    `json:"resource"`
			Rows     []resource.SchoolInfoItem `json:"rows"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Resource != "schoolInfo" || len(payload.Rows) != 5 {
			t.Errorf("payload = %s", body)
		}
		if payload.Rows[4].SchoolCode != "S0005" {
			t.Errorf("last row = %+v", payload.Rows[4])
		}
	})

	t.Run("unknown_resource", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/neis/busStops")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
		if !strings.Contains(string(body), "busStops") {
			t.Errorf("body = %s", body)
		}
	})

	t.Run("upstream_failure", func(t *testing.T) {
		resp, body := get(t, srv.URL+"/neis/mealServiceDietInfo?ATPT_OFCDC_SC_CODE=B10&SD_SCHUL_CODE=7010536")
		if resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("Expected status 502, got %d", resp.StatusCode)
		}

		var payload errorBody
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Class != "http_status" || payload.StatusCode != 500 {
			t.Errorf("payload = %+v", payload)
		}
		if strings.Contains(payload.Error, "proxy-key") {
			t.Errorf("error leaks api key: %s", payload.Error)
		}
	})

	t.Run("method_not_allowed", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/neis/schoolInfo", "application/json", nil)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", resp.StatusCode)
		}
	})
}

func TestStatsEndpoint_Disabled(t *testing.T) {
	mock := testutil.NewMockNEIS()
	defer mock.Close()
	srv := newTestServer(t, mock, nil)

	resp, _ := get(t, srv.URL+"/stats")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}
	redisClient.FlushDB(context.Background())
	t.Cleanup(func() {
		redisClient.FlushDB(context.Background())
		redisClient.Close()
	})

	mock := testutil.NewMockNEIS()
	defer mock.Close()
	mock.SetRows(resource.SchoolInfo, testutil.SchoolRows(3))

	srv := newTestServer(t, mock, redisClient)

	get(t, srv.URL+"/neis/schoolInfo")
	resp, body := get(t, srv.URL+"/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var snaps []stats.Snapshot
	if err := json.Unmarshal(body, &snaps); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Resource != "schoolInfo" || snaps[0].LastRows != 3 {
		t.Errorf("stats = %s", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mock := testutil.NewMockNEIS()
	defer mock.Close()
	mock.SetRows(resource.SchoolInfo, testutil.SchoolRows(1))
	srv := newTestServer(t, mock, nil)

	// Make one request so the vectors have samples.
	get(t, srv.URL+"/neis/schoolInfo")

	resp, body := get(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	for _, name := range []string{"neis_requests_total", "neis_pages_fetched_total", "neis_fetch_duration_seconds"} {
		if !strings.Contains(bodyStr, name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
		check   func(t *testing.T, cfg proxyConfig)
	}{
		{
			name: "defaults",
			vars: map[string]string{"NEIS_API_KEY": "k"},
			check: func(t *testing.T, cfg proxyConfig) {
				if cfg.Port != "8080" || cfg.BaseURL != client.DefaultBaseURL || cfg.PageSize != 1000 {
					t.Errorf("cfg = %+v", cfg)
				}
				if cfg.RedisURL != "" || cfg.Strict || cfg.LogPretty || cfg.LogLevel != "info" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "overrides",
			vars: map[string]string{
				"NEIS_API_KEY":   "k",
				"NEIS_BASE_URL":  "http://localhost:9000",
				"PORT":           "9090",
				"REDIS_URL":      "redis:6379",
				"NEIS_PAGE_SIZE": "100",
				"NEIS_STRICT":    "true",
				"LOG_LEVEL":      "trace",
				"LOG_PRETTY":     "1",
			},
			check: func(t *testing.T, cfg proxyConfig) {
				want := proxyConfig{
					APIKey:    "k",
					BaseURL:   "http://localhost:9000",
					Port:      "9090",
					RedisURL:  "redis:6379",
					PageSize:  100,
					Strict:    true,
					LogLevel:  "trace",
					LogPretty: true,
				}
				if cfg != want {
					t.Errorf("cfg = %+v, want %+v", cfg, want)
				}
			},
		},
		{
			name:    "missing key",
			vars:    map[string]string{},
			wantErr: "NEIS_API_KEY is required",
		},
		{
			name:    "bad page size",
			vars:    map[string]string{"NEIS_API_KEY": "k", "NEIS_PAGE_SIZE": "many"},
			wantErr: "NEIS_PAGE_SIZE",
		},
		{
			name:    "bad strict flag",
			vars:    map[string]string{"NEIS_API_KEY": "k", "NEIS_STRICT": "maybe"},
			wantErr: "NEIS_STRICT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(env(tt.vars))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}
