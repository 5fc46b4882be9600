package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Sternrassler/neis-client/pkg/client"
	"github.com/Sternrassler/neis-client/pkg/logging"
	"github.com/Sternrassler/neis-client/pkg/metrics"
	"github.com/Sternrassler/neis-client/pkg/pagination"
	"github.com/Sternrassler/neis-client/pkg/resource"
	"github.com/Sternrassler/neis-client/pkg/stats"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// proxyConfig is the environment-derived configuration.
type proxyConfig struct {
	APIKey    string
	BaseURL   string
	Port      string
	RedisURL  string
	PageSize  int
	Strict    bool
	LogLevel  string
	LogPretty bool
}

func main() {
	// Load .env for local runs; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})
	logger := logging.NewLogger("neis-proxy")

	clientCfg := client.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.PageSize = cfg.PageSize
	clientCfg.StrictResult = cfg.Strict
	clientCfg.TraceBodies = strings.EqualFold(cfg.LogLevel, string(logging.LevelTrace))

	// Redis is optional and only backs /stats
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis", cfg.RedisURL).Msg("Failed to connect to Redis")
		}
		logger.Info().Str("redis", cfg.RedisURL).Msg("Connected to Redis")
		defer redisClient.Close()
		clientCfg.Redis = redisClient
	}

	neisClient, err := client.New(clientCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create NEIS client")
	}
	defer neisClient.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(neisClient, neisClient.Stats(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("base_url", cfg.BaseURL).
			Int("page_size", cfg.PageSize).
			Bool("strict", cfg.Strict).
			Bool("stats", redisClient != nil).
			Msg("Starting NEIS proxy server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// loadConfig reads the proxy configuration through getenv.
func loadConfig(getenv func(string) string) (proxyConfig, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := proxyConfig{
		APIKey:   getenv("NEIS_API_KEY"),
		BaseURL:  get("NEIS_BASE_URL", client.DefaultBaseURL),
		Port:     get("PORT", "8080"),
		RedisURL: getenv("REDIS_URL"),
		LogLevel: get("LOG_LEVEL", string(logging.LevelInfo)),
		PageSize: pagination.DefaultPageSize,
	}

	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("NEIS_API_KEY is required")
	}

	if v := getenv("NEIS_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("NEIS_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}

	var err error
	if cfg.Strict, err = parseBool(getenv("NEIS_STRICT")); err != nil {
		return cfg, fmt.Errorf("NEIS_STRICT: %w", err)
	}
	if cfg.LogPretty, err = parseBool(getenv("LOG_PRETTY")); err != nil {
		return cfg, fmt.Errorf("LOG_PRETTY: %w", err)
	}

	return cfg, nil
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// rowFetcher is the part of *client.Client the proxy needs.
type rowFetcher interface {
	Fetch(ctx context.Context, res resource.Resource, params url.Values) (any, error)
}

// newMux wires all routes. recorder may be nil when stats are disabled.
func newMux(fetcher rowFetcher, recorder *stats.Recorder, logger zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /ready", readyHandler(recorder))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /stats", statsHandler(recorder))
	mux.HandleFunc("GET /neis/{resource}", neisHandler(fetcher, logger))
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func readyHandler(recorder *stats.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if recorder != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := recorder.Ping(ctx); err != nil {
				http.Error(w, fmt.Sprintf("redis unavailable: %v", err), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}

func statsHandler(recorder *stats.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if recorder == nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "stats disabled (REDIS_URL not set)"})
			return
		}

		all, err := recorder.All(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// rowsBody is the success payload of /neis/{resource}.
type rowsBody struct {
	Resource string `json:"resource"`
	Rows     any    `json:"rows"`
}

// errorBody is the failure payload of every JSON route.
type errorBody struct {
	Error      string `json:"error"`
	Class      string `json:"class,omitempty"`
	StatusCode int    `json:"upstream_status,omitempty"`
}

func neisHandler(fetcher rowFetcher, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := resource.Parse(r.PathValue("resource"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}

		start := time.Now()
		rows, err := fetcher.Fetch(r.Context(), res, r.URL.Query())
		if err != nil {
			body := errorBody{Error: err.Error(), Class: string(pagination.ClassOf(err))}
			if code, ok := pagination.StatusCode(err); ok {
				body.StatusCode = code
			}
			logger.Warn().
				Err(err).
				Str("resource", string(res)).
				Str("error_class", body.Class).
				Dur("duration", time.Since(start)).
				Msg("Proxy fetch failed")
			writeJSON(w, http.StatusBadGateway, body)
			return
		}

		logger.Info().
			Str("resource", string(res)).
			Dur("duration", time.Since(start)).
			Msg("Proxy fetch complete")
		writeJSON(w, http.StatusOK, rowsBody{Resource: string(res), Rows: rows})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "write response: %v\n", err)
	}
}
