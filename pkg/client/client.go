// Package client provides the NEIS open API client: HTTP transport, typed
// per-resource fetches on top of the pagination engine, metrics, and
// optional fetch statistics in Redis.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/neis-client/pkg/envelope"
	"github.com/Sternrassler/neis-client/pkg/logging"
	"github.com/Sternrassler/neis-client/pkg/pagination"
	"github.com/Sternrassler/neis-client/pkg/resource"
	"github.com/Sternrassler/neis-client/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for NEIS client operations.
var (
	neisRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neis_requests_total",
		Help: "Total NEIS page requests by resource and status",
	}, []string{"resource", "status"})

	neisRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neis_request_duration_seconds",
		Help:    "NEIS page request duration in seconds by resource",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"resource"})

	neisErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neis_errors_total",
		Help: "Total failed NEIS fetches by class",
	}, []string{"class"})
)

const (
	// DefaultBaseURL is the public NEIS open API host.
	DefaultBaseURL = "https://open.neis.go.kr"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "neis-client/1.0"

	// statsTimeout bounds the Redis write after each fetch.
	statsTimeout = 2 * time.Second
)

// reservedParams are set by the engine on every page and cannot be
// overridden through Fetch.
var reservedParams = []string{"KEY", "Type", "pIndex", "pSize"}

// Client is the main NEIS client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	engine     *pagination.Engine
	stats      *stats.Recorder
	baseURL    string
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey is the NEIS open API key (REQUIRED).
	APIKey string

	// BaseURL of the API, without the /hub path.
	BaseURL string

	// User-Agent header
	UserAgent string

	// Pagination
	PageSize     int  // Rows per request, 1..1000
	StrictResult bool // Fail on RESULT codes other than INFO-200 instead of returning empty

	// TraceBodies dumps raw response bodies at trace level
	TraceBodies bool

	// Timeout per page request
	Timeout time.Duration

	// Redis client for fetch statistics (optional)
	Redis *redis.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		PageSize:  pagination.DefaultPageSize,
		Timeout:   30 * time.Second,
	}
}

// New creates a new NEIS client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", cfg.BaseURL)
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = pagination.DefaultPageSize
	}
	if cfg.PageSize < 1 || cfg.PageSize > pagination.MaxPageSize {
		return nil, fmt.Errorf("page_size must be between 1 and %d (got %d)", pagination.MaxPageSize, cfg.PageSize)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	// Initialize logger
	logger := logging.NewLogger("neis-client")

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		config:  cfg,
		logger:  logger,
	}

	c.engine = pagination.NewEngine(c, pagination.Config{
		APIKey:       cfg.APIKey,
		PageSize:     cfg.PageSize,
		StrictResult: cfg.StrictResult,
		TraceBodies:  cfg.TraceBodies,
	})

	if cfg.Redis != nil {
		c.stats = stats.NewRecorder(cfg.Redis, logging.NewLogger("stats"))
	}

	return c, nil
}

// FetchPage performs one GET against /hub/{resource} with a complete query
// string. It implements pagination.PageFetcher.
func (c *Client) FetchPage(ctx context.Context, res resource.Resource, query string) (pagination.Page, error) {
	endpoint := c.baseURL + "/hub/" + res.Path()

	startTime := time.Now()
	defer func() {
		neisRequestDuration.WithLabelValues(string(res)).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query, nil)
	if err != nil {
		return pagination.Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	// The query carries the API key; only the path is logged.
	c.logger.Debug().
		Str("resource", string(res)).
		Str("endpoint", endpoint).
		Msg("Executing NEIS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		neisRequestsTotal.WithLabelValues(string(res), "network_error").Inc()
		return pagination.Page{}, fmt.Errorf("request %s: %w", res, stripQuery(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		neisRequestsTotal.WithLabelValues(string(res), "network_error").Inc()
		return pagination.Page{}, fmt.Errorf("read %s response: %w", res, err)
	}

	neisRequestsTotal.WithLabelValues(string(res), strconv.Itoa(resp.StatusCode)).Inc()

	return pagination.Page{StatusCode: resp.StatusCode, Body: body}, nil
}

// fetch encodes typed params and retrieves every matching row.
func fetch[T any, P resource.Params](ctx context.Context, c *Client, params P, kind envelope.Kind[T]) ([]T, error) {
	query, err := resource.Encode(params)
	if err != nil {
		return nil, err
	}
	return run(ctx, c, kind.Resource, query, kind)
}

// run drives the engine for one call and records its outcome.
func run[T any](ctx context.Context, c *Client, res resource.Resource, query string, ex envelope.Extractor[T]) ([]T, error) {
	start := time.Now()
	items, err := pagination.Fetch(ctx, c.engine, res, query, ex)

	outcome := stats.Outcome{
		Resource: string(res),
		Rows:     len(items),
		Duration: time.Since(start),
	}
	if err != nil {
		class := pagination.ClassOf(err)
		if class == "" {
			class = pagination.ErrorClassTransport
		}
		outcome.Class = string(class)
		neisErrorsTotal.WithLabelValues(string(class)).Inc()
	}
	c.record(ctx, outcome)

	return items, err
}

// runAny is run for Fetch. A failed call yields an untyped nil.
func runAny[T any](ctx context.Context, c *Client, res resource.Resource, query string, ex envelope.Extractor[T]) (any, error) {
	items, err := run(ctx, c, res, query, ex)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// record stores the outcome when statistics are enabled. Failures are
// logged and never affect the fetch result.
func (c *Client) record(ctx context.Context, o stats.Outcome) {
	if c.stats == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()

	if err := c.stats.Record(ctx, o); err != nil {
		c.logger.Warn().Err(err).Str("resource", o.Resource).Msg("Failed to record fetch stats")
	}
}

// SchoolInfo fetches 학교기본정보.
func (c *Client) SchoolInfo(ctx context.Context, params resource.SchoolInfoParams) ([]resource.SchoolInfoItem, error) {
	return fetch(ctx, c, params, envelope.SchoolInfo)
}

// ClassInfo fetches 학급정보.
func (c *Client) ClassInfo(ctx context.Context, params resource.ClassInfoParams) ([]resource.ClassInfoItem, error) {
	return fetch(ctx, c, params, envelope.ClassInfo)
}

// SchoolMajorInfo fetches 학교학과정보.
func (c *Client) SchoolMajorInfo(ctx context.Context, params resource.SchoolMajorInfoParams) ([]resource.SchoolMajorInfoItem, error) {
	return fetch(ctx, c, params, envelope.SchoolMajorInfo)
}

// SchoolAflcoInfo fetches 학교계열정보.
func (c *Client) SchoolAflcoInfo(ctx context.Context, params resource.SchoolAflcoInfoParams) ([]resource.SchoolAflcoInfoItem, error) {
	return fetch(ctx, c, params, envelope.SchoolAflcoInfo)
}

// SchoolSchedule fetches 학사일정.
func (c *Client) SchoolSchedule(ctx context.Context, params resource.SchoolScheduleParams) ([]resource.SchoolScheduleItem, error) {
	return fetch(ctx, c, params, envelope.SchoolSchedule)
}

// ElsTimetable fetches 초등학교시간표.
func (c *Client) ElsTimetable(ctx context.Context, params resource.ElsTimetableParams) ([]resource.ElsTimetableItem, error) {
	return fetch(ctx, c, params, envelope.ElsTimetable)
}

// MisTimetable fetches 중학교시간표.
func (c *Client) MisTimetable(ctx context.Context, params resource.MisTimetableParams) ([]resource.MisTimetableItem, error) {
	return fetch(ctx, c, params, envelope.MisTimetable)
}

// HisTimetable fetches 고등학교시간표.
func (c *Client) HisTimetable(ctx context.Context, params resource.HisTimetableParams) ([]resource.HisTimetableItem, error) {
	return fetch(ctx, c, params, envelope.HisTimetable)
}

// SpsTimetable fetches 특수학교시간표.
func (c *Client) SpsTimetable(ctx context.Context, params resource.SpsTimetableParams) ([]resource.SpsTimetableItem, error) {
	return fetch(ctx, c, params, envelope.SpsTimetable)
}

// ClassRoomInfo fetches 시간표강의실정보.
func (c *Client) ClassRoomInfo(ctx context.Context, params resource.ClassRoomInfoParams) ([]resource.ClassRoomInfoItem, error) {
	return fetch(ctx, c, params, envelope.ClassRoomInfo)
}

// AcademyInfo fetches 학원교습소정보.
func (c *Client) AcademyInfo(ctx context.Context, params resource.AcademyInfoParams) ([]resource.AcademyInfoItem, error) {
	return fetch(ctx, c, params, envelope.AcademyInfo)
}

// MealService fetches 급식식단정보.
func (c *Client) MealService(ctx context.Context, params resource.MealServiceParams) ([]resource.MealServiceItem, error) {
	return fetch(ctx, c, params, envelope.MealService)
}

// Fetch retrieves every row of res for raw query parameters. The result is
// a slice of the resource's record type, e.g. []resource.SchoolInfoItem, or
// nil on error.
// KEY, Type, pIndex and pSize in params are ignored.
func (c *Client) Fetch(ctx context.Context, res resource.Resource, params url.Values) (any, error) {
	query := sanitize(params).Encode()

	switch res {
	case resource.SchoolInfo:
		return runAny(ctx, c, res, query, envelope.SchoolInfo)
	case resource.ClassInfo:
		return runAny(ctx, c, res, query, envelope.ClassInfo)
	case resource.SchoolMajorInfo:
		return runAny(ctx, c, res, query, envelope.SchoolMajorInfo)
	case resource.SchoolAflcoInfo:
		return runAny(ctx, c, res, query, envelope.SchoolAflcoInfo)
	case resource.SchoolSchedule:
		return runAny(ctx, c, res, query, envelope.SchoolSchedule)
	case resource.ElsTimetable:
		return runAny(ctx, c, res, query, envelope.ElsTimetable)
	case resource.MisTimetable:
		return runAny(ctx, c, res, query, envelope.MisTimetable)
	case resource.HisTimetable:
		return runAny(ctx, c, res, query, envelope.HisTimetable)
	case resource.SpsTimetable:
		return runAny(ctx, c, res, query, envelope.SpsTimetable)
	case resource.ClassRoomInfo:
		return runAny(ctx, c, res, query, envelope.ClassRoomInfo)
	case resource.AcademyInfo:
		return runAny(ctx, c, res, query, envelope.AcademyInfo)
	case resource.MealService:
		return runAny(ctx, c, res, query, envelope.MealService)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, res)
	}
}

// sanitize copies params without the engine-owned keys.
func sanitize(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		out[k] = append([]string(nil), v...)
	}
	for _, k := range reservedParams {
		out.Del(k)
	}
	return out
}

// stripQuery removes the query string (and with it the API key) from
// *url.Error messages.
func stripQuery(err error) error {
	if ue, ok := err.(*url.Error); ok {
		if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
			return &url.Error{Op: ue.Op, URL: ue.URL[:i], Err: ue.Err}
		}
	}
	return err
}

// Stats returns the statistics recorder, or nil when Redis is not configured.
func (c *Client) Stats() *stats.Recorder {
	return c.stats
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
