package pagination

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/neis-client/pkg/envelope"
	"github.com/Sternrassler/neis-client/pkg/logging"
	"github.com/Sternrassler/neis-client/pkg/resource"
	"github.com/rs/zerolog"
)

const (
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 1000

	// MaxPageSize is the largest pSize NEIS accepts.
	MaxPageSize = 1000
)

// Config holds engine configuration.
type Config struct {
	// APIKey is sent as KEY on every request.
	APIKey string

	// PageSize is sent as pSize (default: 1000, max: 1000).
	PageSize int

	// StrictResult turns bare RESULT envelopes other than "no data" and
	// envelopes of another resource into ErrorClassResult failures instead
	// of an empty stop.
	StrictResult bool

	// TraceBodies logs every raw response body at trace level. Off by
	// default since a page can carry up to 1000 rows.
	TraceBodies bool
}

// DefaultConfig returns the default configuration for apiKey.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		PageSize: DefaultPageSize,
	}
}

// Page is one raw response as seen by the engine.
type Page struct {
	StatusCode int
	Body       []byte
}

// PageFetcher is the transport the engine pulls pages through.
type PageFetcher interface {
	// FetchPage requests one page of res with the fully built query string.
	FetchPage(ctx context.Context, res resource.Resource, query string) (Page, error)
}

// Engine walks the pages of NEIS queries. It is immutable after construction
// and safe for concurrent use.
type Engine struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// NewEngine creates a new engine.
func NewEngine(fetcher PageFetcher, config Config) *Engine {
	logger := logging.NewLogger("pagination")

	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.PageSize > MaxPageSize {
		logger.Warn().
			Int("page_size", config.PageSize).
			Int("max_page_size", MaxPageSize).
			Msg("Page size above NEIS limit, clamping")
		config.PageSize = MaxPageSize
	}

	return &Engine{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

// PageSize returns the effective page size.
func (e *Engine) PageSize() int {
	return e.config.PageSize
}

// Strict reports whether strict result handling is enabled.
func (e *Engine) Strict() bool {
	return e.config.StrictResult
}

// Query builds the query string for one page. Engine parameters come first in
// a fixed order, followed by the resource query.
func (e *Engine) Query(page int, baseQuery string) string {
	var b strings.Builder
	b.WriteString("KEY=")
	b.WriteString(url.QueryEscape(e.config.APIKey))
	b.WriteString("&Type=json&pIndex=")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("&pSize=")
	b.WriteString(strconv.Itoa(e.config.PageSize))
	if baseQuery != "" {
		b.WriteByte('&')
		b.WriteString(baseQuery)
	}
	return b.String()
}

// Fetch retrieves every row of res matching baseQuery. Pages are requested in
// order until total <= page*pageSize, where total is the list_total_count of
// the latest page. Rows are returned in response order; the result is never
// nil on success.
func Fetch[T any](ctx context.Context, e *Engine, res resource.Resource, baseQuery string, ex envelope.Extractor[T]) ([]T, error) {
	start := time.Now()
	defer func() {
		neisFetchDuration.WithLabelValues(string(res)).Observe(time.Since(start).Seconds())
	}()

	items := make([]T, 0)
	size := e.config.PageSize

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, &FetchError{Resource: res, Page: page, Class: ErrorClassTransport, Err: err}
		}

		resp, err := e.fetcher.FetchPage(ctx, res, e.Query(page, baseQuery))
		if err != nil {
			e.logger.Error().Err(err).Str("resource", string(res)).Int("page", page).Msg("Page request failed")
			return nil, &FetchError{Resource: res, Page: page, Class: ErrorClassTransport, Err: err}
		}

		if e.config.TraceBodies {
			e.logger.Trace().
				Str("resource", string(res)).
				Int("page", page).
				Int("status", resp.StatusCode).
				Bytes("body", resp.Body).
				Msg("Page body")
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			e.logger.Warn().
				Str("resource", string(res)).
				Int("page", page).
				Int("status", resp.StatusCode).
				Msg("NEIS returned non-success status")
			return nil, &FetchError{
				Resource:   res,
				Page:       page,
				Class:      ErrorClassHTTPStatus,
				StatusCode: resp.StatusCode,
				Snippet:    envelope.Snippet(resp.Body),
				Err:        fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode),
			}
		}

		env, err := envelope.Decode(resp.Body)
		if err != nil {
			e.logger.Warn().Err(err).Str("resource", string(res)).Int("page", page).Msg("Envelope decode failed")
			return nil, &FetchError{
				Resource:   res,
				Page:       page,
				Class:      ErrorClassDecode,
				StatusCode: resp.StatusCode,
				Snippet:    envelope.Snippet(resp.Body),
				Err:        err,
			}
		}

		if env.Tag() != string(res) {
			if ferr := e.checkVariant(res, page, resp, env); ferr != nil {
				return nil, ferr
			}
		}

		total, rows := ex.Extract(env)
		items = append(items, rows...)

		neisPagesFetched.WithLabelValues(string(res)).Inc()
		neisRowsFetched.WithLabelValues(string(res)).Add(float64(len(rows)))

		e.logger.Debug().
			Str("resource", string(res)).
			Int("page", page).
			Int("page_size", size).
			Int("total_count", total).
			Int("rows", len(rows)).
			Msg("Fetched page")

		if total <= page*size {
			break
		}
	}

	e.logger.Debug().
		Str("resource", string(res)).
		Int("rows", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return items, nil
}

// checkVariant applies the result policy to an envelope whose tag is not res.
// It returns nil when the walk should stop with the rows collected so far.
func (e *Engine) checkVariant(res resource.Resource, page int, resp Page, env envelope.Envelope) *FetchError {
	if r, ok := env.(*envelope.Result); ok {
		if r.Code.IsNoData() {
			e.logger.Debug().
				Str("resource", string(res)).
				Int("page", page).
				Str("code", r.Code.Code).
				Msg("No data")
			return nil
		}

		e.logger.Warn().
			Str("resource", string(res)).
			Int("page", page).
			Str("code", r.Code.Code).
			Str("message", r.Code.Message).
			Bool("strict", e.config.StrictResult).
			Msg("NEIS returned result code instead of rows")

		if !e.config.StrictResult {
			return nil
		}
		code := r.Code
		return &FetchError{
			Resource:   res,
			Page:       page,
			Class:      ErrorClassResult,
			StatusCode: resp.StatusCode,
			Result:     &code,
			Snippet:    envelope.Snippet(resp.Body),
			Err:        fmt.Errorf("%w: %s", ErrResultCode, code),
		}
	}

	e.logger.Warn().
		Str("resource", string(res)).
		Str("variant", env.Tag()).
		Int("page", page).
		Bool("strict", e.config.StrictResult).
		Msg("Envelope variant does not match resource")

	if !e.config.StrictResult {
		return nil
	}
	return &FetchError{
		Resource:   res,
		Page:       page,
		Class:      ErrorClassResult,
		StatusCode: resp.StatusCode,
		Snippet:    envelope.Snippet(resp.Body),
		Err:        fmt.Errorf("%w: got %q", ErrVariantMismatch, env.Tag()),
	}
}
