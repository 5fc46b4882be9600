package stats

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var neisStatsWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "neis_stats_write_errors_total",
	Help: "Total number of failed fetch statistics writes to Redis",
})

// Recorder writes and reads fetch statistics.
type Recorder struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewRecorder creates a new recorder.
func NewRecorder(redisClient *redis.Client, logger zerolog.Logger) *Recorder {
	return &Recorder{
		redis:  redisClient,
		logger: logger,
	}
}

// Key returns the Redis hash key for resource.
func Key(resource string) string {
	return KeyPrefix + resource
}

// Record adds one finished fetch to the statistics of its resource.
func (r *Recorder) Record(ctx context.Context, o Outcome) error {
	if o.Resource == "" {
		return fmt.Errorf("record stats: empty resource")
	}

	status := StatusOK
	if o.Failed() {
		status = o.Class
	}

	key := Key(o.Resource)

	// Store atomically
	pipe := r.redis.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldFetches, 1)
	if o.Failed() {
		pipe.HIncrBy(ctx, key, fieldErrors, 1)
	} else {
		pipe.HIncrBy(ctx, key, fieldRows, int64(o.Rows))
	}
	pipe.HSet(ctx, key,
		fieldLastRows, o.Rows,
		fieldLastStatus, status,
		fieldLastDuration, o.Duration.Milliseconds(),
		fieldUpdatedAt, time.Now().UnixMilli(),
	)
	pipe.SAdd(ctx, KeyIndex, o.Resource)

	if _, err := pipe.Exec(ctx); err != nil {
		neisStatsWriteErrors.Inc()
		return fmt.Errorf("store fetch stats in redis: %w", err)
	}

	r.logger.Debug().
		Str("resource", o.Resource).
		Int("rows", o.Rows).
		Str("status", status).
		Dur("duration", o.Duration).
		Msg("Fetch stats recorded")

	return nil
}

// Get returns the statistics of one resource. A resource that was never
// recorded yields a zero Snapshot.
func (r *Recorder) Get(ctx context.Context, resource string) (*Snapshot, error) {
	fields, err := r.redis.HGetAll(ctx, Key(resource)).Result()
	if err != nil {
		return nil, fmt.Errorf("get stats for %s: %w", resource, err)
	}

	snap := &Snapshot{Resource: resource}
	if len(fields) == 0 {
		return snap, nil
	}

	if snap.Fetches, err = parseInt(fields, fieldFetches); err != nil {
		return nil, err
	}
	if snap.Errors, err = parseInt(fields, fieldErrors); err != nil {
		return nil, err
	}
	if snap.Rows, err = parseInt(fields, fieldRows); err != nil {
		return nil, err
	}
	lastRows, err := parseInt(fields, fieldLastRows)
	if err != nil {
		return nil, err
	}
	durationMs, err := parseInt(fields, fieldLastDuration)
	if err != nil {
		return nil, err
	}
	updatedMs, err := parseInt(fields, fieldUpdatedAt)
	if err != nil {
		return nil, err
	}

	snap.LastRows = int(lastRows)
	snap.LastStatus = fields[fieldLastStatus]
	snap.LastDuration = time.Duration(durationMs) * time.Millisecond
	if updatedMs > 0 {
		snap.UpdatedAt = time.UnixMilli(updatedMs)
	}

	return snap, nil
}

// All returns the statistics of every recorded resource, sorted by name.
func (r *Recorder) All(ctx context.Context) ([]Snapshot, error) {
	resources, err := r.redis.SMembers(ctx, KeyIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("list stats resources: %w", err)
	}
	sort.Strings(resources)

	out := make([]Snapshot, 0, len(resources))
	for _, res := range resources {
		snap, err := r.Get(ctx, res)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, nil
}

// Reset deletes the statistics of every recorded resource.
func (r *Recorder) Reset(ctx context.Context) error {
	resources, err := r.redis.SMembers(ctx, KeyIndex).Result()
	if err != nil {
		return fmt.Errorf("list stats resources: %w", err)
	}

	keys := make([]string, 0, len(resources)+1)
	for _, res := range resources {
		keys = append(keys, Key(res))
	}
	keys = append(keys, KeyIndex)

	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	r.logger.Info().Int("resources", len(resources)).Msg("Fetch stats reset")
	return nil
}

// Ping checks that Redis is reachable.
func (r *Recorder) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}

func parseInt(fields map[string]string, name string) (int64, error) {
	v, ok := fields[name]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return n, nil
}
