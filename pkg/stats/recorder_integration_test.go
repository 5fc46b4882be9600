//go:build integration

package stats

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestRecorder_Integration_ConcurrentRecords(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	ctx := context.Background()

	// Two recorders sharing one Redis, as two proxy replicas would.
	recorders := []*Recorder{NewRecorder(redisClient, logger), NewRecorder(redisClient, logger)}

	const perRecorder = 50
	var wg sync.WaitGroup
	for _, r := range recorders {
		wg.Add(1)
		go func(r *Recorder) {
			defer wg.Done()
			for i := 0; i < perRecorder; i++ {
				if err := r.Record(ctx, Outcome{Resource: "mealServiceDietInfo", Rows: 2, Duration: time.Millisecond}); err != nil {
					t.Errorf("Record() error = %v", err)
					return
				}
			}
		}(r)
	}
	wg.Wait()

	snap, err := recorders[0].Get(ctx, "mealServiceDietInfo")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.Fetches != 2*perRecorder {
		t.Errorf("Fetches = %d, want %d", snap.Fetches, 2*perRecorder)
	}
	if snap.Rows != 4*perRecorder {
		t.Errorf("Rows = %d, want %d", snap.Rows, 4*perRecorder)
	}
	if snap.LastStatus != StatusOK {
		t.Errorf("LastStatus = %q, want %q", snap.LastStatus, StatusOK)
	}
}

func TestRecorder_Integration_Persistence(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	ctx := context.Background()

	if err := NewRecorder(redisClient, logger).Record(ctx, Outcome{Resource: "SchoolSchedule", Rows: 17, Duration: 2 * time.Second}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// A fresh recorder sees state written by another instance.
	snap, err := NewRecorder(redisClient, logger).Get(ctx, "SchoolSchedule")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.LastRows != 17 || snap.LastDuration != 2*time.Second {
		t.Errorf("snapshot = %+v", snap)
	}

	fields, err := redisClient.HGetAll(ctx, Key("SchoolSchedule")).Result()
	if err != nil {
		t.Fatalf("HGetAll error = %v", err)
	}
	if fields[fieldLastStatus] != StatusOK {
		t.Errorf("stored last_status = %q", fields[fieldLastStatus])
	}
}
