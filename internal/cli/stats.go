package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/neis-client/pkg/logging"
	"github.com/Sternrassler/neis-client/pkg/stats"
)

func newStatsCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		redisURL string
		output   string
		reset    bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show fetch statistics recorded in Redis",
		Long: `Shows the per-resource fetch statistics written by clients configured
with Redis (for example neis-proxy).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if redisURL == "" {
				redisURL, _ = lookupEnv(EnvRedis)
			}
			if redisURL == "" {
				return fmt.Errorf("redis address is required: pass --redis-url or set %s", EnvRedis)
			}
			return runStats(cmd, redisURL, output, reset)
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis address host:port (default $"+EnvRedis+")")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete all recorded statistics")

	return cmd
}

func runStats(cmd *cobra.Command, redisURL, output string, reset bool) error {
	rdb := redis.NewClient(&redis.Options{Addr: redisURL})
	defer rdb.Close()

	recorder := stats.NewRecorder(rdb, logging.NewLogger("stats"))
	ctx := cmd.Context()

	if err := recorder.Ping(ctx); err != nil {
		return fmt.Errorf("connect to redis %s: %w", redisURL, err)
	}

	if reset {
		if err := recorder.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Statistics reset")
		return nil
	}

	snapshots, err := recorder.All(ctx)
	if err != nil {
		return err
	}

	if output != "table" {
		format, err := ParseFormat(output)
		if err != nil {
			return err
		}
		return Render(cmd.OutOrStdout(), format, snapshots)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No statistics recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Resource\tFetches\tErrors\tRows\tLast Rows\tLast Status\tLast Duration\tUpdated")
	fmt.Fprintln(w, "--------\t-------\t------\t----\t---------\t-----------\t-------------\t-------")
	for _, s := range snapshots {
		updated := "-"
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			s.Resource,
			s.Fetches,
			s.Errors,
			s.Rows,
			s.LastRows,
			s.LastStatus,
			s.LastDuration,
			updated,
		)
	}
	return w.Flush()
}
