// Package cli implements the neis command line tool.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/neis-client/pkg/client"
	"github.com/Sternrassler/neis-client/pkg/logging"
	"github.com/Sternrassler/neis-client/pkg/pagination"
)

// Environment variables read when the matching flag is not set.
const (
	EnvAPIKey   = "NEIS_API_KEY"
	EnvBaseURL  = "NEIS_BASE_URL"
	EnvRedis    = "REDIS_URL"
	EnvLogLevel = "LOG_LEVEL"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // set once in PersistentPreRunE

const rootCmdExample = `  # List the datasets the client knows about
  neis resources

  # Look up a school by name
  neis fetch schoolInfo -p SCHUL_NM=서울고등학교

  # Meals for one school in March, as YAML
  neis fetch mealServiceDietInfo -p ATPT_OFCDC_SC_CODE=B10 -p SD_SCHUL_CODE=7010536 \
    -p MLSV_FROM_YMD=20250301 -p MLSV_TO_YMD=20250331 -o yaml`

// NewRootCmd creates the root Cobra command for the neis CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "neis",
		Short:         "NEIS open education data client",
		Long:          "neis: Query the NEIS open API (open.neis.go.kr) and print every row of a dataset",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd, lookupEnv)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("api-key", "", "NEIS API key (default $"+EnvAPIKey+")")
	flags.String("base-url", "", "NEIS API base URL (default $"+EnvBaseURL+" or "+client.DefaultBaseURL+")")
	flags.Int("page-size", pagination.DefaultPageSize, "rows per page request, 1-1000")
	flags.Bool("strict", false, "fail on NEIS result codes instead of printing no rows")
	flags.Duration("timeout", 30*time.Second, "timeout per page request")

	cmd.AddCommand(
		newResourcesCmd(),
		newFetchCmd(lookupEnv),
		newStatsCmd(lookupEnv),
	)

	return cmd
}

// clientConfig builds the client configuration from persistent flags,
// falling back to the environment for the key and base URL.
func clientConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (client.Config, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey, _ = lookupEnv(EnvAPIKey)
	}
	if apiKey == "" {
		return client.Config{}, fmt.Errorf("api key is required: pass --api-key or set %s", EnvAPIKey)
	}

	cfg := client.DefaultConfig(apiKey)

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		if v, ok := lookupEnv(EnvBaseURL); ok && v != "" {
			baseURL = v
		}
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
	cfg.StrictResult, _ = cmd.Flags().GetBool("strict")
	cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")

	if level, ok := lookupEnv(EnvLogLevel); ok && strings.EqualFold(level, string(logging.LevelTrace)) {
		cfg.TraceBodies = true
	}

	return cfg, nil
}
