package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sternrassler/neis-client/pkg/logging"
)

// setupLogging configures logging from the environment and CLI flags.
// Logs always go to stderr so stdout stays machine readable.
func setupLogging(cmd *cobra.Command, lookupEnv func(string) (string, bool)) {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LevelWarn
	cfg.Pretty = true
	cfg.Output = cmd.ErrOrStderr()

	if envLevel, ok := lookupEnv(EnvLogLevel); ok && envLevel != "" {
		cfg.Level = logging.LogLevel(envLevel)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.Level = logging.LevelDebug
	}

	logging.Setup(cfg)
	logger = logging.NewLogger("cli")
}
