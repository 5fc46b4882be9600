package cli

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/neis-client/pkg/client"
	"github.com/Sternrassler/neis-client/pkg/resource"
)

func newFetchCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		params []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch <resource>",
		Short: "Fetch every row of a NEIS dataset",
		Long: `Fetches every page of a NEIS dataset and prints the rows.

Query parameters use the NEIS request field names (ATPT_OFCDC_SC_CODE,
SD_SCHUL_CODE, MLSV_YMD, ...). KEY, Type, pIndex and pSize are managed by
the client and ignored.`,
		Example: `  neis fetch classInfo -p ATPT_OFCDC_SC_CODE=B10 -p SD_SCHUL_CODE=7010536 -p AY=2025
  neis fetch SchoolSchedule -p ATPT_OFCDC_SC_CODE=B10 -p SD_SCHUL_CODE=7010536 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, lookupEnv, args[0], params, output)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as KEY=VALUE (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", string(FormatJSON), "output format: json or yaml")

	return cmd
}

func runFetch(
	cmd *cobra.Command,
	lookupEnv func(string) (string, bool),
	name string,
	params []string,
	output string,
) error {
	res, err := resource.Parse(name)
	if err != nil {
		return err
	}

	format, err := ParseFormat(output)
	if err != nil {
		return err
	}

	values, err := parseParams(params)
	if err != nil {
		return err
	}

	cfg, err := clientConfig(cmd, lookupEnv)
	if err != nil {
		return err
	}

	c, err := client.New(cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer c.Close()

	start := time.Now()
	rows, err := c.Fetch(cmd.Context(), res, values)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", res, err)
	}

	logger.Debug().
		Str("resource", string(res)).
		Int("rows", reflect.ValueOf(rows).Len()).
		Dur("duration", time.Since(start)).
		Msg("Fetch completed")

	return Render(cmd.OutOrStdout(), format, rows)
}

// parseParams turns KEY=VALUE pairs into query values. Repeated keys keep
// every value in order.
func parseParams(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected KEY=VALUE", pair)
		}
		values.Add(key, value)
	}
	return values, nil
}
