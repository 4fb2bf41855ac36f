package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/spf13/cobra"

	"github.com/Laisky/graphql-context-example/internal/contributor"
	"github.com/Laisky/graphql-context-example/internal/web"
)

const queryLogLevel = "error"

var queryCMD = &cobra.Command{
	Use:   "query",
	Short: "execute a graphql document locally",
	Long: `Execute a GraphQL document in process and print the JSON response.

Without --header the document runs as a non-HTTP invocation,
so contributors see no request at all.

Example:
  graphql-context-example query -q '{ contributorEnabled }' -H context-contributor-header=enabled`,
	Args: gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		// the shared logger writes to stdout, keep it quiet so stdout stays valid json
		if !cmd.Flags().Changed("log-level") {
			if err := cmd.Flags().Set("log-level", queryLogLevel); err != nil {
				return errors.Wrap(err, "set log-level")
			}
		}
		if err := initialize(ctx, cmd); err != nil {
			return errors.Wrap(err, "init")
		}

		query, err := cmd.Flags().GetString("query")
		if err != nil {
			return errors.Wrap(err, "get query")
		}
		rawHeaders, err := cmd.Flags().GetStringArray("header")
		if err != nil {
			return errors.Wrap(err, "get header")
		}

		header, err := parseHeaderFlags(rawHeaders)
		if err != nil {
			return errors.Wrap(err, "parse header")
		}

		exec := web.NewLocalExecutor(web.NewResolver(), contributor.Default())
		resp := exec.Execute(ctx, query, nil, header)

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal response")
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return errors.WithStack(err)
	},
}

// parseHeaderFlags converts `name=value` pairs into headers.
// It returns nil when no pair is given, meaning there is no request.
func parseHeaderFlags(pairs []string) (http.Header, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	header := http.Header{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("header `%s` must look like name=value", pair)
		}

		header.Add(name, value)
	}

	return header, nil
}

func init() {
	rootCMD.AddCommand(queryCMD)
	queryCMD.Flags().StringP("query", "q", "{ hello contributorEnabled }", "graphql document")
	queryCMD.Flags().StringArrayP("header", "H", nil, "request header `name=value`, repeatable")
}
