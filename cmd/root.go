// Package cmd command line
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/graphql-context-example/library/config"
	"github.com/Laisky/graphql-context-example/library/log"
)

var rootCMD = &cobra.Command{
	Use:   "graphql-context-example",
	Short: "graphql-context-example",
	Long:  `graphql API whose per-request context is assembled by contributors`,
	Args:  gcmd.NoExtraArgs,
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	// stdout is reserved for command output, e.g. `query` prints json
	setupMode(ctx, cmd.ErrOrStderr())
	if err := setupLogger(ctx); err != nil {
		return errors.Wrap(err, "setup logger")
	}
	if err := setupSettings(ctx); err != nil {
		return errors.Wrap(err, "setup settings")
	}
	// the config file may carry its own log-level
	if err := setupLogger(ctx); err != nil {
		return errors.Wrap(err, "setup logger")
	}

	return nil
}

func setupMode(ctx context.Context, w io.Writer) {
	if gconfig.Shared.GetBool("debug") {
		fmt.Fprintln(w, "run in debug mode")
		gconfig.Shared.Set("log-level", "debug")
	} else { // prod mode
		fmt.Fprintln(w, "run in prod mode")
	}
}

func setupSettings(ctx context.Context) error {
	// load configuration
	if err := config.LoadFromFile(gconfig.Shared.GetString("config")); err != nil {
		return errors.Wrap(err, "load config")
	}

	return errors.Wrap(validateStartupConfig(), "validate config")
}

func setupLogger(ctx context.Context) error {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		return errors.Wrapf(err, "change log level to `%s`", lvl)
	}

	return nil
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().String("listen", "localhost:8080", "like `localhost:8080`")
	rootCMD.PersistentFlags().StringP("config", "c", "/etc/graphql-context-example/settings.yml", "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}
