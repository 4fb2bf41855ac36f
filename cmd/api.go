package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/graphql-context-example/internal/contributor"
	"github.com/Laisky/graphql-context-example/internal/web"
	"github.com/Laisky/graphql-context-example/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `graphql API service`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := web.RunServer(
			gconfig.Shared.GetString("listen"),
			web.NewResolver(),
			contributor.Default(),
			web.WithLogger(log.Logger),
			web.WithCORSHosts(gconfig.Shared.GetStringSlice("settings.web.cors.allowed_hosts")...),
			web.WithMetric(boolSetting("settings.web.metric.enabled", true)),
			web.WithPlayground(boolSetting("settings.web.playground.enabled", false)),
		)
		log.Logger.Panic("api server exit", zap.Error(err))
	},
}

// boolSetting returns the boolean at key, or def when key is not configured
func boolSetting(key string, def bool) bool {
	if gconfig.Shared.Get(key) == nil {
		return def
	}

	return gconfig.Shared.GetBool(key)
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
