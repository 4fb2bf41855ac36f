// Package log is the shared logger of the service.
package log

import (
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

// Logger shared logger, level is switched at startup by --log-level
var Logger logSDK.Logger

func init() {
	var err error
	if Logger, err = logSDK.NewConsoleWithName("graphql-ctx", logSDK.LevelInfo); err != nil {
		logSDK.Shared.Panic("new logger", zap.Error(err))
	}
}
