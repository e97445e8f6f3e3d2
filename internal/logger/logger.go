// Package logger holds the process-wide structured logger for the
// fintrack API, backed by Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init sets up the global logger once for the given environment.
// "production" gets the JSON encoder with a service field for log
// aggregation; every other environment gets the console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction(zap.Fields(zap.String("service", "fintrack-api")))
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development
// logger if Init was never called (tests mostly hit this path).
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; called on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
