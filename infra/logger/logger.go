package logger

import corelogger "github.com/MakerMama/afterschool-finder/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component. The output format follows
// APP_ENV and the sink follows the last call to Configure.
func New(component string) Logger {
	return NewZerologLogger(component)
}
