package controller

import (
	"hwtree/pkg/logging"
)

const controllerSubsystem = "Controller"

// LogInfo logs an informational message through the logging package, which
// feeds the activity log while the dashboard runs.
func LogInfo(format string, a ...interface{}) {
	logging.Info(controllerSubsystem, format, a...)
}

// LogDebug logs a debug-level message.
func LogDebug(format string, a ...interface{}) {
	logging.Debug(controllerSubsystem, format, a...)
}

// LogWarn logs a warning message.
func LogWarn(format string, a ...interface{}) {
	logging.Warn(controllerSubsystem, format, a...)
}

// LogError logs an error message together with its cause.
func LogError(err error, format string, a ...interface{}) {
	logging.Error(controllerSubsystem, err, format, a...)
}
