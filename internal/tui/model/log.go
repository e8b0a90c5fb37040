package model

import (
	"fmt"

	"hwtree/pkg/logging"
)

// AddRawLineToActivityLog appends a pre-formatted line, keeping at most
// MaxActivityLogLines, and marks the log dirty.
func AddRawLineToActivityLog(m *Model, entry string) {
	m.ActivityLog = append(m.ActivityLog, entry)
	if len(m.ActivityLog) > MaxActivityLogLines {
		m.ActivityLog = m.ActivityLog[len(m.ActivityLog)-MaxActivityLogLines:]
	}
	m.ActivityLogDirty = true
}

// FormatLogEntry renders an entry the way the log overlay lists it.
func FormatLogEntry(e logging.LogEntry) string {
	line := fmt.Sprintf("%s [%s] [%s] %s", e.Timestamp.Format("15:04:05.000"), e.Level, e.Subsystem, e.Message)
	if e.Err != nil {
		line += ": " + e.Err.Error()
	}
	return line
}
