// Package logging routes log records either to a slog text handler or, while
// the dashboard owns the terminal, to a buffered channel read by the UI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// SlogLevel maps l onto the slog scale.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a level name from flags or config into a LogLevel.
// The empty name is info.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// LogEntry is the structured log entry passed to the TUI.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

// Mode selects where records go.
type Mode int

const (
	// ModeCLI writes records through slog.
	ModeCLI Mode = iota
	// ModeTUI queues records on a channel.
	ModeTUI
)

const tuiChannelBufferSize = 2048

type sink struct {
	mode    Mode
	level   LogLevel
	logger  *slog.Logger
	entries chan LogEntry
	dropped int
}

var (
	mu      sync.RWMutex
	current = sink{level: LevelInfo}
)

// Setup switches the logging mode. In ModeTUI the returned channel receives
// the records and buffer bounds it; in ModeCLI records go to output and the
// channel is nil.
func Setup(mode Mode, level LogLevel, output io.Writer, buffer int) <-chan LogEntry {
	mu.Lock()
	defer mu.Unlock()

	if output == nil {
		output = os.Stderr
	}
	current = sink{
		mode:   mode,
		level:  level,
		logger: slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.SlogLevel()})),
	}
	slog.SetDefault(current.logger)

	if mode != ModeTUI {
		return nil
	}
	if buffer <= 0 {
		buffer = tuiChannelBufferSize
	}
	current.entries = make(chan LogEntry, buffer)
	return current.entries
}

// InitForTUI initializes the logging system for TUI mode.
// It sets up a channel that the TUI will listen to for log entries.
func InitForTUI(filterLevel LogLevel) <-chan LogEntry {
	return Setup(ModeTUI, filterLevel, os.Stderr, tuiChannelBufferSize)
}

// InitForCLI initializes the logging system for CLI mode.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	Setup(ModeCLI, filterLevel, output, 0)
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...any) {
	mu.RLock()
	s := current
	mu.RUnlock()

	if level < s.level {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	if s.mode == ModeTUI && s.entries != nil {
		entry := LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		// The UI goroutine logs too, so a full buffer drops the record.
		select {
		case s.entries <- entry:
		default:
			mu.Lock()
			current.dropped++
			mu.Unlock()
		}
		return
	}

	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...any) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...any) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...any) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...any) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// Dropped reports how many TUI entries were discarded because the channel was full.
func Dropped() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.dropped
}

// CloseTUIChannel closes the TUI log channel and falls back to CLI mode on
// standard error. Should be called on application shutdown.
func CloseTUIChannel() {
	mu.Lock()
	defer mu.Unlock()
	if current.entries != nil {
		close(current.entries)
		current.entries = nil
	}
	current.mode = ModeCLI
}
