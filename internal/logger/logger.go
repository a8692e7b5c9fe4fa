// Package logger is the process-wide structured logger. It discards
// everything until Init enables a daily log file.
//
// Several memlens sessions may append to the same daily file, so every
// record carries a session id, and once SetTarget is called also the
// process or dump being inspected.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// L is the global logger instance. It discards all output until Init.
var L = discard()

const (
	logPrefix      = "memlens-"
	logSuffix      = ".log"
	dateLayout     = "2006-01-02"
	defaultKeepFor = 30 // days
)

var (
	base    *slog.Logger // L without the target attribute
	logFile *os.File
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.memlens/logs
	Level   slog.Level // Minimum log level
	Writer  io.Writer  // Overrides the log file when set

	// RetentionDays is how long daily files are kept. Zero means 30.
	RetentionDays int
}

// Init configures logging, replacing any earlier configuration. Call it
// before any log calls.
func Init(opts Options) error {
	closeFile()
	if !opts.Enabled {
		L, base = discard(), nil
		return nil
	}

	out := opts.Writer
	if out == nil {
		f, err := openDaily(opts)
		if err != nil {
			return err
		}
		logFile, out = f, f
	}

	base = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: opts.Level})).
		With("session", uuid.NewString())
	L = base
	return nil
}

// SetTarget tags every following record with the process or dump under
// inspection. It has no effect while logging is disabled.
func SetTarget(target string) {
	if base == nil {
		return
	}
	L = base.With("target", target)
}

// Close flushes and closes the log file and goes back to discarding.
func Close() error {
	err := closeFile()
	L, base = discard(), nil
	return err
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func openDaily(opts Options) (*os.File, error) {
	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		logDir = filepath.Join(home, ".memlens", "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	keep := opts.RetentionDays
	if keep <= 0 {
		keep = defaultKeepFor
	}
	now := time.Now()
	cleanOldLogs(logDir, now, keep)

	name := filepath.Join(logDir, logPrefix+now.Format(dateLayout)+logSuffix)
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// cleanOldLogs removes daily files older than keep days. Best effort.
func cleanOldLogs(logDir string, now time.Time, keep int) {
	cutoff := now.AddDate(0, 0, -keep)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
