// Package logger provides diagnostic logging for the Typesense MCP server.
// Stdout carries the MCP protocol, so log lines go to a file (by default
// typesense-mcp.log in the OS temp directory, truncated on every start)
// or to stderr.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variables that provide logging defaults.
const (
	EnvFile  = "TYPESENSE_MCP_LOG_FILE"
	EnvLevel = "TYPESENSE_MCP_LOG_LEVEL"
)

// StderrFile selects stderr instead of a log file.
const StderrFile = "-"

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

var (
	mu  sync.RWMutex
	std = newLogrus(os.Stderr)
)

func newLogrus(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Options configures the log sink.
type Options struct {
	// File is the log file path. Empty selects DefaultFile(); StderrFile selects stderr.
	File string

	// Level is a logrus level name (debug, info, warn, error).
	Level string
}

// DefaultFile returns the default log file path.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), "typesense-mcp.log")
}

// OptionsFromEnv returns options populated from the environment.
func OptionsFromEnv() Options {
	return Options{
		File:  os.Getenv(EnvFile),
		Level: os.Getenv(EnvLevel),
	}
}

// Configure opens the sink described by opts and routes all log output to it.
// The file is truncated. The returned closer releases the file; it is a
// no-op for stderr.
func Configure(opts Options) (io.Closer, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != StderrFile {
		path := opts.File
		if path == "" {
			path = DefaultFile()
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}

	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
	std.SetLevel(level)
	return closer, nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// SetLevel sets the minimum level that is written.
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	std.SetLevel(l)
	return nil
}

// Discard silences all logging.
func Discard() {
	SetOutput(io.Discard)
}

// WithFields returns an entry that appends key=value pairs to its message.
func WithFields(fields map[string]any) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return std.WithFields(logrus.Fields(fields))
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Debugf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Errorf(format, args...)
}

// lineFormatter writes "[LEVEL] <RFC3339> - message key=value" lines.
type lineFormatter struct{}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s - %s", levelLabel(e.Level), e.Time.Format(time.RFC3339), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelLabel(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
