// Package logger provides structured JSON line logging and lightweight run
// metrics for the events checker.
//
// Log entries carry a timestamp, level, message, and optional structured
// fields. Metrics are in-process counters and timings that a run can dump at
// the end when verbose logging is on.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields holds structured log fields.
type Fields map[string]interface{}

// Logger writes JSON log lines at or above a minimum level.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	out      io.Writer
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger. Messages below the minimum level are discarded.
func New(minLevel Level, out io.Writer) *Logger {
	return &Logger{minLevel: minLevel, out: out}
}

// SetDefault replaces the package-level logger used by the convenience
// functions.
func SetDefault(l *Logger) {
	defaultLogger = l
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}
	data, merr := json.Marshal(e)
	l.mu.Lock()
	defer l.mu.Unlock()
	if merr != nil {
		fmt.Fprintf(l.out, "[%s] %s: %s (marshal error: %v)\n", e.Timestamp, e.Level, e.Message, merr)
		return
	}
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }

// Info logs an operational message.
func (l *Logger) Info(message string, fields Fields) { l.log(LevelInfo, message, fields, nil) }

// Warn logs a recoverable problem.
func (l *Logger) Warn(message string, fields Fields) { l.log(LevelWarn, message, fields, nil) }

// Error logs a failure with its error.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs a diagnostic message with the default logger.
func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }

// Info logs an operational message with the default logger.
func Info(message string, fields Fields) { defaultLogger.Info(message, fields) }

// Warn logs a recoverable problem with the default logger.
func Warn(message string, fields Fields) { defaultLogger.Warn(message, fields) }

// Error logs a failure with the default logger.
func Error(message string, fields Fields, err error) { defaultLogger.Error(message, fields, err) }

// Metrics tracks counters and timings for a run. All methods are safe for
// concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// Add increments a counter by n.
func (m *Metrics) Add(name string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += n
}

// RecordTiming records one duration measurement.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], d)
}

// Snapshot returns a copy of all counters and per-timing totals.
func (m *Metrics) Snapshot() Fields {
	m.mu.Lock()
	defer m.mu.Unlock()
	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}
	timings := make(map[string]string, len(m.timings))
	for name, ds := range m.timings {
		var total time.Duration
		for _, d := range ds {
			total += d
		}
		timings[name] = total.String()
	}
	return Fields{"counters": counters, "timings": timings}
}

// Add increments a counter on the default metrics tracker.
func Add(name string, n int64) { defaultMetrics.Add(name, n) }

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, d time.Duration) { defaultMetrics.RecordTiming(name, d) }

// MetricsSnapshot returns a snapshot of the default metrics tracker.
func MetricsSnapshot() Fields { return defaultMetrics.Snapshot() }
