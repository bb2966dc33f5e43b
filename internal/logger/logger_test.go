package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Debug("hidden", nil)
	l.Info("shown", nil)
	l.Warn("also shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be discarded at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "also shown") {
		t.Errorf("expected info and warn messages, got: %s", out)
	}
}

func TestLoggerJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Info("events extracted", Fields{"count": 42})

	var entry struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q", entry.Level)
	}
	if entry.Message != "events extracted" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["count"] != float64(42) {
		t.Errorf("fields = %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("save failed", nil, errTest("disk full"))
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("error not in entry: %s", buf.String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Add("events.extracted", 5)
	m.Add("events.extracted", 3)
	m.RecordTiming("materialize", 2*time.Second)
	m.RecordTiming("materialize", time.Second)

	snap := m.Snapshot()
	counters := snap["counters"].(map[string]int64)
	if counters["events.extracted"] != 8 {
		t.Errorf("counter = %d, want 8", counters["events.extracted"])
	}
	timings := snap["timings"].(map[string]string)
	if timings["materialize"] != "3s" {
		t.Errorf("timing total = %q, want 3s", timings["materialize"])
	}
}
