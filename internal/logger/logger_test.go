package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"page": 2},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelInfo, &buf)

			l.log(tt.level, tt.message, tt.fields, tt.err)

			if logged := buf.Len() > 0; logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
			if tt.want && !strings.Contains(buf.String(), tt.message) {
				t.Errorf("output %q does not contain message %q", buf.String(), tt.message)
			}
		})
	}
}

func TestLogEntry_JSON(t *testing.T) {
	entry := LogEntry{
		Timestamp: "2022-10-15T00:00:00Z",
		Level:     "INFO",
		Message:   "crawling page",
		Fields: Fields{
			"page": "2",
			"date": "2022-10-15",
		},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded LogEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Message != entry.Message {
		t.Errorf("Message = %v, want %v", decoded.Message, entry.Message)
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("pages.fetched")
	m.IncrCounter("pages.fetched")
	m.IncrCounter("pages.fetched")

	snapshot := m.Snapshot()
	counters := snapshot["counters"].(map[string]int64)

	if counters["pages.fetched"] != 3 {
		t.Errorf("Counter = %v, want 3", counters["pages.fetched"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("cycle", 100*time.Millisecond)
	m.RecordTiming("cycle", 200*time.Millisecond)
	m.RecordTiming("cycle", 150*time.Millisecond)

	snapshot := m.Snapshot()
	timings := snapshot["timings"].(map[string]map[string]interface{})

	cycle := timings["cycle"]
	if cycle["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", cycle["count"])
	}
	if cycle["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", cycle["min"])
	}
	if cycle["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", cycle["max"])
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// The package-level convenience wrappers must not panic
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	IncrCounter("test")
	RecordTiming("test", time.Second)

	if MetricsSnapshot() == nil {
		t.Error("MetricsSnapshot() returned nil")
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.minLevel, &buf)

			l.log(tt.logLevel, "test", nil, nil)

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}
