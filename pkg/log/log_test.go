package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel_KnownNames_ReturnsLevel(t *testing.T) {
	// Arrange
	cases := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"Warn":    Warn,
		"warning": Warn,
		"error":   Error,
		"FATAL":   Fatal,
	}

	for input, want := range cases {
		// Act
		got, err := ParseLevel(input)

		// Assert
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", input, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseLevel_UnknownName_ReturnsInfoAndError(t *testing.T) {
	// Act
	got, err := ParseLevel("verbose")

	// Assert
	if err != ErrInvalidLevel {
		t.Errorf("error = %v, want ErrInvalidLevel", err)
	}
	if got != Info {
		t.Errorf("level = %v, want Info fallback", got)
	}
}

func TestLevel_Enables_FiltersLowerSeverity(t *testing.T) {
	// Assert
	if Warn.Enables(Info) {
		t.Error("Warn should not enable Info")
	}
	if !Warn.Enables(Error) {
		t.Error("Warn should enable Error")
	}
	if !Warn.Enables(Warn) {
		t.Error("a level should enable itself")
	}
}

// drainLogger closes the logger and returns the decoded JSON lines.
func drainLogger(t *testing.T, l *Logger, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	l.Close()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, m)
	}
	return entries
}

func TestLogger_Info_WritesStructuredJSON(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l := New(Debug, NewStdoutWithWriter(&buf))

	// Act
	l.Info("download started", "shortcode", "ABC123", "files", 3)
	entries := drainLogger(t, l, &buf)

	// Assert
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry["level"] != "INFO" {
		t.Errorf("level: got %v", entry["level"])
	}
	if entry["msg"] != "download started" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["shortcode"] != "ABC123" {
		t.Errorf("shortcode field: got %v", entry["shortcode"])
	}
}

func TestLogger_BelowMinLevel_IsDropped(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l := New(Warn, NewStdoutWithWriter(&buf))

	// Act
	l.Debug("noise")
	l.Info("more noise")
	l.Warn("kept")
	entries := drainLogger(t, l, &buf)

	// Assert
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	if entries[0]["msg"] != "kept" {
		t.Errorf("msg: got %v", entries[0]["msg"])
	}
}

func TestLogger_With_ChildCarriesBaseFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	root := New(Debug, NewStdoutWithWriter(&buf))
	child := root.With("service", "downloader")

	// Act
	child.Info("ready")
	entries := drainLogger(t, root, &buf)

	// Assert
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	if entries[0]["service"] != "downloader" {
		t.Errorf("service field: got %v", entries[0]["service"])
	}
}

func TestLogger_InfoCtx_IncludesRequestID(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l := New(Debug, NewStdoutWithWriter(&buf))
	ctx := WithRequestID(context.Background(), "req-42")

	// Act
	l.InfoCtx(ctx, "handled")
	entries := drainLogger(t, l, &buf)

	// Assert
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	if entries[0]["request_id"] != "req-42" {
		t.Errorf("request_id: got %v", entries[0]["request_id"])
	}
}

func TestRequestIDFromContext_MissingOrNil_ReturnsEmpty(t *testing.T) {
	// Assert
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("got %q, want empty", id)
	}
	if id := RequestIDFromContext(nil); id != "" {
		t.Errorf("nil context: got %q, want empty", id)
	}
}

func TestEntry_MarshalJSON_OmitsEmptyRequestID(t *testing.T) {
	// Arrange
	entry := Entry{Timestamp: time.Now(), Level: Info, Message: "hi"}

	// Act
	data, err := json.Marshal(entry)

	// Assert
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if strings.Contains(string(data), "request_id") {
		t.Errorf("empty request_id should be omitted: %s", data)
	}
}
