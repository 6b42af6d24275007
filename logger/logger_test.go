package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("tablekit")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.name != "tablekit" {
		t.Errorf("expected name 'tablekit', got %q", l.name)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "discard"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-tool")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestJSONOutputCarriesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "tablekit", &buf)

	l.WithComponent("lazytable").Debug("replayed", Fields(FieldOperation, "tab_header", FieldStep, 2))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "lazytable" {
		t.Errorf("expected component lazytable, got %v", entry[FieldComponent])
	}
	if entry[FieldOperation] != "tab_header" {
		t.Errorf("expected operation tab_header, got %v", entry[FieldOperation])
	}
	if entry["message"] != "replayed" {
		t.Errorf("expected message 'replayed', got %v", entry["message"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "tablekit", &buf)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info line, got %q", buf.String())
	}
}

func TestConsoleTagsName(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "tablekit", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[TAB][INF]") {
		t.Errorf("expected name and level tags, got %q", out)
	}
}

func TestWithErrorAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "t", &buf)
	l.WithError(fmt.Errorf("boom")).WithFields(map[string]interface{}{"k": "v"}).Error("failed")
	out := buf.String()
	if !strings.Contains(out, `"error":"boom"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInitResetsRegistry(t *testing.T) {
	custom := Nop()
	Register("widget", custom)
	if Get("widget") != custom {
		t.Fatal("expected registered logger")
	}
	Init(Config{Level: "info", Format: "json", Output: "discard"})
	if Get("widget") == custom {
		t.Error("expected Init to drop previously registered loggers")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	Init(Config{Level: "debug", Format: "console", Output: "discard"})
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "save", "id", 42}, map[string]interface{}{"op": "save", "id": 42}},
		{"odd number of args", []interface{}{"op", "save", "trailing"}, map[string]interface{}{"op": "save"}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Fatalf("expected %d fields, got %v", len(tc.expected), result)
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	fields := ErrorFields("collect", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "collect" || fields[FieldError] != "something broke" {
		t.Errorf("unexpected error fields %v", fields)
	}

	fields = DurationFields("render", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}

func TestMain(m *testing.M) {
	SetGlobalLogger(Nop())
	os.Exit(m.Run())
}
