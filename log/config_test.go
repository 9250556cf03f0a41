package log

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfig_WithLevel_SetsLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected Level
	}{
		{"trace", LevelTrace, LevelTrace},
		{"debug", LevelDebug, LevelDebug},
		{"info", LevelInfo, LevelInfo},
		{"warn", LevelWarn, LevelWarn},
		{"error", LevelError, LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newConfig(nil, WithLevel(tt.level))

			if result.level != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, result.level)
			}
		})
	}
}

func TestConfig_WithCaller_SetsEnableCaller(t *testing.T) {
	tests := []struct {
		name     string
		enable   bool
		expected bool
	}{
		{"enabled", true, true},
		{"disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newConfig(nil, WithCaller(tt.enable))

			if result.caller != tt.expected {
				t.Errorf(
					"expected enableCaller %v, got %v",
					tt.expected,
					result.caller,
				)
			}
		})
	}
}

func TestConfig_WithFormat_SetsFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected Format
	}{
		{"json", FormatJSON, FormatJSON},
		{"text", FormatText, FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newConfig(nil, WithFormat(tt.format))

			if result.format != tt.expected {
				t.Errorf("expected format %v, got %v", tt.expected, result.format)
			}
		})
	}
}

func TestConfig_formatTime_FormatsTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name        string
		layout      string
		contains    []string
		notContains []string
	}{
		{
			name:        "rfc3339 named layout",
			layout:      "RFC3339",
			contains:    []string{"2023-10-15T14:30:45Z"},
			notContains: []string{".123", ".456", ".789"},
		},
		{
			name:        "rfc3339 nano named layout",
			layout:      "RFC3339Nano",
			contains:    []string{"2023-10-15T14:30:45.123456789Z"},
			notContains: nil,
		},
		{
			name:   "custom layout with whitespace and leading percent",
			layout: "   2006-01-02 15:04:05.000Z07:00",
			contains: []string{
				"   2023-10-15 14:30:45.123Z",
			},
			notContains: nil,
		},
		{
			name:        "named layout ignores case and punctuation",
			layout:      "date-time",
			contains:    []string{"2023-10-15 14:30:45"},
			notContains: []string{"T14"},
		},
		{
			name:        "millisecond shorthand",
			layout:      "ms",
			contains:    []string{"Oct 15 14:30:45.123"},
			notContains: []string{".1234"},
		},
		{
			name:        "unknown named layout is used verbatim",
			layout:      "UNKNOWN_FORMAT",
			contains:    []string{"UNKNOWN_FORMAT"},
			notContains: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConfig(nil, WithTimeLayout(tt.layout))
			result := c.formatTime(now)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected %q to contain %q", result, s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(result, s) {
					t.Errorf("expected %q not to contain %q", result, s)
				}
			}
		})
	}
}

func TestConfig_formatTime_DefaultsToRFC3339(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)
	c := newConfig(nil, WithTimeLayout("RFC3339"))
	result := c.formatTime(now)

	expected := now.Format(time.RFC3339)
	if result != expected {
		t.Errorf("expected default layout %q, got %q", expected, result)
	}
}

func TestConfig_formatTime_EmptyFormat_DisablesTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"none", "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConfig(nil, WithTimeLayout(tt.value))
			result := c.formatTime(now)

			if result != "" {
				t.Errorf(
					"expected empty timestamp when layout is %q, got %q",
					tt.value,
					result,
				)
			}
		})
	}
}

func TestConfig_NilOutput_Discards(t *testing.T) {
	c := newConfig(nil, WithLevel(LevelTrace))
	if c.output != io.Discard {
		t.Errorf("expected io.Discard for nil output, got %T", c.output)
	}

	c = c.with(WithOutput(nil))
	if c.output != io.Discard {
		t.Errorf("WithOutput(nil) did not discard, got %T", c.output)
	}
}

func TestConfig_With_CopiesReceiver(t *testing.T) {
	base := newConfig(nil)
	changed := base.with(WithLevel(LevelError), WithPretty(false))

	if base.level != DefaultLevel || !base.pretty {
		t.Errorf("with modified its receiver: level=%v pretty=%v", base.level, base.pretty)
	}

	if changed.level != LevelError || changed.pretty {
		t.Errorf("with did not apply options: level=%v pretty=%v", changed.level, changed.pretty)
	}
}

func BenchmarkConfig_formatTime_SecondResolution(b *testing.B) {
	c := newConfig(nil, WithTimeLayout("RFC3339"))
	testTime := time.Now()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.formatTime(testTime)
	}
}

func BenchmarkConfig_formatTime_NanosecondResolution(b *testing.B) {
	c := newConfig(nil, WithTimeLayout("RFC3339Nano"))
	testTime := time.Now()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.formatTime(testTime)
	}
}

func TestLevel_ParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		name string
	}{
		{"trace", LevelTrace, "trace"},
		{"TRACE", LevelTrace, "trace"},
		{"debug", LevelDebug, "debug"},
		{"Info", LevelInfo, "info"},
		{"WARN", LevelWarn, "warn"},
		{"error", LevelError, "error"},
		{"info+2", Level(2), "info+2"},
		{" debug ", LevelDebug, "debug"},
		{"loud", DefaultLevel, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLevel(tt.in)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}

			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}

	var names []string
	for name := range Levels() {
		names = append(names, name)
	}

	if strings.Join(names, ",") != "trace,debug,info,warn,error" {
		t.Errorf("Levels() = %v", names)
	}
}

func TestFormat_ParseAndString(t *testing.T) {
	if got := ParseFormat(" JSON "); got != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v", got)
	}

	if got := ParseFormat("yaml"); got != DefaultFormat {
		t.Errorf("ParseFormat(yaml) = %v, want default", got)
	}

	if got := Format(7).String(); got != "Format(7)" {
		t.Errorf("String() = %q", got)
	}

	var names []string
	for name := range Formats() {
		names = append(names, name)
	}

	if strings.Join(names, ",") != "json,text" {
		t.Errorf("Formats() = %v", names)
	}
}
