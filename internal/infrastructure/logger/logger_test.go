package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerFormatsOutput(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		assertions func(t *testing.T, output string)
	}{
		{
			name:   "console format includes message",
			format: "console",
			assertions: func(t *testing.T, output string) {
				if !strings.Contains(output, "hello") || strings.HasPrefix(output, "{") {
					t.Fatalf("expected console output, got %q", output)
				}
			},
		},
		{
			name:   "json format carries service field",
			format: "json",
			assertions: func(t *testing.T, output string) {
				var entry map[string]any
				if err := json.Unmarshal([]byte(output), &entry); err != nil {
					t.Fatalf("expected json output, got %q: %v", output, err)
				}
				if entry["message"] != "hello" || entry["service"] != "gosplit" {
					t.Fatalf("unexpected entry: %v", entry)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Format: tt.format, Level: "debug", Service: "gosplit", Output: &buf})
			log.Info().Msg("hello")

			if buf.Len() == 0 {
				t.Fatalf("expected log output, got empty string")
			}

			tt.assertions(t, buf.String())
		})
	}
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", buf.String())
	}

	log.Error().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected error entry, got %q", buf.String())
	}
}
