package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stampworks/mediatype/pkg/config"
)

func TestNewFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, out string) {
				var entry map[string]any
				if err := json.Unmarshal([]byte(out), &entry); err != nil {
					t.Fatalf("output is not JSON: %q", out)
				}
				if entry["msg"] != "validated" {
					t.Errorf("msg = %v", entry["msg"])
				}
			},
		},
		{
			name:   "text",
			format: "text",
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "msg=validated") {
					t.Errorf("text output missing message: %q", out)
				}
				if !strings.Contains(out, "time=") {
					t.Errorf("text output missing timestamp: %q", out)
				}
			},
		},
		{
			name:   "console",
			format: "console",
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "msg=validated") {
					t.Errorf("console output missing message: %q", out)
				}
				if strings.Contains(out, "time=") {
					t.Errorf("console output should drop timestamps: %q", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(config.LoggingConfig{Level: "info", Format: tt.format}, buf)
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			logger.Info("validated", "canonical", "audio/ogg;codecs=opus")
			tt.check(t, buf.String())
		})
	}
}

func TestNewLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "text"}, buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud", Format: "text"}, &bytes.Buffer{}); err == nil {
		t.Error("New() should reject unknown level")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("New() should reject unknown format")
	}
}
