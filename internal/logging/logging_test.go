package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsole_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Console(&buf, "warn")
	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestFile_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "labmon.log")

	logger, closer, err := File(path, "debug")
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	logger.Debug().Str("device", "station0").Msg("poll skipped")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	if entry["device"] != "station0" || entry["message"] != "poll skipped" {
		t.Fatalf("entry = %v, want device=station0 message=poll skipped", entry)
	}
}
