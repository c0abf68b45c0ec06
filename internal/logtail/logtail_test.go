package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "labmon.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial", 5, all[5:]},
		{"exact", 10, all},
		{"more than exists", 20, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Read(%d) = %v, want %v", tt.maxLines, got, tt.want)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestFormat_ZerologLine(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.Local).Format(time.RFC3339)
	line := `{"level":"debug","device":"station0","endpoint":"state","time":"` + ts + `","message":"poll skipped"}`

	got := Format(line)
	want := "12:30:45 DBG poll skipped device=station0 endpoint=state"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormat_PlainLinePassesThrough(t *testing.T) {
	if got := Format("not json"); got != "not json" {
		t.Fatalf("Format = %q, want passthrough", got)
	}
}

func TestParse_UnknownLevelUppercased(t *testing.T) {
	if got := Format(`{"level":"notice","message":"hi"}`); got != "NOTICE hi" {
		t.Fatalf("Format = %q, want %q", got, "NOTICE hi")
	}
}
