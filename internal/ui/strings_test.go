package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"http://localhost:5000", 0, "http://localhost:5000"},
		{"short", 10, "short"},
		{"http://localhost:5000", 10, "http://..."},
		{"abcdef", 3, "abc"},
		{"  padded  ", 20, "padded"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Spot 0", 8); got != "Spot 0  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("Spot 10: false", 8); got != "Spot 10: false" {
		t.Fatalf("padRight longer input = %q", got)
	}
}
