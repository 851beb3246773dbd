package utils

import (
	"strings"
	"testing"
	"time"
)

func TestTruncateLine(t *testing.T) {
	got := TruncateLine("a rather long title\nwith a newline", 10)
	if strings.Contains(got, "\n") {
		t.Fatalf("expected newlines to be flattened, got %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected an ellipsis, got %q", got)
	}

	if TruncateLine("short", 10) != "short" {
		t.Fatalf("short strings must be untouched")
	}
	if TruncateLine("any", 0) != "any" {
		t.Fatalf("zero width disables truncation")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 10 * time.Second, want: "just now"},
		{d: 5 * time.Minute, want: "5m ago"},
		{d: 3 * time.Hour, want: "3h ago"},
		{d: 50 * time.Hour, want: "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.d); got != tt.want {
			t.Fatalf("FormatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderMarkdownPreviewKeepsText(t *testing.T) {
	out := RenderMarkdownPreview("# Heading\n\nsome body text", 40)
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "body") {
		t.Fatalf("expected rendered output to keep the text, got %q", out)
	}
}
