package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "senior backend engineer",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "react",
			limit:  10,
			expect: "react",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "full stack developer",
			limit:  4,
			expect: "full...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  remote  ",
			limit:  6,
			expect: "remote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	got := Preview("prompt_preview", "rank these backend roles against my profile", 10)
	want := zap.String("prompt_preview", "rank these...")

	if !got.Equals(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
