package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		err    error
		kind   ErrorKind
	}{
		{name: "401 maps to auth", status: 401, kind: ErrorAuth},
		{name: "402 maps to quota exceeded", status: 402, kind: ErrorQuotaExceeded},
		{name: "500 maps to server error", status: 500, kind: ErrorServer},
		{name: "503 maps to server error", status: 503, kind: ErrorServer},
		{name: "transport error maps to network", err: errors.New("connection refused"), kind: ErrorNetwork},
		{name: "context deadline maps to network", err: context.DeadlineExceeded, kind: ErrorNetwork},
		{name: "403 maps to unknown", status: 403, kind: ErrorUnknown},
		{name: "429 maps to unknown", status: 429, kind: ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pErr := Classify("test", tt.status, tt.err)
			if pErr.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s", tt.kind, pErr.Kind)
			}
			if pErr.Provider != "test" {
				t.Fatalf("expected provider name to be carried, got %q", pErr.Provider)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("search: %w", Classify("p", 402, nil))
	if KindOf(wrapped) != ErrorQuotaExceeded {
		t.Fatalf("expected quota kind through the wrap chain")
	}

	if KindOf(errors.New("plain")) != ErrorUnknown {
		t.Fatalf("expected unknown kind for untyped errors")
	}
}
