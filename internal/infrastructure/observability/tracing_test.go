package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitTracing(t *testing.T) {
	ctx := context.Background()

	shutdown, err := InitTracing(ctx, "none", "test", zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if _, err := InitTracing(ctx, "zipkin", "test", zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown exporter error")
	}
}
