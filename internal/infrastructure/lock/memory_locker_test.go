package lock

import (
	"context"
	"errors"
	"testing"

	"telehealth_flow/internal/usecase/interfaces"
)

func TestMemoryLocker_TryLock(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	release, err := l.TryLock(ctx, "flow-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := l.TryLock(ctx, "flow-1"); !errors.Is(err, interfaces.ErrLockHeld) {
		t.Fatalf("expected ErrLockHeld, got %v", err)
	}

	other, err := l.TryLock(ctx, "flow-2")
	if err != nil {
		t.Fatalf("other flows must not be blocked: %v", err)
	}
	other()

	release()
	release()

	again, err := l.TryLock(ctx, "flow-1")
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	again()
}

func TestLockKey(t *testing.T) {
	if got := LockKey("abc"); got != "telehealth:flow-lock:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
