package interfaces

import (
	"context"
	"errors"
)

var ErrLockHeld = errors.New("flow lock held by another operation")

// IFlowLocker serializes operations on a single flow.
//
// TryLock never waits: it returns ErrLockHeld when the flow is already locked. The returned
// release function is safe to call more than once.
type IFlowLocker interface {
	TryLock(ctx context.Context, flowID string) (release func(), err error)
}
