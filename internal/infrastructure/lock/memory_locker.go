package lock

import (
	"context"
	"sync"

	"telehealth_flow/internal/usecase/interfaces"
)

// MemoryLocker serializes flow operations inside a single process.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var _ interfaces.IFlowLocker = (*MemoryLocker)(nil)

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

func (l *MemoryLocker) TryLock(_ context.Context, flowID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[flowID]; ok {
		return nil, interfaces.ErrLockHeld
	}
	l.held[flowID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, flowID)
			l.mu.Unlock()
		})
	}, nil
}
