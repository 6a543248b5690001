package sweeper

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLockHeld another sweep holds the event's lock.
var ErrLockHeld = errors.New("sweep already in progress")

// Locker guards one event's sweep so two passes never fill the same event at once.
// Lock returns ErrLockHeld instead of waiting.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// KeyedLocker is the in-process Locker used when redis is not configured.
type KeyedLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{held: make(map[string]struct{})}
}

func (l *KeyedLocker) Lock(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLockHeld
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
