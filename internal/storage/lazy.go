package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrNotReady = errors.New("object store not initialized")

// Lazy lets the server start serving before the blob store client is up;
// the real store is injected once it connects.
type Lazy struct {
	mu    sync.RWMutex
	inner ObjectStore
}

func (l *Lazy) Set(s ObjectStore) {
	l.mu.Lock()
	l.inner = s
	l.mu.Unlock()
}

func (l *Lazy) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	l.mu.RLock()
	inner := l.inner
	l.mu.RUnlock()
	if inner == nil {
		return "", ErrNotReady
	}
	return inner.Upload(ctx, objectPath, data, contentType)
}
