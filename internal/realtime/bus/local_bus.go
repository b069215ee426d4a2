package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

// localBus loops messages back in-process. Used when no Redis is configured,
// which is only correct for a single instance.
type localBus struct {
	mu    sync.RWMutex
	onMsg func(m realtime.SSEMessage)
}

func NewLocalBus() Bus { return &localBus{} }

func (b *localBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	fn := b.onMsg
	b.mu.RUnlock()
	if fn == nil {
		return fmt.Errorf("local SSE bus has no forwarder")
	}
	fn(msg)
	return nil
}

func (b *localBus) StartForwarder(_ context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	b.onMsg = onMsg
	b.mu.Unlock()
	return nil
}

func (b *localBus) Close() error { return nil }
