package canvas

import (
	"context"
	"sync"
)

// BroadcastHook fans out canvas events to in-process subscribers. Slow
// subscribers drop events rather than blocking the engine.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan CanvasEvent
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan CanvasEvent),
	}
}

// CanvasUpdated satisfies the EventHook interface and broadcasts events.
func (h *BroadcastHook) CanvasUpdated(ctx context.Context, event CanvasEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of canvas events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan CanvasEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan CanvasEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var _ EventHook = (*BroadcastHook)(nil)
