package langmap

import (
	"sync"

	"github.com/agentstation/langmap/pkg/graph"
)

// Hook function types for ledger events
type (
	// LoadedHook is called after a load pass completes
	LoadedHook func(stats *LoadStats)

	// InferredHook is called after reverse inference runs on its own
	InferredHook func(result graph.Inference)
)

// hooks manages event callbacks for ledger changes
type hooks struct {
	mu         sync.RWMutex
	onLoaded   []LoadedHook
	onInferred []InferredHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnLoaded registers a callback for completed load passes
func (h *hooks) OnLoaded(fn LoadedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLoaded = append(h.onLoaded, fn)
}

// OnInferred registers a callback for inference runs
func (h *hooks) OnInferred(fn InferredHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onInferred = append(h.onInferred, fn)
}

func (h *hooks) triggerLoaded(stats *LoadStats) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onLoaded {
		fn(stats)
	}
}

func (h *hooks) triggerInferred(result graph.Inference) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onInferred {
		fn(result)
	}
}
