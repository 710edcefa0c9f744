package regionmap

import (
	"sync"

	"github.com/agentstation/regionmap/internal/packaging"
	"github.com/agentstation/regionmap/pkg/hierarchy"
)

// Hook function types for client events
type (
	// SynthesizedHook is called after a hierarchy has been synthesized
	SynthesizedHook func(result *hierarchy.Result)

	// PackagedHook is called after output files have been written
	PackagedHook func(manifest *packaging.Manifest)
)

// hooks manages event callbacks
type hooks struct {
	mu            sync.RWMutex
	onSynthesized []SynthesizedHook
	onPackaged    []PackagedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSynthesized registers a callback for finished syntheses
func (h *hooks) OnSynthesized(fn SynthesizedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSynthesized = append(h.onSynthesized, fn)
}

// OnPackaged registers a callback for written output
func (h *hooks) OnPackaged(fn PackagedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPackaged = append(h.onPackaged, fn)
}

func (h *hooks) triggerSynthesized(result *hierarchy.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onSynthesized {
		hook(result)
	}
}

func (h *hooks) triggerPackaged(manifest *packaging.Manifest) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPackaged {
		hook(manifest)
	}
}
