// Package preset holds the triggers that are active for the current
// configuration generation.
package preset

import (
	"sort"
	"sync"

	"github.com/jorge-barreto/opencode-inline/internal/config"
)

// Registry maps preset triggers to presets. Each Install replaces the
// whole previous set, so a trigger removed from configuration disappears
// on the next load.
type Registry struct {
	mu         sync.RWMutex
	generation uint64
	byTrigger  map[string]config.Preset
}

// NewRegistry returns an empty registry at generation zero.
func NewRegistry() *Registry {
	return &Registry{byTrigger: map[string]config.Preset{}}
}

// Install drops every trigger of the previous generation and registers
// presets as the next one. Presets with an empty trigger are inert. On a
// duplicate trigger the first declaration wins. Returns the new generation.
func (r *Registry) Install(presets []config.Preset) uint64 {
	next := make(map[string]config.Preset, len(presets))
	for _, p := range presets {
		if p.Trigger == "" {
			continue
		}
		if _, dup := next[p.Trigger]; dup {
			continue
		}
		p.ExtraArgs = append([]string(nil), p.ExtraArgs...)
		next[p.Trigger] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTrigger = next
	r.generation++
	return r.generation
}

// Clear removes all triggers and starts a new generation.
func (r *Registry) Clear() uint64 {
	return r.Install(nil)
}

// Lookup returns the preset registered for trigger in the current
// generation.
func (r *Registry) Lookup(trigger string) (config.Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byTrigger[trigger]
	return p, ok
}

// Presets returns the active presets sorted by trigger.
func (r *Registry) Presets() []config.Preset {
	r.mu.RLock()
	out := make([]config.Preset, 0, len(r.byTrigger))
	for _, p := range r.byTrigger {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Trigger < out[j].Trigger })
	return out
}

// Generation reports how many times the registry has been installed.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}
