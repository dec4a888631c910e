package theme

import (
	"sort"
	"sync"
)

// DefaultName is active until Set picks another palette.
const DefaultName = "tokyonight"

var registry = &manager{
	palettes: make(map[string]Palette),
}

type manager struct {
	mu          sync.RWMutex
	palettes    map[string]Palette
	currentName string
}

// Register adds a palette under name, replacing any previous one.
func Register(name string, p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.palettes[name] = p
	if registry.currentName == "" || name == DefaultName {
		registry.currentName = name
	}
}

// Set switches to a registered palette by name.
// Returns false and keeps the current palette when name is unknown.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.palettes[name]; !ok {
		return false
	}
	registry.currentName = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.palettes[registry.currentName]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.currentName
}

// Available returns all registered palette names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.palettes))
	for name := range registry.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
