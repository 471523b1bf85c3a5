package recording

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// BackendFactory creates a backend with its default configuration.
type BackendFactory func() WriterBackend

type registration struct {
	factory BackendFactory
	ext     string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
)

// Register makes a backend available by name. Backend packages call it from
// init(), the way database/sql drivers do:
//
//	func init() {
//	    recording.Register("gcode", func() recording.WriterBackend {
//	        return NewBackend()
//	    })
//	}
//
// The factory is called once at registration to record the backend's file
// extension. Register panics if factory is nil or name is already taken.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: Register factory is nil")
	}
	ext := strings.ToLower(factory().Extension())

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	registry[name] = registration{factory: factory, ext: ext}
}

// Unregister removes a backend. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// NewBackend returns a fresh backend registered under name.
func NewBackend(name string) (WriterBackend, error) {
	registryMu.RLock()
	r, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown backend %q (forgotten import?)", name)
	}
	return r.factory(), nil
}

// MustBackend is like NewBackend but panics on an unknown name.
func MustBackend(name string) WriterBackend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// ForExtension returns the name of the backend writing files with the given
// extension. The leading dot is optional and case is ignored. When several
// backends share an extension the alphabetically first one wins.
func ForExtension(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range slices.Sorted(maps.Keys(registry)) {
		if registry[name].ext == ext {
			return name, true
		}
	}
	return "", false
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
