package recording

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// withEmptyRegistry runs the test against an empty registry and restores
// the previous contents afterwards.
func withEmptyRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := registry
	registry = make(map[string]registration)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}

func mockFactory(name string) BackendFactory {
	return func() WriterBackend { return newMockBackend(name) }
}

func TestRegisterAndNewBackend(t *testing.T) {
	withEmptyRegistry(t)
	Register("mock", mockFactory("mock"))

	b, err := NewBackend("mock")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if m, ok := b.(*mockBackend); !ok || m.name != "mock" {
		t.Errorf("NewBackend() = %#v, want the mock backend", b)
	}

	// Every call builds a fresh backend.
	b2, _ := NewBackend("mock")
	if b == b2 {
		t.Error("NewBackend() returned the same instance twice")
	}

	if _, err := NewBackend("missing"); err == nil {
		t.Error("NewBackend(missing) error = nil")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func()
	}{
		{"nil factory", func() { Register("nil", nil) }},
		{"duplicate", func() {
			Register("dup", mockFactory("dup"))
			Register("dup", mockFactory("dup"))
		}},
		{"must unknown", func() { _ = MustBackend("missing") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEmptyRegistry(t)
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			tt.run()
		})
	}
}

func TestUnregister(t *testing.T) {
	withEmptyRegistry(t)
	Register("temp", mockFactory("temp"))
	if !IsRegistered("temp") {
		t.Fatal("IsRegistered(temp) = false after Register")
	}
	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("IsRegistered(temp) = true after Unregister")
	}
	Unregister("never-registered")
}

func TestBackendsSorted(t *testing.T) {
	withEmptyRegistry(t)
	for _, name := range []string{"svg", "ascii", "hpgl"} {
		Register(name, mockFactory(name))
	}
	if diff := cmp.Diff([]string{"ascii", "hpgl", "svg"}, Backends()); diff != "" {
		t.Errorf("Backends() mismatch (-want +got):\n%s", diff)
	}
	if got := Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestForExtension(t *testing.T) {
	withEmptyRegistry(t)
	Register("mock", mockFactory("mock"))
	Register("amock", mockFactory("amock"))

	tests := []struct {
		ext    string
		want   string
		wantOK bool
	}{
		{".mock", "amock", true},
		{"mock", "amock", true},
		{".MOCK", "amock", true},
		{".svg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ForExtension(tt.ext)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ForExtension(%q) = %q, %v; want %q, %v", tt.ext, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestConcurrentRegistration(t *testing.T) {
	withEmptyRegistry(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register(fmt.Sprintf("backend-%d", i), mockFactory("concurrent"))
		}()
		go func() {
			defer wg.Done()
			_ = Backends()
			_, _ = ForExtension(".mock")
		}()
	}
	wg.Wait()

	if got := Count(); got != 50 {
		t.Errorf("Count() = %d, want 50", got)
	}
}
