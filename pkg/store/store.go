// Package store provides pluggable storage for generated script
// artifacts. Backends register themselves at init time and are selected
// by name through Create.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrNotFound is returned when a requested artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Backend is the storage interface implemented by every store backend.
type Backend interface {
	// Type returns the backend name used at registration.
	Type() string

	// Read opens the artifact at path.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write stores the artifact at path, replacing any existing one.
	Write(ctx context.Context, path string, data io.Reader) error

	// Delete removes the artifact at path. Deleting a missing artifact
	// is not an error.
	Delete(ctx context.Context, path string) error

	// List returns the paths of all artifacts under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether an artifact exists at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// Factory creates a backend from its configuration options.
type Factory func(config map[string]string) (Backend, error)

// Config selects and configures a backend.
type Config struct {
	// Type is the registered backend name (e.g. "local", "s3").
	Type string

	// Options holds backend-specific settings.
	Options map[string]string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend factory available under the given name.
// Backends call this from init().
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Create builds a backend from its configuration.
func Create(cfg Config) (Backend, error) {
	registryMu.RLock()
	factory, ok := registry[cfg.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q; registered: %v", cfg.Type, Registered())
	}
	return factory(cfg.Options)
}

// Registered returns the names of all registered backends.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
