package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reifyd/scriptify/pkg/errors"
	"github.com/reifyd/scriptify/pkg/scriptify"
)

// Manifest records one generation run saved to a store.
type Manifest struct {
	RunID      string    `json:"run_id"`
	ScriptName string    `json:"script_name"`
	Chain      string    `json:"chain,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Files      []string  `json:"files"`
}

// Manager saves generated script bundles through a backend.
type Manager struct {
	backend Backend
}

// NewManager creates a manager on top of a backend.
func NewManager(b Backend) *Manager {
	return &Manager{backend: b}
}

// NewManagerFromConfig creates a manager from a backend configuration.
func NewManagerFromConfig(cfg Config) (*Manager, error) {
	b, err := Create(cfg)
	if err != nil {
		return nil, err
	}
	return NewManager(b), nil
}

// Backend returns the underlying backend.
func (m *Manager) Backend() Backend {
	return m.backend
}

// SaveBundle stores a generated script, its descriptor and a run
// manifest under <slug>/. It returns the saved manifest.
func (m *Manager) SaveBundle(ctx context.Context, chainName string, desc *scriptify.Descriptor) (*Manifest, error) {
	slug := slugify(desc.Name)

	scriptPath := path.Join(slug, "script.whizzml")
	descPath := path.Join(slug, "descriptor.json")
	manifestPath := path.Join(slug, "manifest.json")

	if err := m.backend.Write(ctx, scriptPath, strings.NewReader(desc.SourceCode)); err != nil {
		return nil, errors.StoreError(m.backend.Type(), "write script", err)
	}

	descJSON, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if err := m.backend.Write(ctx, descPath, bytes.NewReader(descJSON)); err != nil {
		return nil, errors.StoreError(m.backend.Type(), "write descriptor", err)
	}

	manifest := &Manifest{
		RunID:      uuid.New().String(),
		ScriptName: desc.Name,
		Chain:      chainName,
		CreatedAt:  time.Now().UTC(),
		Files:      []string{scriptPath, descPath},
	}
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := m.backend.Write(ctx, manifestPath, bytes.NewReader(manifestJSON)); err != nil {
		return nil, errors.StoreError(m.backend.Type(), "write manifest", err)
	}

	return manifest, nil
}

// slugify makes a script name safe for use as a storage prefix.
func slugify(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
