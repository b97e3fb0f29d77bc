// Package store loads the read-only base snapshot the simulator starts from.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"telecom-kpi/backend/internal/domain"
)

// BaseLoader returns a fresh copy of the base snapshot on every call.
// Implementations never write back to their source.
type BaseLoader interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Source() string
}

// DecodeSnapshot parses a fixture document.
func DecodeSnapshot(data []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("invalid fixture: %w", err)
	}
	return snap, nil
}

type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Source() string { return "file" }

func (l *FileLoader) Path() string { return l.path }

func (l *FileLoader) Load(ctx context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture(l.path, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture(l.path, err)
	}
	return snap, nil
}
