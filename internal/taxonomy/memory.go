// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process [Repository]. A mutex serializes appends,
// which gives the same set-union guarantee as the Postgres store.
type MemoryRepository struct {
	mu       sync.Mutex
	snapshot *Snapshot
}

// NewMemoryRepository creates an empty repository that serves the defaults.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Get implements [Repository].
func (repository *MemoryRepository) Get(_ context.Context) (Snapshot, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.snapshot == nil {
		return Defaults(), nil
	}
	return repository.snapshot.Apply(Delta{}), nil
}

// Append implements [Repository].
func (repository *MemoryRepository) Append(_ context.Context, delta Delta) ([]Addition, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	current := Defaults()
	if repository.snapshot != nil {
		current = *repository.snapshot
	}

	var added []Addition
	for _, addition := range delta.Additions() {
		before := current.Version
		current = current.Apply(Delta{}.with(addition))
		if current.Version != before {
			added = append(added, addition)
		}
	}

	repository.snapshot = &current
	return added, nil
}

func (delta Delta) with(addition Addition) Delta {
	switch addition.Kind {
	case KindSubject:
		delta.Subject = addition.Value
	case KindCourtCode:
		delta.CourtCode = addition.Value
	}
	return delta
}
