// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryRepository is an in-process [Repository] for tests and local runs.
type MemoryRepository struct {
	mu            sync.Mutex
	registrations []Registration
	now           func() time.Time
}

// NewMemoryRepository creates an empty repository stamped by clock.
// A nil clock uses [time.Now].
func NewMemoryRepository(clock func() time.Time) *MemoryRepository {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryRepository{now: clock}
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, registration *Registration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	registration.CreatedAt = repository.now()
	repository.registrations = append(repository.registrations, *registration)
	return nil
}

// ListBetween implements [Repository].
func (repository *MemoryRepository) ListBetween(_ context.Context, from, to time.Time) ([]Registration, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var out []Registration
	for _, registration := range repository.newestFirst() {
		if !registration.CreatedAt.Before(from) && registration.CreatedAt.Before(to) {
			out = append(out, registration)
		}
	}
	return out, nil
}

// ListAll implements [Repository].
func (repository *MemoryRepository) ListAll(_ context.Context) ([]Registration, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	return repository.newestFirst(), nil
}

func (repository *MemoryRepository) newestFirst() []Registration {
	out := slices.Clone(repository.registrations)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Registration) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
