// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// MemoryRepository is an in-process [Repository] for tests and local runs.
// Missing ids report a wrapped [pgx.ErrNoRows] like the Postgres store.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, entry *Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry.CreatedAt = time.Now()
	repository.entries = append(repository.entries, *entry)
	return nil
}

// FindByEmail implements [Repository].
func (repository *MemoryRepository) FindByEmail(_ context.Context, email string) ([]Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var out []Entry
	for _, entry := range repository.entries {
		if strings.EqualFold(entry.Email, email) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// List implements [Repository].
func (repository *MemoryRepository) List(_ context.Context, status Status) ([]Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	out := []Entry{}
	for _, entry := range repository.entries {
		if status == "" || entry.Status == status {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Approve implements [Repository].
func (repository *MemoryRepository) Approve(_ context.Context, id string) (*Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.indexOf(id)
	if index < 0 {
		return nil, fmt.Errorf("memory_directory_repo_approve_failed: %w", pgx.ErrNoRows)
	}

	entry := &repository.entries[index]
	entry.Status = StatusActive
	if entry.ApprovedAt == nil {
		now := time.Now()
		entry.ApprovedAt = &now
	}

	approved := *entry
	return &approved, nil
}

// Delete implements [Repository].
func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.indexOf(id)
	if index < 0 {
		return fmt.Errorf("memory_directory_repo_delete_failed: %w", pgx.ErrNoRows)
	}
	repository.entries = slices.Delete(repository.entries, index, index+1)
	return nil
}

func (repository *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(repository.entries, func(entry Entry) bool {
		return entry.ID == id
	})
}
