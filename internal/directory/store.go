// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import "context"

// # Directory Data Access

// Repository defines the data access contract for staff entries.
type Repository interface {

	// Create inserts entry and stamps CreatedAt.
	Create(context context.Context, entry *Entry) error

	/*
		FindByEmail returns every entry registered under email, compared
		case-insensitively, oldest first.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - []Entry: Possibly empty
		  - error: Store failures
	*/
	FindByEmail(context context.Context, email string) ([]Entry, error)

	// List returns entries with the given status (all when empty), oldest first.
	List(context context.Context, status Status) ([]Entry, error)

	/*
		Approve marks an entry active. An already active entry keeps its
		original approval time.

		Returns:
		  - *Entry: Updated entry
		  - error: pgx.ErrNoRows (wrapped) when the id does not exist
	*/
	Approve(context context.Context, id string) (*Entry, error)

	// Delete removes the entry. A missing id yields a wrapped pgx.ErrNoRows.
	Delete(context context.Context, id string) error
}
