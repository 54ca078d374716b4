// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// # Taxonomy Data Access

// Repository defines the data access contract for the shared picklists.
type Repository interface {

	/*
		Get returns the current lists, falling back to defaults per kind when
		nothing has been stored.

		Parameters:
		  - context: context.Context

		Returns:
		  - Snapshot: Sorted, deduplicated lists
		  - error: Store failures
	*/
	Get(context context.Context) (Snapshot, error)

	/*
		Append adds every value of delta that is still absent at write time.
		It must be atomic per value: concurrent appends never lose each other.

		Parameters:
		  - context: context.Context
		  - delta: Delta

		Returns:
		  - []Addition: Values that were actually new
		  - error: Store failures
	*/
	Append(context context.Context, delta Delta) ([]Addition, error)
}
