// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"time"
)

// # Registration Data Access

// Repository defines the data access contract for registrations.
type Repository interface {

	/*
		Create inserts a registration and stamps CreatedAt with the store clock.

		Parameters:
		  - context: context.Context
		  - registration: *Registration (ID already assigned)

		Returns:
		  - error: Store failures
	*/
	Create(context context.Context, registration *Registration) error

	/*
		ListBetween returns registrations with from <= createdAt < to, newest first.

		Parameters:
		  - context: context.Context
		  - from: time.Time
		  - to: time.Time

		Returns:
		  - []Registration: Matching records
		  - error: Store failures
	*/
	ListBetween(context context.Context, from, to time.Time) ([]Registration, error)

	// ListAll returns every registration, newest first.
	ListAll(context context.Context) ([]Registration, error)
}
