// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registration stores walk-in registrations and serves them back to staff.

Intake is public: the kiosk posts the raw form, the service canonicalizes it,
grows the shared picklists when the visitor typed a custom value, and inserts
the record with a server timestamp. Registrations are never updated or
deleted here.

Staff read the registrations of a day grouped by case key, and export them
as CSV.
*/
package registration

import (
	"time"

	"github.com/taibuivan/audiencia/internal/causa"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/pkg/uuid"
)

// # Domain Entities

// Registration is one visitor checking in for a hearing.
type Registration struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CausaCode   string `json:"causaCode"`
	CausaYear   string `json:"causaYear"`
	CausaNumber string `json:"causaNumber"`
	CausaFull   string `json:"causaFull"`
	Subject     string `json:"subject"`

	// Set only for prosecutor and defense roles.
	Fiscalia *string `json:"fiscalia,omitempty"`
	Locker   *string `json:"locker,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromCanonical builds a new active registration with a fresh id. The
// timestamp is left for the store to assign.
func FromCanonical(canonical causa.Canonical) *Registration {
	return &Registration{
		ID:          uuid.New(),
		FullName:    canonical.FullName,
		Phone:       canonical.Phone,
		Email:       canonical.Email,
		CausaCode:   canonical.CausaCode,
		CausaYear:   canonical.CausaYear,
		CausaNumber: canonical.CausaNumber,
		CausaFull:   canonical.CausaFull,
		Subject:     canonical.Subject,
		Fiscalia:    canonical.Fiscalia,
		Locker:      canonical.Locker,
		Status:      constants.RegistrationStatusActive,
	}
}

// GroupKey returns the case key.
func (registration Registration) GroupKey() string { return registration.CausaFull }

// CreatedTime returns the server timestamp.
func (registration Registration) CreatedTime() time.Time { return registration.CreatedAt }

// ContactEmail returns the visitor email.
func (registration Registration) ContactEmail() string { return registration.Email }
