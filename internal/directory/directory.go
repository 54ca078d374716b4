// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package directory keeps the staff accounts and their approval lifecycle.

	request access ──▶ pending ──approve──▶ active
	                      │                   │
	                      └──────reject───────┴──▶ removed (row deleted)

Anyone may request access; only an administrator lists, approves or rejects
entries. Email addresses are not unique: a person who asks twice has two
entries, and login takes the first one whose credential matches.
*/
package directory

import (
	"time"

	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// # Domain Entities

// Status is the approval state of an entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// Entry is one staff account.
type Entry struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`

	Status Status `json:"status"`

	// CredentialHash is the bcrypt hash of the staff credential.
	CredentialHash string `json:"-"`

	// ExternalID links the entry to an outside identity provider, when one is used.
	ExternalID *string `json:"externalId,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// IsPending reports whether the entry still awaits approval.
func (entry *Entry) IsPending() bool {
	return entry.Status == StatusPending
}

// AccessRequest is the self-service sign-up payload.
type AccessRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ExternalID string `json:"externalId,omitempty"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldStatus   = "status"
	FieldID       = "id"
)

// MinPasswordLength is the shortest credential accepted on sign-up.
const MinPasswordLength = 6
