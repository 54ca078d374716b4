// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Staff Credentials

// burnHash is compared against when no directory entry matches, so an unknown
// email takes as long to reject as a wrong credential.
var burnHash, _ = bcrypt.GenerateFromPassword([]byte("audiencia-burn"), bcrypt.MinCost)

// HashCredential hashes a staff credential with bcrypt at cost.
// A cost below [bcrypt.MinCost] falls back to [bcrypt.DefaultCost].
func HashCredential(credential string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return "", fmt.Errorf("sec_hash_credential_failed: %w", err)
	}
	return string(hashed), nil
}

// MatchCredential reports whether credential produced hash. Malformed hashes never match.
func MatchCredential(credential, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)) == nil
}

// BurnCompare spends one bcrypt comparison and always reports false.
func BurnCompare(credential string) bool {
	_ = bcrypt.CompareHashAndPassword(burnHash, []byte(credential))
	return false
}
