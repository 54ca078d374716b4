// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy owns the shared picklists of the intake form: subject roles
(sujeto procesal) and court codes.

The lists only ever grow. A value typed by a visitor under "PERSONALIZAR"
becomes a permanent entry the next visitor can pick. Growth is an
append-if-absent operation performed by the store, never a client-side
read-merge-write, so two kiosks adding different values at the same time
both keep their addition.

Readers always get sorted, deduplicated lists. When nothing has been stored
yet for a list, the built-in defaults are served.
*/
package taxonomy

import (
	"slices"
)

// # Domain Entities

// Kind identifies one of the two picklists.
type Kind string

const (
	KindSubject   Kind = "subject"
	KindCourtCode Kind = "court_code"
)

// Snapshot is the read model of the taxonomy record.
type Snapshot struct {
	Subjects   []string `json:"subjects"`
	CourtCodes []string `json:"courtCodes"`

	// Version increases by one for every value actually appended.
	Version int64 `json:"version"`
}

// Delta lists the values a submission wants appended. Empty fields mean
// nothing to add for that list.
type Delta struct {
	Subject   string
	CourtCode string
}

// Addition is a single value of a [Delta].
type Addition struct {
	Kind  Kind
	Value string
}

// # Defaults

var defaultSubjects = []string{
	"SINDICADO",
	"DEFENSA TÉCNICA",
	"AGRAVIADO",
	"QUERELLANTE ADHESIVO",
	"AUXILIAR FISCAL",
	"AGENTE FISCAL",
	"SOLICITANTE",
}

var defaultCourtCodes = []string{"16001", "16002", "16003", "16004", "16005"}

// DefaultValues returns the built-in list of a kind, sorted.
func DefaultValues(kind Kind) []string {
	switch kind {
	case KindSubject:
		return Normalize(defaultSubjects)
	case KindCourtCode:
		return Normalize(defaultCourtCodes)
	default:
		return nil
	}
}

// Defaults returns the snapshot served when no record exists yet.
func Defaults() Snapshot {
	return Snapshot{
		Subjects:   DefaultValues(KindSubject),
		CourtCodes: DefaultValues(KindCourtCode),
	}
}

// # Set Operations

// Normalize returns a sorted copy of values without duplicates or empty strings.
// Ordering is by bytes so every replica sorts the same way.
func Normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// InsertSorted returns list with value added at its sorted position.
// list must already be sorted; a value already present is not duplicated.
func InsertSorted(list []string, value string) []string {
	position, found := slices.BinarySearch(list, value)
	if found || value == "" {
		return slices.Clone(list)
	}
	return slices.Insert(slices.Clone(list), position, value)
}

// HasSubject reports whether value is a known subject role.
func (snapshot Snapshot) HasSubject(value string) bool {
	return slices.Contains(snapshot.Subjects, value)
}

// HasCourtCode reports whether value is a known court code.
func (snapshot Snapshot) HasCourtCode(value string) bool {
	return slices.Contains(snapshot.CourtCodes, value)
}

// Apply returns the snapshot with every value of delta merged in. The version
// increases once per value that was actually new.
func (snapshot Snapshot) Apply(delta Delta) Snapshot {
	next := Snapshot{
		Subjects:   slices.Clone(snapshot.Subjects),
		CourtCodes: slices.Clone(snapshot.CourtCodes),
		Version:    snapshot.Version,
	}

	for _, addition := range delta.Additions() {
		switch addition.Kind {
		case KindSubject:
			if !next.HasSubject(addition.Value) {
				next.Subjects = InsertSorted(next.Subjects, addition.Value)
				next.Version++
			}
		case KindCourtCode:
			if !next.HasCourtCode(addition.Value) {
				next.CourtCodes = InsertSorted(next.CourtCodes, addition.Value)
				next.Version++
			}
		}
	}

	return next
}

// IsEmpty reports whether the delta carries nothing to append.
func (delta Delta) IsEmpty() bool {
	return delta.Subject == "" && delta.CourtCode == ""
}

// Additions flattens the delta into per-kind values.
func (delta Delta) Additions() []Addition {
	var additions []Addition
	if delta.Subject != "" {
		additions = append(additions, Addition{Kind: KindSubject, Value: delta.Subject})
	}
	if delta.CourtCode != "" {
		additions = append(additions, Addition{Kind: KindCourtCode, Value: delta.CourtCode})
	}
	return additions
}
