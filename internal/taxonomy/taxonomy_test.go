// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/audiencia/internal/taxonomy"
)

/*
TestDefaults verifies the built-in lists are sorted and complete.
*/
func TestDefaults(t *testing.T) {
	defaults := taxonomy.Defaults()

	assert.Equal(t, []string{
		"AGENTE FISCAL",
		"AGRAVIADO",
		"AUXILIAR FISCAL",
		"DEFENSA TÉCNICA",
		"QUERELLANTE ADHESIVO",
		"SINDICADO",
		"SOLICITANTE",
	}, defaults.Subjects)
	assert.Equal(t, []string{"16001", "16002", "16003", "16004", "16005"}, defaults.CourtCodes)
	assert.Zero(t, defaults.Version)
}

/*
TestNormalize sorts, removes duplicates and drops blanks.
*/
func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, taxonomy.Normalize([]string{"C", "", "A", "B", "A"}))
	assert.Empty(t, taxonomy.Normalize(nil))
}

/*
TestApply_SortedInsert adds a custom subject at its sorted position exactly once.
*/
func TestApply_SortedInsert(t *testing.T) {
	base := taxonomy.Defaults()

	// 1. First submission inserts in order
	once := base.Apply(taxonomy.Delta{Subject: "PERITO"})
	assert.Equal(t, []string{
		"AGENTE FISCAL",
		"AGRAVIADO",
		"AUXILIAR FISCAL",
		"DEFENSA TÉCNICA",
		"PERITO",
		"QUERELLANTE ADHESIVO",
		"SINDICADO",
		"SOLICITANTE",
	}, once.Subjects)
	assert.Equal(t, int64(1), once.Version)

	// 2. Same value again is not duplicated and does not bump the version
	twice := once.Apply(taxonomy.Delta{Subject: "PERITO"})
	assert.Equal(t, once.Subjects, twice.Subjects)
	assert.Equal(t, int64(1), twice.Version)

	// 3. The original snapshot is untouched
	assert.Len(t, base.Subjects, 7)
}

/*
TestApply_CourtCode merges a new court code and keeps subjects intact.
*/
func TestApply_CourtCode(t *testing.T) {
	next := taxonomy.Defaults().Apply(taxonomy.Delta{CourtCode: "01077"})

	assert.Equal(t, "01077", next.CourtCodes[0])
	assert.True(t, next.HasCourtCode("01077"))
	assert.Len(t, next.Subjects, 7)
}

/*
TestDelta_Additions flattens only the populated fields.
*/
func TestDelta_Additions(t *testing.T) {
	assert.True(t, taxonomy.Delta{}.IsEmpty())
	assert.Empty(t, taxonomy.Delta{}.Additions())

	additions := taxonomy.Delta{Subject: "PERITO", CourtCode: "16099"}.Additions()
	assert.Equal(t, []taxonomy.Addition{
		{Kind: taxonomy.KindSubject, Value: "PERITO"},
		{Kind: taxonomy.KindCourtCode, Value: "16099"},
	}, additions)
}

/*
TestInsertSorted ignores blanks and existing values.
*/
func TestInsertSorted(t *testing.T) {
	list := []string{"A", "C"}

	assert.Equal(t, []string{"A", "B", "C"}, taxonomy.InsertSorted(list, "B"))
	assert.Equal(t, []string{"A", "C"}, taxonomy.InsertSorted(list, "C"))
	assert.Equal(t, []string{"A", "C"}, taxonomy.InsertSorted(list, ""))
	assert.Equal(t, []string{"A", "C"}, list)
}
