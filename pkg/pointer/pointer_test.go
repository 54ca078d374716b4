// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/audiencia/pkg/pointer"
)

func TestOr(t *testing.T) {
	assert.Equal(t, "N/A", pointer.Or(nil, "N/A"))
	assert.Equal(t, "MP-01", pointer.Or(pointer.To("MP-01"), "N/A"))
}

func TestNonBlank(t *testing.T) {
	assert.Nil(t, pointer.NonBlank("   "))

	value := pointer.NonBlank("  ext-42 ")
	require.NotNil(t, value)
	assert.Equal(t, "ext-42", *value)
}
