// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/audiencia/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))
	assert.Equal(t, []int{1, 3}, slice.Map([]string{"a", "abc"}, func(s string) int { return len(s) }))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.Empty(t, slice.Filter([]int{1, 3}, even))
}

func TestGroupOrdered(t *testing.T) {
	first := func(s string) string { return s[:1] }

	keys, buckets := slice.GroupOrdered([]string{"b1", "a1", "b2", "c1", "a2"}, first)

	assert.Equal(t, []string{"b", "a", "c"}, keys)
	assert.Equal(t, []string{"b1", "b2"}, buckets["b"])
	assert.Equal(t, []string{"a1", "a2"}, buckets["a"])
	assert.Equal(t, []string{"c1"}, buckets["c"])
}

func TestGroupOrdered_Empty(t *testing.T) {
	keys, buckets := slice.GroupOrdered(nil, strings.ToUpper)

	assert.Empty(t, keys)
	assert.Empty(t, buckets)
}
