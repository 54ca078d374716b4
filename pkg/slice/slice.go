// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice adds the few generic helpers the standard [slices] package lacks.

Every function keeps the input order, which the grouping and export code
depend on.
*/
package slice

// Map applies transform to each element.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which keep is true.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

/*
GroupOrdered partitions input by key.

The returned keys are in order of first appearance and every bucket keeps
the relative order of its elements in input.

Example:

	keys, buckets := GroupOrdered([]string{"b1", "a1", "b2"}, first)
	// keys    == ["b", "a"]
	// buckets == {"b": ["b1", "b2"], "a": ["a1"]}
*/
func GroupOrdered[T any, K comparable](input []T, key func(T) K) ([]K, map[K][]T) {
	keys := []K{}
	buckets := make(map[K][]T)

	for _, v := range input {
		k := key(v)
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], v)
	}
	return keys, buckets
}
