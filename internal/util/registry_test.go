// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRegistry_SetKeepsFirst(t *testing.T) {
	r := NewStringRegistry[int]()

	require.True(t, r.Set("attendance", 1))
	require.False(t, r.Set("attendance", 2), "Set must not overwrite")

	v, ok := r.Get("attendance")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestStringRegistry_StoreAndDelete(t *testing.T) {
	r := NewStringRegistry[string]()
	r.Store("voting", "a")
	r.Store("voting", "b")

	v, _ := r.Get("voting")
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Delete("voting"))
	assert.False(t, r.Delete("voting"))
	assert.False(t, r.Has("voting"))
	assert.Zero(t, r.Len())
}

func TestStringRegistry_SortedKeysAndValues(t *testing.T) {
	r := NewStringRegistry[int]()
	r.Set("voting", 3)
	r.Set("attendance", 1)
	r.Set("feedback", 2)

	assert.Equal(t, []string{"attendance", "feedback", "voting"}, r.Keys())
	assert.Equal(t, []int{1, 2, 3}, r.Values())
}

func TestStringRegistry_Concurrent(t *testing.T) {
	r := NewStringRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Set(string(rune('a'+i%26)), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			r.Get(string(rune('a' + i%26)))
			r.Keys()
			r.Values()
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Len(), 26)
}
