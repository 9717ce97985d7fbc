package vacancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetMissesUntilPut(t *testing.T) {
	cache := NewCache()
	now := time.Now()

	_, ok := cache.Get(1, now)
	assert.False(t, ok)

	sheet := mustParse(t, "spa:1\n mon\n  9-12\n")
	cache.Put(1, sheet, now)

	got, ok := cache.Get(1, now)
	require.True(t, ok)
	assert.Equal(t, sheet, got)
}

func TestCache_StaleUpdatedAtMisses(t *testing.T) {
	cache := NewCache()
	savedAt := time.Now()

	cache.Put(1, mustParse(t, "spa:1\n mon\n  9-12\n"), savedAt)

	// Лист переопубликован: updated_at в хранилище ушёл вперёд
	_, ok := cache.Get(1, savedAt.Add(time.Second))
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	cache := NewCache()
	now := time.Now()

	cache.Put(1, mustParse(t, "spa:1\n mon\n  9-12\n"), now)
	cache.Invalidate(1)

	_, ok := cache.Get(1, now)
	assert.False(t, ok)
}

func TestCache_EntriesAreIndependent(t *testing.T) {
	cache := NewCache()
	now := time.Now()

	cache.Put(1, mustParse(t, "spa:1\n mon\n  9-12\n"), now)
	cache.Put(2, mustParse(t, "spa:2\n tue\n  10-14\n"), now)
	cache.Invalidate(1)

	_, ok := cache.Get(2, now)
	assert.True(t, ok)
}
