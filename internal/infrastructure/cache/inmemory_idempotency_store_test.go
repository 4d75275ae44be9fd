package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first mark succeeds", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("second mark reports duplicate", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("expired entry can be re-marked", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "key-2", time.Millisecond)
		require.NoError(t, err)
		assert.True(t, fresh)

		time.Sleep(5 * time.Millisecond)

		fresh, err = store.MarkProcessed(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, fresh)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "known", time.Minute)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "known")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentMarks(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	var winners int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fresh, err := store.MarkProcessed(ctx, "contested", time.Minute)
			assert.NoError(t, err)
			if fresh {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), winners, "exactly one caller wins the mark")
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.MarkProcessed(ctx, fmt.Sprintf("key-%d", i), time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, store.Size())
}
