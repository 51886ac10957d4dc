package preference

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	initial := map[string]string{"language": "fr"}
	m := NewMemoryStore(initial)

	// the store owns its own copy
	initial["language"] = "de"

	v, found, err := m.Get(ctx, "language")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fr", v)

	_, found, err = m.Get(ctx, "quality")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "quality", ""))
	v, found, _ = m.Get(ctx, "quality")
	assert.True(t, found, "an empty value is still a value")
	assert.Empty(t, v)

	written, err := m.SetIfAbsent(ctx, "quality", "5")
	require.NoError(t, err)
	assert.False(t, written)

	existed, err := m.Delete(ctx, "quality")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = m.Delete(ctx, "quality")
	require.NoError(t, err)
	assert.False(t, existed)

	written, err = m.SetIfAbsent(ctx, "quality", "5")
	require.NoError(t, err)
	assert.True(t, written)
}

func TestMemoryStoreConcurrentSeed(t *testing.T) {
	m := NewMemoryStore(nil)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		seeded int
	)

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			report, err := Seed(context.Background(), m, fmt.Sprintf("worker-%d", i))
			assert.NoError(t, err)

			mu.Lock()
			seeded += len(report.Seeded)
			mu.Unlock()
		}()
	}

	wg.Wait()

	// every key is written by exactly one seeder
	assert.Equal(t, 7, seeded)

	all, err := m.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wantDefaults, all)
}

func TestMemoryStoreNilReceiver(t *testing.T) {
	ctx := context.Background()

	var m *MemoryStore

	_, _, err := m.Get(ctx, "quality")
	require.ErrorIs(t, err, ErrNilStore)
	require.ErrorIs(t, m.Set(ctx, "quality", "5"), ErrNilStore)

	_, err = m.SetIfAbsent(ctx, "quality", "5")
	require.ErrorIs(t, err, ErrNilStore)

	_, err = m.Delete(ctx, "quality")
	require.ErrorIs(t, err, ErrNilStore)

	_, err = m.All(ctx)
	require.ErrorIs(t, err, ErrNilStore)
}
