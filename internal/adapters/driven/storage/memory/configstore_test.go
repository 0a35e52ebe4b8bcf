package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
	assert.NoError(t, store.Save())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.provider", "ollama"))
	val, ok := store.Get("llm.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	require.NoError(t, store.Set("llm.provider", "openai"))
	assert.Equal(t, "openai", store.GetString("llm.provider"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("n", 42)
	assert.Empty(t, store.GetString("n"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int", 16384)
	_ = store.Set("int64", int64(4096))
	_ = store.Set("float", float64(500))
	_ = store.Set("string", "500")

	assert.Equal(t, 16384, store.GetInt("int"))
	assert.Equal(t, 4096, store.GetInt("int64"))
	assert.Equal(t, 500, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("string"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "750ms")
	_ = store.Set("d", 2*time.Second)
	_ = store.Set("bad", "soon")

	assert.Equal(t, 750*time.Millisecond, store.GetDuration("s"))
	assert.Equal(t, 2*time.Second, store.GetDuration("d"))
	assert.Zero(t, store.GetDuration("bad"))
	assert.Zero(t, store.GetDuration("missing"))
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
			_ = store.GetInt("k")
		}(i)
	}
	wg.Wait()
	_, ok := store.Get("k")
	assert.True(t, ok)
}
