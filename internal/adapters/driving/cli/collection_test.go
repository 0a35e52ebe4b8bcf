package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	collectionService = nil

	_, err := execute("collection", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection service not configured")
}

func TestCollectionAddCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("collection", "add", "formal", "deck-1", "deck-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Collection formal now has 2 presentations")

	out, err = execute("collection", "add", "formal", "deck-3")
	require.NoError(t, err)
	assert.Contains(t, out, "now has 3 presentations")
	assert.Equal(t, []string{"deck-1", "deck-2", "deck-3"}, ts.collections.collections["formal"].PresentationIDs)
}

func TestCollectionAddCmd_NeedsPresentation(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("collection", "add", "formal")

	assert.Error(t, err)
}

func TestCollectionShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("collection", "add", "sales", "deck-9")
	require.NoError(t, err)

	out, err := execute("collection", "show", "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "sales")
	assert.Contains(t, out, "  deck-9")

	_, err = execute("collection", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection not found: missing")
}

func TestCollectionListCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("collection", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No collections.")

	_, err = execute("collection", "add", "formal", "deck-1")
	require.NoError(t, err)

	out, err = execute("collection", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "formal")
	assert.Contains(t, out, "1 presentations")
}
