package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

func TestFileBackend_MissingFileLoadsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "orders.json"))

	orders, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileBackend_CorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	b := NewFileBackend(path)
	orders, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileBackend_SaveLoadRoundTrip(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "orders.json"))

	saved := []types.Order{
		testOrder("o1", line("i1", "1", 2, 150000)),
		testOrder("o2", line("i2", "2", 1, 250000)),
	}
	require.NoError(t, b.Save(saved))

	loaded, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}
