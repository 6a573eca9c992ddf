package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDir(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyMaxDocFreq, 0.7))
	require.NoError(t, store.Set(KeyEpochs, 50))
	require.NoError(t, store.Set(KeyRetrainOnSubmit, true))
	require.NoError(t, store.Set(KeyImageClassifierURL, "http://localhost:9090"))

	assert.Equal(t, 0.7, store.GetFloat(KeyMaxDocFreq))
	assert.Equal(t, 50, store.GetInt(KeyEpochs))
	assert.True(t, store.GetBool(KeyRetrainOnSubmit))
	assert.Equal(t, "http://localhost:9090", store.GetString(KeyImageClassifierURL))
}

func TestConfigStore_MissingKeysReturnZeroValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Zero(t, store.GetFloat(KeyHoldoutFraction))
	assert.Zero(t, store.GetInt(KeyKeepVersions))
	assert.False(t, store.GetBool(KeyRetrainOnSubmit))
	assert.Empty(t, store.GetString(KeyImageClassifierURL))
}

func TestConfigStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyRegressionTolerance, 0.05))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.05, reopened.GetFloat(KeyRegressionTolerance))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[pipeline]\nmax_doc_freq = 0.6\nepochs = 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 0.6, store.GetFloat(KeyMaxDocFreq))
	assert.Equal(t, 25, store.GetInt(KeyEpochs))
}

func TestConfigStore_GetFloatFromInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// TOML integers arrive as int64; GetFloat should widen them.
	require.NoError(t, store.Set(KeyHoldoutFraction, int64(1)))
	assert.Equal(t, 1.0, store.GetFloat(KeyHoldoutFraction))
}
