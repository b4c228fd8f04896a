package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("downstream.url", "https://intake.example.com"))
	require.NoError(t, store.Set("batch.min_quality", 7.5))
	require.NoError(t, store.Set("transmit.concurrency", 8))

	assert.Equal(t, "https://intake.example.com", store.GetString("downstream.url"))
	assert.InDelta(t, 7.5, store.GetFloat("batch.min_quality"), 0.001)
	assert.Equal(t, 8, store.GetInt("transmit.concurrency"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("downstream.token", "secret"))
	require.NoError(t, store.Set("transmit.concurrency", 4))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", reopened.GetString("downstream.token"))
	assert.Equal(t, 4, reopened.GetInt("transmit.concurrency"))
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("b.key", 1))
	require.NoError(t, store.Set("a.key", 2))

	assert.Equal(t, []string{"a.key", "b.key"}, store.Keys())
}

func TestConfigStore_FlattensNestedTOML(t *testing.T) {
	dir := t.TempDir()
	content := "[downstream]\nurl = \"https://intake.example.com\"\ntimeout_seconds = 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://intake.example.com", store.GetString("downstream.url"))
	assert.Equal(t, 30, store.GetInt("downstream.timeout_seconds"))
}

func TestConfigStore_GetFloatFromInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("batch.min_quality", 7))
	assert.InDelta(t, 7.0, store.GetFloat("batch.min_quality"), 0.001)
}
