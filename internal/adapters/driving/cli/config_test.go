package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/pipedata/curator/internal/adapters/driven/config/file"
)

func swapConfigStore(t *testing.T) *configfile.ConfigStore {
	t.Helper()
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	old := configStore
	configStore = store
	t.Cleanup(func() { configStore = old })
	return store
}

func TestConfigSetAndGet(t *testing.T) {
	swapConfigStore(t)

	out, err := execute(t, "config", "set", "downstream.url", "https://intake.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Set downstream.url")

	out, err = execute(t, "config", "get", "downstream.url")
	require.NoError(t, err)
	assert.Contains(t, out, "https://intake.example.com")
}

func TestConfigSet_KeepsNumbersTyped(t *testing.T) {
	store := swapConfigStore(t)

	_, err := execute(t, "config", "set", "transmit.concurrency", "8")
	require.NoError(t, err)
	assert.Equal(t, 8, store.GetInt("transmit.concurrency"))

	_, err = execute(t, "config", "set", "batch.min_quality", "7.5")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, store.GetFloat("batch.min_quality"), 0.001)
}

func TestConfigGet_Unset(t *testing.T) {
	swapConfigStore(t)

	_, err := execute(t, "config", "get", "missing.key")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigList(t *testing.T) {
	swapConfigStore(t)

	_, err := execute(t, "config", "set", "a.key", "1")
	require.NoError(t, err)
	_, err = execute(t, "config", "set", "b.key", "two")
	require.NoError(t, err)

	out, err := execute(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "a.key = 1")
	assert.Contains(t, out, "b.key = two")
}

func TestConfigList_Empty(t *testing.T) {
	swapConfigStore(t)

	out, err := execute(t, "config", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set.")
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	old := configStore
	configStore = nil
	t.Cleanup(func() { configStore = old })

	_, err := execute(t, "config", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}
