package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfig(t *testing.T) {
	c := NewMapConfig(map[string]string{
		PortKey:    "8080",
		TxRetryKey: "not-a-number",
	})

	assert.Equal(t, "8080", c.GetKey(PortKey))
	assert.Equal(t, 8080, c.GetIntKey(PortKey))
	assert.Equal(t, 5, c.GetIntKeyWithDefault(TxRetryKey, 5))
	assert.Equal(t, "sqlite", c.GetKeyWithDefault(DBDriverKey, "sqlite"))
	assert.Equal(t, "", c.GetKey(APIURLKey))

	c.Set(APIURLKey, "http://localhost:5000/api/v1")
	assert.Equal(t, "http://localhost:5000/api/v1", c.GetKey(APIURLKey))

	assert.Error(t, c.LoadFromPath("/tmp/none.env"))
}

func TestDotenvConfigLoad(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "dukaweb.env")
	err := os.WriteFile(envPath, []byte("DUKA_TEST_CONFIG_KEY=swahili\nDUKA_TEST_CONFIG_INT=42\n"), 0600)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Unsetenv("DUKA_TEST_CONFIG_KEY")
		_ = os.Unsetenv("DUKA_TEST_CONFIG_INT")
	})

	c := NewDotenvConfig(envPath)
	require.NoError(t, c.Load())

	assert.Equal(t, "swahili", c.GetKey("DUKA_TEST_CONFIG_KEY"))
	assert.Equal(t, 42, c.GetIntKey("DUKA_TEST_CONFIG_INT"))
	assert.Equal(t, 7, c.GetIntKeyWithDefault("DUKA_TEST_CONFIG_MISSING", 7))
}

func TestDotenvConfigMissingFile(t *testing.T) {
	c := NewDotenvConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, c.Load())
}
