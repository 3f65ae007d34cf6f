package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-myancal/internal/config"
)

func TestLoadEnv_Defaults(t *testing.T) {
	// Clear anything inherited from the developer shell; Setenv restores it afterwards.
	for _, k := range []string{
		"MMCAL_PROVIDER", "MMCAL_REMOTE_URL", "MMCAL_REMOTE_TOKEN",
		"MMCAL_BUNDLE_SOURCE", "MMCAL_LANG", "MMCAL_SERVER_PORT", "MMCAL_HTTP_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	e, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderBundle, e.Provider)
	assert.Equal(t, config.DefaultLanguage, e.Language)
	assert.Equal(t, config.DefaultPort, e.ServerPort)
	assert.Equal(t, time.Duration(config.DefaultHTTPTimeoutSec)*time.Second, e.HTTPTimeout())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("MMCAL_PROVIDER", config.ProviderRemote)
	t.Setenv("MMCAL_REMOTE_URL", "https://cal.example.com")
	t.Setenv("MMCAL_LANG", "my")
	t.Setenv("MMCAL_HTTP_TIMEOUT_SEC", "3")

	e, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderRemote, e.Provider)
	assert.Equal(t, "https://cal.example.com", e.RemoteURL)
	assert.Equal(t, "my", e.Language)
	assert.Equal(t, 3*time.Second, e.HTTPTimeout())
}

func TestLoadEnv_InvalidNumber(t *testing.T) {
	t.Setenv("MMCAL_HTTP_TIMEOUT_SEC", "soon")

	_, err := config.LoadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEnvParse)
}

func TestEnv_HTTPTimeoutFallback(t *testing.T) {
	assert.Equal(t, time.Duration(config.DefaultHTTPTimeoutSec)*time.Second, config.Env{HTTPTimeoutSec: -1}.HTTPTimeout())
}
