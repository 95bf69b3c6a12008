package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// No settings file is present in the test working directory, so Load falls
// back to its defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.AppHost)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	require.Equal(t, 240*time.Hour, cfg.JWT.RefreshTTL())
}
