package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{"ADDRESS", "TOKEN", "CAPACITY", "STORE_FILE", "STORE_INTERVAL", "RESTORE", "DEBUG"} {
		t.Setenv(name, "")
	}
}

func TestNewConfig_defaults(t *testing.T) {
	clearEnv(t)
	conf, err := NewConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), conf)
}

func TestNewConfig_flags(t *testing.T) {
	clearEnv(t)
	conf, err := NewConfig([]string{
		"-ADDRESS", ":4000",
		"-CAPACITY", "128",
		"-STORE_INTERVAL", "0",
		"-RESTORE=false",
		"-TOKEN", "secret",
	})
	require.NoError(t, err)
	require.Equal(t, ":4000", conf.Address)
	require.Equal(t, 128, conf.Capacity)
	require.Equal(t, time.Duration(0), conf.StoreInterval)
	require.False(t, conf.Restore)
	require.Equal(t, "secret", conf.Token)
	require.Equal(t, defaultStoreFile, conf.StoreFile)
}

func TestNewConfig_env(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_FILE", "db/test_headstash.data")
	t.Setenv("CAPACITY", "256")
	t.Setenv("DEBUG", "true")

	conf, err := NewConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "db/test_headstash.data", conf.StoreFile)
	require.Equal(t, 256, conf.Capacity)
	require.True(t, conf.Debug)

	// flags win over the environment
	conf, err = NewConfig([]string{"-CAPACITY", "512"})
	require.NoError(t, err)
	require.Equal(t, 512, conf.Capacity)
}

func TestNewConfig_badFlag(t *testing.T) {
	_, err := NewConfig([]string{"-CAPACITY", "many"})
	require.Error(t, err)
}

func TestConfig_FillDefaults(t *testing.T) {
	conf := &Config{Capacity: 64}
	conf.FillDefaults()
	require.Equal(t, 64, conf.Capacity)
	require.Equal(t, defaultAddress, conf.Address)
	require.Equal(t, defaultStoreFile, conf.StoreFile)
	require.Equal(t, time.Duration(0), conf.StoreInterval)
}
