package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageMode)
	assert.Equal(t, 20, cfg.DefaultPageLength)
	assert.Equal(t, 100, cfg.MaxPageLength)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_MODE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/social.db")
	t.Setenv("DEFAULT_PAGE_LENGTH", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageMode)
	assert.Equal(t, "/tmp/social.db", cfg.SQLitePath)
	assert.Equal(t, 5, cfg.DefaultPageLength)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown storage":   {"STORAGE_MODE": "mongo"},
		"zero page length":  {"DEFAULT_PAGE_LENGTH": "0"},
		"max below default": {"DEFAULT_PAGE_LENGTH": "50", "MAX_PAGE_LENGTH": "10"},
		"malformed integer": {"MAX_PAGE_LENGTH": "many"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
