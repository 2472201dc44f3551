package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBeforeInit(t *testing.T) {
	Logger = nil
	assert.NotNil(t, Get())
}

func TestInit(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		require.NoError(t, Init(env))
		assert.Same(t, Logger, Get())
		Sync()
	}
	Logger = nil
}
