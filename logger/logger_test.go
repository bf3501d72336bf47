package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")

	t.Setenv("LOG_ENV", "")
	l, err := New()
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	t.Setenv("LOG_ENV", "production")
	l, err = New()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))

	t.Setenv("LOG_LEVEL", "warn")
	l, err = New()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
}

func TestNewRejectsBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := New()
	assert.Error(t, err)
}
