package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Level(t *testing.T) {
	l, err := New(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = New(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestWithSession(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	WithSession(zap.New(core), "abc", "production").Info("push")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["session"])
	assert.Equal(t, "production", fields["stage"])
}

func TestWithSession_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithSession(nil, "abc", "dev").Info("ignored")
	})
}
