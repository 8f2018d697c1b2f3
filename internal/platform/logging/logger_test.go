package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Config{Development: true})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Config{Level: "loud"})
	require.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}

func TestMaskShort(t *testing.T) {
	assert.Equal(t, "", MaskShort("  "))
	assert.Equal(t, "short", MaskShort("short"))
	assert.Equal(t, "Toke***Q5DA", MaskShort("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
}
