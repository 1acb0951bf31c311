package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"development", "", zapcore.DebugLevel},
		{"production", "", zapcore.InfoLevel},
		{"production", "warn", zapcore.WarnLevel},
		{"development", "error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.env, tt.level)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want), "%s/%s", tt.env, tt.level)
		assert.False(t, l.Core().Enabled(tt.want-1), "%s/%s", tt.env, tt.level)
	}

	_, err := New("production", "loud")
	assert.Error(t, err)
}
