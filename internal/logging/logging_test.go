package logging

import (
	"testing"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func Test_NewLevels(t *testing.T) {
	log, err := New(&config.Config{Env: config.EnvProduction, Log: config.Log{Level: "warn"}})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = New(&config.Config{})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func Test_NewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.Config{Log: config.Log{Level: "chatty"}})
	assert.Error(t, err)
}
