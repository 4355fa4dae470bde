package utils

import (
	"testing"

	"salonhub/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelFollowsConfig(t *testing.T) {
	prev := config.AppConfig
	t.Cleanup(func() { config.AppConfig = prev })

	config.AppConfig.LogLevel = "error"
	assert.Equal(t, zapcore.ErrorLevel, logLevel())

	config.AppConfig.LogLevel = "warn"
	assert.Equal(t, zapcore.WarnLevel, logLevel())

	config.AppConfig.LogLevel = "not-a-level"
	config.AppConfig.Env = "production"
	assert.Equal(t, zapcore.InfoLevel, logLevel())

	config.AppConfig.Env = "development"
	assert.Equal(t, zapcore.DebugLevel, logLevel())
}
