package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/config"
)

func TestNewLoggerService_DisabledWithoutLicense(t *testing.T) {
	service, err := NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)

	assert.Nil(t, service.GetApplication())
	service.Shutdown()
}

func TestLoggerService_NilSafe(t *testing.T) {
	var service *LoggerService

	assert.Nil(t, service.GetApplication())
	assert.NotPanics(t, service.Shutdown)
}

func TestNewLogger_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	assert.Equal(t, zerolog.WarnLevel, NewLogger(cfg).GetLevel())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 6, GetPgxTraceLogLevel(zerolog.TraceLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 1, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestWithTraceContext_NoTransaction(t *testing.T) {
	base := zerolog.Nop()

	assert.Equal(t, base, WithTraceContext(base, nil))
}
