package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "vacío cae a info")
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"), "desconocido cae a info")
}

func TestNew(t *testing.T) {
	log := New(Config{Env: "production", Level: "error"})
	require.NotNil(t, log)
	assert.Equal(t, zerolog.ErrorLevel, log.zl.GetLevel())

	log = New(Config{Env: "development"})
	require.NotNil(t, log)
	assert.Equal(t, zerolog.InfoLevel, log.zl.GetLevel())
}
