package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFiltersBelowLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var out bytes.Buffer
	require.NoError(t, Setup(&out, "info"))

	log.Debug().Msg("hidden")
	log.Info().Str("backend", "ntfy").Msg("sent")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "sent")
	assert.Contains(t, out.String(), "backend=ntfy")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestSetupDefaultsToWarn(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var out bytes.Buffer
	require.NoError(t, Setup(&out, ""))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Setup(&out, "loud"))
}
