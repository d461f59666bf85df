package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInit_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true)
	t.Cleanup(func() { Init(nil, false) })

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	log.Debug().Str("model", "text-davinci-003").Msg("requesting completion")
	assert.Contains(t, buf.String(), "requesting completion")
	assert.Contains(t, buf.String(), "text-davinci-003")
}

func TestInit_InfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(func() { Init(nil, false) })

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
