package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("cmd", "pulse").Msg("computed")

	out := buf.String()
	assert.Contains(t, out, "computed")
	assert.Contains(t, out, "pulse")
}

func TestQuietSuppressesInfo(t *testing.T) {
	log := Quiet()
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
