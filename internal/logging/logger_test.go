package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/suggestd/internal/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.Logging{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.Logging{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestRedactor(t *testing.T) {
	r := Redactor{MaxChars: 10}
	assert.Equal(t, "short", r.Redact("short"))
	assert.Equal(t, "0123456789...", r.Redact("0123456789abcdef"))

	none := Redactor{}
	assert.Equal(t, "anything at all", none.Redact("anything at all"))
}

func TestRedactAll(t *testing.T) {
	r := Redactor{MaxChars: 4}
	assert.Nil(t, r.RedactAll(nil))
	assert.Equal(t, []string{"abcd...", "xy"}, r.RedactAll([]string{"abcdef", "xy"}))
}

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	tl.Info("candidate dropped")

	tl.AssertLogged(t, zapcore.InfoLevel, "dropped")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "dropped")
}
