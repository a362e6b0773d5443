package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "calls", cfg.CallsCollection)
	assert.Equal(t, "America/New_York", cfg.DisplayTimezone)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG_NUMBERS", "+15550000000, +15550000001,")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"+15550000000", "+15550000001"}, cfg.DebugNumbers)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,b,, "))
}
