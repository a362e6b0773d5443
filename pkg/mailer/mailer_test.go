package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageMultipartAlternative(t *testing.T) {
	m := New("smtp.example.com", 587, "sender@example.com", "secret")

	msg, err := m.buildMessage("owner@example.com", "[07/18 Call from (234) 567-8901]",
		"plain body", "<html><body>html body</body></html>")
	require.NoError(t, err)

	raw := string(msg)
	assert.Contains(t, raw, "From: <sender@example.com>")
	assert.Contains(t, raw, "To: <owner@example.com>")
	assert.Contains(t, raw, "Subject: ")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "plain body")
	assert.Contains(t, raw, "html body")
}

func TestBuildMessagePlainOnly(t *testing.T) {
	m := New("smtp.example.com", 587, "sender@example.com", "secret")

	msg, err := m.buildMessage("owner@example.com", "subject", "just text", "")
	require.NoError(t, err)

	raw := string(msg)
	assert.Contains(t, raw, "just text")
	assert.NotContains(t, raw, "text/html")
}
