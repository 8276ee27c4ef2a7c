package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEMessageMultipart(t *testing.T) {
	msg, err := buildMIMEMessage(Email{
		FromName: "Provincial Training Center",
		From:     "noreply@ptc.example",
		To:       []string{"juan@example.com"},
		Subject:  "Your course application has been approved",
		TextBody: "plain body",
		HTMLBody: "<p>html body</p>",
	}, "ptc.example")
	require.NoError(t, err)

	assert.Contains(t, msg, "From: Provincial Training Center <noreply@ptc.example>")
	assert.Contains(t, msg, "To: juan@example.com")
	assert.Contains(t, msg, "MIME-Version: 1.0")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "text/plain; charset=UTF-8")
	assert.Contains(t, msg, "text/html; charset=UTF-8")
	assert.Contains(t, msg, "plain body")
	assert.Contains(t, msg, "<p>html body</p>")
	assert.Contains(t, msg, "Message-ID: <")
}

func TestBuildMIMEMessageTextOnly(t *testing.T) {
	msg, err := buildMIMEMessage(Email{
		From:     "noreply@ptc.example",
		To:       []string{"a@example.com"},
		Subject:  "hi",
		TextBody: "just text",
	}, "ptc.example")
	require.NoError(t, err)
	assert.NotContains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "text/plain; charset=UTF-8")
}

func TestBuildMIMEMessageValidation(t *testing.T) {
	base := Email{
		From:     "noreply@ptc.example",
		To:       []string{"a@example.com"},
		Subject:  "hi",
		TextBody: "x",
	}

	e := base
	e.To = nil
	_, err := buildMIMEMessage(e, "d")
	assert.Error(t, err)

	e = base
	e.From = ""
	_, err = buildMIMEMessage(e, "d")
	assert.Error(t, err)

	e = base
	e.Subject = ""
	_, err = buildMIMEMessage(e, "d")
	assert.Error(t, err)

	e = base
	e.TextBody = ""
	_, err = buildMIMEMessage(e, "d")
	assert.Error(t, err)
}

func TestFormatAddressEncodesNonASCII(t *testing.T) {
	out := formatAddress("Peña Training", "noreply@ptc.example")
	assert.True(t, strings.HasPrefix(out, "=?utf-8?q?"), out)
	assert.True(t, strings.HasSuffix(out, "<noreply@ptc.example>"), out)

	assert.Equal(t, "noreply@ptc.example", formatAddress("", "noreply@ptc.example"))
}
