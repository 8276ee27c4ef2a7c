package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregbolastig/short-courses-sub001/internal/mailer"
)

func TestApplicationApproved(t *testing.T) {
	mock := &mailer.Mock{}
	svc := New(mock, "noreply@ptc.example", "Provincial Training Center")

	err := svc.ApplicationApproved(context.Background(), "juan@example.com", "Juan Dela Cruz", "Welding")
	require.NoError(t, err)

	require.Len(t, mock.Sent, 1)
	e := mock.Sent[0]
	assert.Equal(t, []string{"juan@example.com"}, e.To)
	assert.Equal(t, "noreply@ptc.example", e.From)
	assert.Contains(t, e.Subject, "approved")
	assert.Contains(t, e.TextBody, "Welding")
	assert.Contains(t, e.HTMLBody, "Welding")
}

func TestApplicationApprovedEscapesHTML(t *testing.T) {
	mock := &mailer.Mock{}
	svc := New(mock, "noreply@ptc.example", "PTC")

	err := svc.ApplicationApproved(context.Background(), "x@example.com", "<b>Juan</b>", `Welding "NC II" <II>`)
	require.NoError(t, err)

	require.Len(t, mock.Sent, 1)
	html := mock.Sent[0].HTMLBody
	assert.NotContains(t, html, "<b>Juan</b>")
	assert.Contains(t, html, "&lt;b&gt;Juan&lt;/b&gt;")
	assert.NotContains(t, html, `"NC II" <II>`)
}

func TestApplicationRejectedIncludesNotes(t *testing.T) {
	mock := &mailer.Mock{}
	svc := New(mock, "noreply@ptc.example", "PTC")

	err := svc.ApplicationRejected(context.Background(), "juan@example.com", "Juan", "incomplete requirements")
	require.NoError(t, err)

	require.Len(t, mock.Sent, 1)
	assert.Contains(t, mock.Sent[0].TextBody, "incomplete requirements")
}

func TestNilSafety(t *testing.T) {
	var svc *Service
	assert.NoError(t, svc.ApplicationApproved(context.Background(), "a@b.c", "A", "C"))

	svc = New(nil, "", "")
	assert.NoError(t, svc.ApplicationRejected(context.Background(), "a@b.c", "A", ""))

	// no recipient: silently skipped
	mock := &mailer.Mock{}
	svc = New(mock, "noreply@ptc.example", "PTC")
	assert.NoError(t, svc.ApplicationApproved(context.Background(), "", "A", "C"))
	assert.Empty(t, mock.Sent)
}
