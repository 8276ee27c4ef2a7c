package notify

import (
	"context"
	"html"

	"github.com/gregbolastig/short-courses-sub001/internal/mailer"
)

// Service sends application-decision emails to students. Callers invoke
// it after their transaction commits; a send failure never un-decides
// an application.
type Service struct {
	Mailer   mailer.Service
	From     string
	FromName string
}

func New(m mailer.Service, from, fromName string) *Service {
	return &Service{Mailer: m, From: from, FromName: fromName}
}

func (s *Service) ApplicationApproved(ctx context.Context, toEmail, toName, courseName string) error {
	if s == nil || s.Mailer == nil || toEmail == "" {
		return nil
	}
	subject := "Your course application has been approved"
	text := "Hello " + toName + ",\n\n" +
		"Your application for " + courseName + " has been approved. " +
		"Please coordinate with your adviser for the training schedule.\n\n" +
		"Thank you."
	htmlBody := `<html><body style="font-family: sans-serif;">
<p>Hello ` + html.EscapeString(toName) + `,</p>
<p>Your application for <strong>` + html.EscapeString(courseName) + `</strong> has been approved.</p>
<p>Please coordinate with your adviser for the training schedule.</p>
<p>Thank you.</p>
</body></html>`

	return s.Mailer.Send(ctx, mailer.Email{
		FromName: s.FromName,
		From:     s.From,
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: text,
		HTMLBody: htmlBody,
	})
}

func (s *Service) ApplicationRejected(ctx context.Context, toEmail, toName, notes string) error {
	if s == nil || s.Mailer == nil || toEmail == "" {
		return nil
	}
	subject := "Update on your course application"
	text := "Hello " + toName + ",\n\n" +
		"We are sorry to inform you that your course application was not approved."
	if notes != "" {
		text += "\n\nReviewer notes: " + notes
	}
	text += "\n\nYou may apply again in a future enrollment period."

	htmlBody := `<html><body style="font-family: sans-serif;">
<p>Hello ` + html.EscapeString(toName) + `,</p>
<p>We are sorry to inform you that your course application was not approved.</p>`
	if notes != "" {
		htmlBody += `<p><em>Reviewer notes:</em> ` + html.EscapeString(notes) + `</p>`
	}
	htmlBody += `<p>You may apply again in a future enrollment period.</p>
</body></html>`

	return s.Mailer.Send(ctx, mailer.Email{
		FromName: s.FromName,
		From:     s.From,
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: text,
		HTMLBody: htmlBody,
	})
}
