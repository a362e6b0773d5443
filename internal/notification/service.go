package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"cityglow-backend/internal/call/domain"
)

// Sender delivers one two-part message to a recipient.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) error
}

var htmlBodyTemplate = template.Must(template.New("call-email").Parse(`<html>
<body>
<h2>New call received</h2>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{if .CallerName}}<p><strong>Caller:</strong> {{.CallerName}}</p>
{{end}}<p><strong>Date/Time:</strong> {{.When}}</p>
<p><strong>Duration:</strong> {{.Duration}}</p>
<h3>Summary</h3>
<p>{{.Summary}}</p>
<h3>Transcript</h3>
<pre>{{.Transcript}}</pre>
</body>
</html>
`))

type emailData struct {
	Phone      string
	CallerName string
	When       string
	Duration   string
	Summary    string
	Transcript string
}

// Service formats and sends the call summary email to one fixed recipient.
// Timestamps are stored in UTC and rendered in the configured display
// timezone.
type Service struct {
	sender    Sender
	recipient string
	location  *time.Location
}

func NewService(sender Sender, recipient string, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		sender:    sender,
		recipient: recipient,
		location:  location,
	}
}

// NotifyCall sends the summary email for a persisted call.
func (s *Service) NotifyCall(_ context.Context, call *domain.CallRecord) error {
	data := s.buildEmailData(call)

	subject := fmt.Sprintf("[%s Call from %s]", s.subjectDate(call), data.Phone)

	text := s.renderText(data)
	html, err := s.renderHTML(data)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	return s.sender.Send(s.recipient, subject, text, html)
}

func (s *Service) buildEmailData(call *domain.CallRecord) emailData {
	when := "Unknown"
	if call.StartedAt != nil {
		when = call.StartedAt.In(s.location).Format("01/02/2006 3:04 PM MST")
	}

	return emailData{
		Phone:      FormatPhone(call.PhoneNumber),
		CallerName: strings.TrimSpace(call.CallerName),
		When:       when,
		Duration:   FormatDuration(call.StartedAt, call.EndedAt),
		Summary:    call.Summary,
		Transcript: call.Transcript,
	}
}

// subjectDate is MM/DD of the call start in display time, falling back to
// the record creation time when the platform sent no start timestamp.
func (s *Service) subjectDate(call *domain.CallRecord) string {
	at := call.CreatedAt
	if call.StartedAt != nil {
		at = *call.StartedAt
	}
	return at.In(s.location).Format("01/02")
}

func (s *Service) renderText(data emailData) string {
	var b strings.Builder
	b.WriteString("New call received\n\n")
	fmt.Fprintf(&b, "Phone: %s\n", data.Phone)
	if data.CallerName != "" {
		fmt.Fprintf(&b, "Caller: %s\n", data.CallerName)
	}
	fmt.Fprintf(&b, "Date/Time: %s\n", data.When)
	fmt.Fprintf(&b, "Duration: %s\n", data.Duration)
	fmt.Fprintf(&b, "\nSummary:\n%s\n", data.Summary)
	fmt.Fprintf(&b, "\nTranscript:\n%s\n", data.Transcript)
	return b.String()
}

func (s *Service) renderHTML(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := htmlBodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
