// Package notifier sends the rendered digests through Resend.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// SendResult reports the outcome of one send attempt (after any retry).
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

type Notifier struct {
	client *resend.Client
	from   string
	to     string
}

// New builds a notifier. A missing API key leaves the client nil; sends
// then fail with a configuration error instead of panicking.
func New(apiKey, from, to string) *Notifier {
	n := &Notifier{from: from, to: to}
	if apiKey != "" {
		n.client = resend.NewClient(apiKey)
	}
	return n
}

// SendMorningDigest sends the morning digest email.
func (n *Notifier) SendMorningDigest(ctx context.Context, htmlBody string) SendResult {
	subject := fmt.Sprintf("Daily Research Digest - %s", dateForSubject())
	return n.send(ctx, subject, htmlBody)
}

// SendEveningCatchup sends the evening update; the subject carries the new
// item count.
func (n *Notifier) SendEveningCatchup(ctx context.Context, htmlBody string, urgentCount int) SendResult {
	plural := "s"
	if urgentCount == 1 {
		plural = ""
	}
	subject := fmt.Sprintf("Evening Update: %d new item%s - %s", urgentCount, plural, dateForSubject())
	return n.send(ctx, subject, htmlBody)
}

// SendErrorNotification reports accumulated job errors to the recipient.
func (n *Notifier) SendErrorNotification(ctx context.Context, jobType string, errors []string) SendResult {
	subject := fmt.Sprintf("Research job errors: %s - %s", jobType, dateForSubject())

	body := "<h2>Errors during " + jobType + "</h2><ul>"
	for _, e := range errors {
		body += "<li>" + e + "</li>"
	}
	body += "</ul>"

	return n.send(ctx, subject, body)
}

// send delivers one email with a single retry on failure.
func (n *Notifier) send(ctx context.Context, subject, htmlBody string) SendResult {
	if n.client == nil {
		return SendResult{Success: false, Error: "Resend not configured"}
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Warn("Email send failed, retrying once", "subject", subject, "error", err)

		sent, err = n.client.Emails.SendWithContext(ctx, params)
		if err != nil {
			slog.Error("Email send failed after retry", "subject", subject, "error", err)
			return SendResult{Success: false, Error: err.Error()}
		}
	}

	slog.Info("Email sent", "subject", subject, "message_id", sent.Id)
	return SendResult{Success: true, MessageID: sent.Id}
}

func dateForSubject() string {
	return time.Now().Format("Monday, January 2, 2006")
}
