package mailer

import (
	"context"

	"github.com/mindjournal/mindjournal-backend/pkg/logger"
)

type logMailer struct {
	domain string
}

// NewLogMailer writes messages to the log instead of sending them. Meant for
// local development only: the body contains live tokens and codes.
func NewLogMailer(domain string) Mailer {
	return &logMailer{domain: domain}
}

func (m *logMailer) Send(_ context.Context, to, subject, htmlBody string) (string, error) {
	messageID := newMessageID(m.domain)
	logger.Warn("[DEV MODE] email not sent, logging instead", map[string]interface{}{
		"to":         to,
		"subject":    subject,
		"message_id": messageID,
		"body":       htmlBody,
	})
	return messageID, nil
}
