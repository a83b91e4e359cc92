package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mindjournal/mindjournal-backend/config"
)

var ErrNotConfigured = errors.New("email service not configured: set EMAIL_USER and EMAIL_PASS")

// Mailer delivers one HTML message and returns its Message-ID.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// New builds the mailer selected by cfg.Driver.
func New(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Driver {
	case config.MailDriverSMTP:
		return NewSMTPMailer(cfg), nil
	case config.MailDriverLog:
		return NewLogMailer(domainOf(cfg.Username)), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

func newMessageID(domain string) string {
	if domain == "" {
		domain = "mindjournal.local"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return ""
}
