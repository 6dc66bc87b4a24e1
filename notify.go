package inkwell

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// Submission carries a contact form entry to a NotificationSender.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// NotificationSender delivers a notification about a contact submission.
// The contact flow depends on this capability rather than a concrete mail
// client, so delivery can be swapped for a queue or disabled entirely.
type NotificationSender interface {
	Notify(ctx context.Context, s Submission) error
}

// SMTPSender sends contact notifications to the configured mailbox over SMTP.
type SMTPSender struct {
	cfg MailSection
}

// NewSMTPSender creates an SMTPSender from the mail config section.
func NewSMTPSender(cfg MailSection) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Notify sends one message per submission. The submitter's address goes into
// Reply-To so the owner can answer directly; the envelope From stays the
// authenticated account.
func (s *SMTPSender) Notify(ctx context.Context, sub Submission) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.Username); err != nil {
		return fmt.Errorf("notify: from address: %w", err)
	}
	if err := m.To(s.cfg.To); err != nil {
		return fmt.Errorf("notify: to address: %w", err)
	}
	if sub.Email != "" {
		if err := m.ReplyTo(sub.Email); err != nil {
			return fmt.Errorf("notify: reply-to address: %w", err)
		}
	}
	m.Subject("New message from " + sub.Name)
	m.SetBodyString(mail.TypeTextPlain, sub.Message+"\n"+sub.Phone)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}

// NoopSender discards notifications; used when mail is disabled.
type NoopSender struct{}

func (NoopSender) Notify(context.Context, Submission) error {
	return nil
}
