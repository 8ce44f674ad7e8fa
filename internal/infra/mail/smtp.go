package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"
)

// Sender delivers plain-text notification mail over SMTP. Delivery is
// best-effort: callers treat failures as log-and-continue.
type Sender struct {
	addr string
	from string
}

func NewSender(cfg config.MailConfig) *Sender {
	return &Sender{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.From,
	}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\n\r\n%s\r\n",
		s.from, to, subject, time.Now().Format(time.RFC1123Z), body,
	)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.Wrap(err, "failed to send mail")
		}
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "mail send cancelled")
	}
}
