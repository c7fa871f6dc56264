package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email. Delivery is fire-and-forget: dispatch
// always happens after the owning database transaction commits, and a failed
// send never rolls back a state mutation.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Result identifies an accepted send.
type Result struct {
	ID string
}

//go:generate mockgen -source=notify.go -destination=dispatcher_mock.go -package=notify
type Dispatcher interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Sender   string
}

// SMTPDispatcher delivers messages over SMTP.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	sender string
}

func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		sender: cfg.Sender,
	}
}

func (d *SMTPDispatcher) Send(_ context.Context, msg Message) (Result, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", d.sender)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := d.dialer.DialAndSend(m); err != nil {
		return Result{}, fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}

	return Result{ID: uuid.NewString()}, nil
}
