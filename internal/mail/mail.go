package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"docreport/internal/config"
)

var (
	ErrNoRecipients = errors.New("mail: no recipients")
	ErrNoSender     = errors.New("mail: sender address is required")
)

// Attachment is a file carried alongside the HTML body.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one HTML email addressed to a set of recipients.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Transport delivers messages. Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPTransport sends mail through an SMTP relay, upgrading to TLS when the server offers it.
// A new connection is dialed for every message.
type SMTPTransport struct {
	host     string
	port     int
	user     string
	password string
	from     string
	timeout  time.Duration
}

// NewSMTPTransport builds a transport from SMTP settings.
func NewSMTPTransport(cfg config.SMTPConfig) (*SMTPTransport, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("smtp server is required")
	}
	port := cfg.Port
	if port <= 0 {
		port = 587
	}
	return &SMTPTransport{
		host:     cfg.Server,
		port:     port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		timeout:  30 * time.Second,
	}, nil
}

// Send implements Transport.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = t.from
	}
	m, err := BuildMessage(msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(t.port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(t.timeout),
	}
	if t.user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.user),
			gomail.WithPassword(t.password),
		)
	}
	client, err := gomail.NewClient(t.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// BuildMessage converts msg into a MIME message ready for delivery.
func BuildMessage(msg Message) (*gomail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	if msg.From == "" {
		return nil, ErrNoSender
	}

	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Data), gomail.WithFileContentType(gomail.ContentType(ct))); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return m, nil
}
