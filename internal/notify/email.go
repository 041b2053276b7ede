package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "github.com/wneessen/go-mail"

	"github.com/brightlinelabs/leadchat/pkg/logging"
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (SMTP, SendGrid, stub) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	Subject string
	Body    string // Plain text body
}

// SMTPConfig holds configuration for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender sends email over SMTP with STARTTLS and username/password
// auth. Connect and send share a bounded timeout so a stalled mail server
// cannot hang a request.
type SMTPSender struct {
	client *gomail.Client
	from   string
	logger *logging.Logger
}

// NewSMTPSender creates an SMTP email sender. Returns nil if no host is
// configured.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.Username,
		logger: logger,
	}, nil
}

// Send transmits a plain-text email over SMTP.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("notify: smtp from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("notify: smtp to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("smtp send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject)
	return nil
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender. Returns nil if no
// API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Leadchat"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "to", msg.To)
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("email sent via sendgrid", "to", msg.To, "subject", msg.Subject)
	return nil
}

// StubEmailSender is a no-op sender for testing or when email is disabled.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject)
	return nil
}

var (
	_ EmailSender = (*SMTPSender)(nil)
	_ EmailSender = (*SendGridSender)(nil)
	_ EmailSender = (*StubEmailSender)(nil)
)
