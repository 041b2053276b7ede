package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/brightlinelabs/leadchat/internal/leads"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

// Service sends lead notifications to a single fixed recipient.
type Service struct {
	email    EmailSender
	receiver string
	logger   *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, receiver string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:    email,
		receiver: receiver,
		logger:   logger,
	}
}

// NotifyNewLead emails a plain-text summary of the captured lead.
func (s *Service) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if s.email == nil || s.receiver == "" {
		s.logger.Debug("notify: email not configured, skipping lead notification")
		return nil
	}

	msg := EmailMessage{
		To:      s.receiver,
		Subject: fmt.Sprintf("New Lead: %s", lead.Name),
		Body:    formatLeadBody(lead),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead email: %w", err)
	}

	s.logger.Info("lead notification sent", "to", s.receiver, "lead_id", lead.ID)
	return nil
}

func formatLeadBody(lead *leads.Lead) string {
	return fmt.Sprintf(`You've got a new lead!

Name : %s
Email: %s
Phone: %s
Captured at: %s
`, lead.Name, lead.Email, lead.Phone, lead.CreatedAt.UTC().Format(time.RFC3339))
}

var _ leads.Notifier = (*Service)(nil)
