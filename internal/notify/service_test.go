package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brightlinelabs/leadchat/internal/leads"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

type capturingSender struct {
	sent []EmailMessage
	err  error
}

func (c *capturingSender) Send(ctx context.Context, msg EmailMessage) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		ID:        "lead-1",
		Name:      "Jane Doe",
		Email:     "jane@doe.com",
		Phone:     "5551234567",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyNewLeadComposesEmail(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(sender, "owner@example.com", logging.Default())

	if err := svc.NotifyNewLead(context.Background(), sampleLead()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "owner@example.com" {
		t.Errorf("unexpected recipient %q", msg.To)
	}
	if msg.Subject != "New Lead: Jane Doe" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"Jane Doe", "jane@doe.com", "5551234567", "2025-06-01T12:00:00Z"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestNotifyNewLeadWrapsSendError(t *testing.T) {
	sender := &capturingSender{err: errors.New("dial tcp: connection refused")}
	svc := NewService(sender, "owner@example.com", logging.Default())

	err := svc.NotifyNewLead(context.Background(), sampleLead())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "lead email") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestNotifyNewLeadSkipsWhenUnconfigured(t *testing.T) {
	svc := NewService(nil, "", logging.Default())

	if err := svc.NotifyNewLead(context.Background(), sampleLead()); err != nil {
		t.Fatalf("unconfigured service should be a no-op, got %v", err)
	}
}

func TestStubEmailSenderNeverFails(t *testing.T) {
	stub := NewStubEmailSender(logging.Default())
	if err := stub.Send(context.Background(), EmailMessage{To: "a@b.co", Subject: "x"}); err != nil {
		t.Fatalf("stub send failed: %v", err)
	}
}
