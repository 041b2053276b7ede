package leads

import (
	"context"

	"github.com/brightlinelabs/leadchat/internal/observability/metrics"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

// Notifier dispatches the new-lead notification.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead *Lead) error
}

// Sink is the single owner of the lead create path: it persists a
// candidate and dispatches the notification as one logical action,
// at most once per distinct triple.
type Sink struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewSink creates a lead sink. notifier and m may be nil.
func NewSink(repo Repository, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Sink {
	if repo == nil {
		panic("leads: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Sink{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Capture persists the candidate unless an identical triple exists, then
// sends the notification. Persistence errors are fatal to the caller;
// notification errors are logged and swallowed so a flaky mail path never
// blocks lead capture or the conversation turn.
func (s *Sink) Capture(ctx context.Context, cand Candidate, source string) (*Lead, bool, error) {
	if err := cand.Validate(); err != nil {
		return nil, false, err
	}

	lead, inserted, err := s.repo.CreateIfAbsent(ctx, cand)
	if err != nil {
		return nil, false, err
	}
	if !inserted {
		s.metrics.ObserveDuplicate(source)
		s.logger.Debug("lead already recorded, skipping",
			"name", cand.Name,
			"source", source,
		)
		return nil, false, nil
	}

	s.metrics.ObserveCaptured(source)
	s.logger.Info("lead captured",
		"id", lead.ID,
		"name", lead.Name,
		"source", source,
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(ctx, lead); err != nil {
			s.metrics.ObserveNotifyFailure()
			s.logger.Error("failed to send lead notification",
				"error", err,
				"id", lead.ID,
				"name", lead.Name,
			)
		}
	}

	return lead, true, nil
}
