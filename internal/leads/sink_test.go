package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/brightlinelabs/leadchat/pkg/logging"
)

type fakeNotifier struct {
	sent []*Lead
	err  error
}

func (f *fakeNotifier) NotifyNewLead(ctx context.Context, lead *Lead) error {
	f.sent = append(f.sent, lead)
	return f.err
}

type failingRepo struct{}

func (failingRepo) CreateIfAbsent(ctx context.Context, cand Candidate) (*Lead, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingRepo) Exists(ctx context.Context, cand Candidate) (bool, error) {
	return false, errors.New("connection refused")
}

func TestSinkCapturePersistsAndNotifies(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &fakeNotifier{}
	sink := NewSink(repo, notifier, nil, logging.Default())

	cand := Candidate{Name: "Jane Doe", Email: "jane@doe.com", Phone: "5551234567"}
	lead, inserted, err := sink.Capture(context.Background(), cand, SourcePattern)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Fatal("expected insert")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].ID != lead.ID {
		t.Errorf("expected one notification for the new lead, got %v", notifier.sent)
	}
}

func TestSinkCaptureSkipsDuplicateAndDoesNotRenotify(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &fakeNotifier{}
	sink := NewSink(repo, notifier, nil, logging.Default())

	cand := Candidate{Name: "Jane Doe", Email: "jane@doe.com", Phone: "5551234567"}
	if _, inserted, err := sink.Capture(context.Background(), cand, SourcePattern); err != nil || !inserted {
		t.Fatalf("first capture failed: inserted=%v err=%v", inserted, err)
	}

	lead, inserted, err := sink.Capture(context.Background(), cand, SourceModel)
	if err != nil {
		t.Fatalf("duplicate capture errored: %v", err)
	}
	if inserted || lead != nil {
		t.Errorf("expected duplicate skip, got inserted=%v lead=%+v", inserted, lead)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("expected exactly one notification, got %d", len(notifier.sent))
	}
}

func TestSinkCaptureNotifyFailureIsNotFatal(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &fakeNotifier{err: errors.New("smtp: 535 authentication failed")}
	sink := NewSink(repo, notifier, nil, logging.Default())

	cand := Candidate{Name: "Jane Doe", Email: "jane@doe.com", Phone: "5551234567"}
	lead, inserted, err := sink.Capture(context.Background(), cand, SourcePattern)
	if err != nil {
		t.Fatalf("notification failure must not fail capture: %v", err)
	}
	if !inserted || lead == nil {
		t.Fatal("expected lead persisted despite notify failure")
	}

	// The record must still be present.
	exists, err := repo.Exists(context.Background(), cand)
	if err != nil || !exists {
		t.Errorf("expected persisted record, exists=%v err=%v", exists, err)
	}
}

func TestSinkCapturePersistenceErrorIsFatal(t *testing.T) {
	notifier := &fakeNotifier{}
	sink := NewSink(failingRepo{}, notifier, nil, logging.Default())

	cand := Candidate{Name: "Jane Doe", Email: "jane@doe.com", Phone: "5551234567"}
	if _, _, err := sink.Capture(context.Background(), cand, SourcePattern); err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification should be sent when persistence fails")
	}
}

func TestSinkCaptureRejectsPartialTriple(t *testing.T) {
	sink := NewSink(NewInMemoryRepository(), &fakeNotifier{}, nil, logging.Default())

	_, _, err := sink.Capture(context.Background(), Candidate{Email: "a@b.co"}, SourcePattern)
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}
