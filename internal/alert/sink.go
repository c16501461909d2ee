package alert

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trendsinusa/dealsignals/internal/alert/domain"
	alertrepo "github.com/trendsinusa/dealsignals/internal/alert/repository"
)

// Sink writes governance alerts into the alert log with dedup: within the
// dedupe window, an identical unresolved message is recorded at most once.
type Sink struct {
	repo alertrepo.Repository
	nowF func() time.Time
}

// NewSink returns a Sink persisting to repo.
func NewSink(repo alertrepo.Repository) *Sink {
	return &Sink{repo: repo, nowF: func() time.Time { return time.Now().UTC() }}
}

// RecordOnce writes one governance alert unless an unresolved alert with the
// identical rendered message already exists inside dedupeWindow. The alert is
// noisy (hidden from human feeds) unless severity is CRITICAL, so suspensions
// surface to operators while per-request bookkeeping does not.
func (s *Sink) RecordOnce(ctx context.Context, partnerKey string, rule Rule, action string, severity domain.Severity, details string, dedupeWindow time.Duration) error {
	if s == nil || s.repo == nil {
		return nil
	}
	now := s.nowF()
	message := RenderGovernanceMessage(partnerKey, rule, action, details)

	exists, err := s.repo.ExistsUnresolvedMessage(ctx, message, now.Add(-dedupeWindow))
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.repo.Create(ctx, &domain.Alert{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Type:      GovernanceType,
		Severity:  severity,
		Noisy:     severity != domain.SeverityCritical,
		Message:   message,
	})
}
