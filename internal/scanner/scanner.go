// Package scanner advances pending commitments that have passed their due date to overdue,
// records an alert for each and notifies the owner.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/AbdullahHad/WaadFinal/internal/messages"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/rs/zerolog"
)

// Scanner runs scan cycles on a fixed delay. Cycles never overlap.
type Scanner struct {
	store      repository.OverdueStore
	dispatcher *Dispatcher
	interval   time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithInterval sets the delay between the end of one cycle and the start of the next.
func WithInterval(d time.Duration) Option {
	return func(s *Scanner) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock replaces the wall clock used by Run.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// New creates a Scanner that runs every DefaultOverdueScanPeriod unless WithInterval says otherwise.
func New(store repository.OverdueStore, dispatcher *Dispatcher, log zerolog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		store:      store,
		dispatcher: dispatcher,
		interval:   constants.DefaultOverdueScanPeriod,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CycleResult summarises one scan cycle.
type CycleResult struct {
	Matched      int
	Updated      int
	Skipped      int
	Notified     int
	NotifyFailed int
}

// RunCycle performs one scan at the given time: query, mutate, persist the batch, dispatch.
// Nothing is written when the query fails, and nothing is dispatched when the batch fails.
func (s *Scanner) RunCycle(ctx context.Context, now time.Time) (CycleResult, error) {
	var result CycleResult

	candidates, err := s.store.FindOverdueCandidates(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to query overdue commitments: %w", err)
	}
	result.Matched = len(candidates)
	if len(candidates) == 0 {
		return result, nil
	}

	alerts := make([]models.Alert, 0, len(candidates))
	for i := range candidates {
		candidates[i].Status = models.CommitmentStatusOverdue
		alerts = append(alerts, models.Alert{
			CommitmentID: candidates[i].ID,
			Message:      messages.OverdueAlert(candidates[i].Title),
			CreatedAt:    now,
			Status:       models.AlertStatusNew,
		})
	}

	// Once started, the batch and its notifications finish even if shutdown begins.
	detached := context.WithoutCancel(ctx)

	batch, err := s.store.SaveOverdueBatch(detached, candidates, alerts)
	if err != nil {
		return result, fmt.Errorf("failed to persist overdue batch: %w", err)
	}
	result.Updated = len(batch.Updated)
	result.Skipped = len(batch.Skipped)

	for _, c := range batch.Skipped {
		s.log.Debug().Uint64("commitment_id", c.ID).Msg("Commitment changed concurrently, skipped this cycle")
	}

	alertFor := make(map[uint64]models.Alert, len(batch.Alerts))
	for _, a := range batch.Alerts {
		alertFor[a.CommitmentID] = a
	}

	for _, c := range batch.Updated {
		outcome := s.dispatcher.Dispatch(detached, c, alertFor[c.ID])
		s.log.Debug().Uint64("commitment_id", c.ID).Stringer("outcome", outcome).Msg("Commitment marked overdue")
		switch outcome {
		case OutcomeSent:
			result.Notified++
		case OutcomeFailed:
			result.NotifyFailed++
		}
	}

	return result, nil
}

// Run starts a cycle immediately and then one interval after each cycle completes,
// until ctx is cancelled. Cycle errors are logged and retried on the next tick.
func (s *Scanner) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.interval).Msg("Overdue scanner started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Overdue scanner stopped")
			return nil
		case <-timer.C:
		}

		s.tick(ctx)
		timer.Reset(s.interval)
	}
}

func (s *Scanner) tick(ctx context.Context) {
	now := s.now()
	started := time.Now()

	result, err := s.RunCycle(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Time("now", now).Msg("Overdue scan cycle failed")
		return
	}
	if result.Matched == 0 {
		s.log.Debug().Time("now", now).Msg("Overdue scan cycle found nothing")
		return
	}

	s.log.Info().
		Time("now", now).
		Int("matched", result.Matched).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("notified", result.Notified).
		Int("notify_failed", result.NotifyFailed).
		Dur("took", time.Since(started)).
		Msg("Overdue scan cycle completed")
}
