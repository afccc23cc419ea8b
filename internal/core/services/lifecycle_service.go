package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type LifecycleService struct {
	pollRepo ports.PollRepository
	logger   *slog.Logger
}

func NewLifecycleService(pollRepo ports.PollRepository, logger *slog.Logger) *LifecycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{
		pollRepo: pollRepo,
		logger:   logger,
	}
}

// ReconcileExpired closes every active poll whose end time is at or before
// now. Running it repeatedly yields the same state.
func (s *LifecycleService) ReconcileExpired(ctx context.Context, now time.Time) (int64, error) {
	closed, err := s.pollRepo.CloseExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to close expired polls: %w", err)
	}
	if closed > 0 {
		s.logger.Info("expired polls closed",
			"event", "poll_lifecycle_reconciled",
			"module", logModule,
			"layer", "application",
			"closed", closed,
		)
	}
	return closed, nil
}

// reconcile is the opportunistic form used ahead of reads and writes. Effective
// status already covers a stale row, so failures are only logged.
func (s *LifecycleService) reconcile(ctx context.Context, now time.Time) {
	if _, err := s.ReconcileExpired(ctx, now); err != nil {
		s.logger.Warn("opportunistic reconciliation failed",
			"event", "poll_lifecycle_reconcile_failed",
			"module", logModule,
			"layer", "application",
			"error", err.Error(),
		)
	}
}

// Run reconciles on every tick until ctx is cancelled.
func (s *LifecycleService) Run(ctx context.Context, interval time.Duration, clock ports.Clock) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcile(ctx, clock.Now())
		}
	}
}

var _ ports.LifecycleService = (*LifecycleService)(nil)
