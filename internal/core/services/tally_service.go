package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type tallyService struct {
	deps      Dependencies
	lifecycle *LifecycleService
}

func NewTallyService(deps Dependencies, lifecycle *LifecycleService) ports.TallyService {
	deps = deps.withDefaults()
	if lifecycle == nil {
		lifecycle = NewLifecycleService(deps.Polls, deps.Logger)
	}
	return &tallyService{
		deps:      deps,
		lifecycle: lifecycle,
	}
}

func (s *tallyService) Tally(ctx context.Context, pollID uuid.UUID) (*domain.Tally, error) {
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return s.tally(ctx, poll)
}

func (s *tallyService) ResolveWinners(ctx context.Context, pollID uuid.UUID) (*domain.Winners, error) {
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return s.winners(ctx, poll, now)
}

func (s *tallyService) VisibleTally(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Tally, error) {
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.visiblePoll(ctx, pollID, voterID, now)
	if err != nil {
		return nil, err
	}
	return s.tally(ctx, poll)
}

func (s *tallyService) VisibleWinners(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Winners, error) {
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.visiblePoll(ctx, pollID, voterID, now)
	if err != nil {
		return nil, err
	}
	return s.winners(ctx, poll, now)
}

func (s *tallyService) visiblePoll(ctx context.Context, pollID, voterID uuid.UUID, now time.Time) (*domain.Poll, error) {
	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	hasVoted, err := s.deps.Votes.HasVoted(ctx, pollID, voterID)
	if err != nil {
		return nil, err
	}
	if !poll.ResultsVisible(now, hasVoted) {
		return nil, domain.ErrResultsHidden
	}
	return poll, nil
}

func (s *tallyService) tally(ctx context.Context, poll *domain.Poll) (*domain.Tally, error) {
	counts, err := s.deps.Votes.CountVotes(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	return domain.NewTally(poll, counts), nil
}

func (s *tallyService) winners(ctx context.Context, poll *domain.Poll, now time.Time) (*domain.Winners, error) {
	tally, err := s.tally(ctx, poll)
	if err != nil {
		return nil, err
	}
	max, options := tally.Winners()
	return &domain.Winners{
		PollID:   poll.ID,
		Final:    poll.IsClosed(now),
		MaxVotes: max,
		Options:  options,
	}, nil
}
