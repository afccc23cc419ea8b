package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type voteService struct {
	deps      Dependencies
	lifecycle *LifecycleService
}

func NewVoteService(deps Dependencies, lifecycle *LifecycleService) ports.VoteService {
	deps = deps.withDefaults()
	if lifecycle == nil {
		lifecycle = NewLifecycleService(deps.Polls, deps.Logger)
	}
	return &voteService{
		deps:      deps,
		lifecycle: lifecycle,
	}
}

// SubmitBallot records one complete ballot for a voter. Validation, the
// already-voted check and the inserts share a transaction; the store's unique
// keys settle races between concurrent submissions.
func (s *voteService) SubmitBallot(ctx context.Context, input ports.SubmitBallotInput) (*domain.Ballot, error) {
	logger := s.deps.Logger
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	ballot := &domain.Ballot{
		ID:        uuid.New(),
		PollID:    input.PollID,
		VoterID:   input.VoterID,
		OptionIDs: uniqueOptionIDs(input.OptionIDs),
		CastAt:    now,
	}

	err := s.deps.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		poll, err := s.deps.Polls.GetForBallot(ctx, input.PollID)
		if err != nil {
			return err
		}
		if err := validateBallot(poll, ballot.OptionIDs, now); err != nil {
			return err
		}

		hasVoted, err := s.deps.Votes.HasVoted(ctx, input.PollID, input.VoterID)
		if err != nil {
			return err
		}
		if hasVoted {
			return domain.ErrAlreadyVoted
		}

		return s.deps.Votes.SaveBallot(ctx, ballot)
	})
	if err != nil {
		attrs := []any{
			"event", "voting_ballot_rejected",
			"module", logModule,
			"layer", "application",
			"poll_id", input.PollID.String(),
			"voter_id", input.VoterID.String(),
			"code", domain.ErrorCode(err),
		}
		if isSubmissionFailure(err) {
			logger.Warn("ballot rejected", attrs...)
		} else {
			logger.Error("ballot submission failed", append(attrs, "error", err.Error())...)
		}
		return nil, err
	}

	logger.Info("ballot accepted",
		"event", "voting_ballot_accepted",
		"module", logModule,
		"layer", "application",
		"poll_id", ballot.PollID.String(),
		"voter_id", ballot.VoterID.String(),
		"ballot_id", ballot.ID.String(),
		"options", len(ballot.OptionIDs),
	)
	return ballot, nil
}

func (s *voteService) GetMyBallot(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Ballot, error) {
	if _, err := s.deps.Polls.GetByID(ctx, pollID); err != nil {
		return nil, err
	}
	return s.deps.Votes.GetBallot(ctx, pollID, voterID)
}

// validateBallot applies the submission preconditions in their reporting
// order. The already-voted check is left to the caller.
func validateBallot(poll *domain.Poll, optionIDs []uuid.UUID, now time.Time) error {
	if poll.IsClosed(now) {
		return domain.ErrPollClosed
	}
	if len(optionIDs) == 0 {
		return domain.ErrNoOptionsSelected
	}
	if !poll.AllowMultiple && len(optionIDs) > 1 {
		return domain.ErrMultipleNotAllowed
	}
	for _, id := range optionIDs {
		if _, ok := poll.Option(id); !ok {
			return domain.ErrInvalidOption
		}
	}
	return nil
}

func uniqueOptionIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isSubmissionFailure(err error) bool {
	for _, target := range []error{
		domain.ErrPollNotFound,
		domain.ErrPollClosed,
		domain.ErrNoOptionsSelected,
		domain.ErrMultipleNotAllowed,
		domain.ErrInvalidOption,
		domain.ErrAlreadyVoted,
		domain.ErrStorageConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
