package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

type VoteRepository interface {
	// SaveBallot inserts the ballot and one vote per option as a unit.
	SaveBallot(ctx context.Context, ballot *domain.Ballot) error
	HasVoted(ctx context.Context, pollID, voterID uuid.UUID) (bool, error)
	GetBallot(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Ballot, error)
	CountVotes(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

// Transactor runs fn in a single store transaction. Repositories called with
// the ctx passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SubmitBallotInput struct {
	PollID    uuid.UUID
	VoterID   uuid.UUID
	OptionIDs []uuid.UUID
}

type VoteService interface {
	SubmitBallot(ctx context.Context, input SubmitBallotInput) (*domain.Ballot, error)
	GetMyBallot(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Ballot, error)
}
