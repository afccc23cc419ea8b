package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetForBallot reads the poll inside the current transaction and holds a
	// share lock on it until the transaction ends.
	GetForBallot(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error)
	// Close marks an active poll closed. It reports whether the row changed.
	Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type CreatePollInput struct {
	Question      string
	Description   string
	Options       []string
	AllowMultiple bool
	Disclosure    domain.DisclosureMode
	EndsAt        *time.Time
	CreatedBy     uuid.UUID
}

type ListPollsInput struct {
	Page  int
	Query string
}

// PollState is the read model for a single voter looking at a poll.
type PollState struct {
	Poll           *domain.Poll  `json:"poll"`
	HasVoted       bool          `json:"has_voted"`
	ResultsVisible bool          `json:"results_visible"`
	Results        *domain.Tally `json:"results,omitempty"`
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	GetPollState(ctx context.Context, pollID, voterID uuid.UUID) (*PollState, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	ClosePoll(ctx context.Context, pollID, actorID uuid.UUID) (*domain.Poll, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
