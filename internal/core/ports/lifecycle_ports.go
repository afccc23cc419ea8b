package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

type LifecycleService interface {
	ReconcileExpired(ctx context.Context, now time.Time) (int64, error)
}

type TallyService interface {
	Tally(ctx context.Context, pollID uuid.UUID) (*domain.Tally, error)
	ResolveWinners(ctx context.Context, pollID uuid.UUID) (*domain.Winners, error)
	// VisibleTally and VisibleWinners apply the poll's disclosure mode for
	// voterID and return domain.ErrResultsHidden when results are withheld.
	VisibleTally(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Tally, error)
	VisibleWinners(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Winners, error)
}
