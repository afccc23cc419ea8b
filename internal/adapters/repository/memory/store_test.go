package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

func newPoll(question string, createdAt time.Time, options ...string) *domain.Poll {
	poll := &domain.Poll{
		ID:         uuid.New(),
		Question:   question,
		Disclosure: domain.DisclosureAlways,
		Status:     domain.PollStatusActive,
		CreatedAt:  createdAt,
	}
	for i, text := range options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:      uuid.New(),
			PollID:  poll.ID,
			Text:    text,
			Ordinal: i + 1,
		})
	}
	return poll
}

func ballotFor(poll *domain.Poll, voterID uuid.UUID, options ...int) *domain.Ballot {
	ballot := &domain.Ballot{ID: uuid.New(), PollID: poll.ID, VoterID: voterID}
	for _, idx := range options {
		ballot.OptionIDs = append(ballot.OptionIDs, poll.Options[idx].ID)
	}
	return ballot
}

func TestSaveBallotEnforcesOneBallotPerVoter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	poll := newPoll("Q", time.Now(), "A", "B")
	require.NoError(t, store.Save(ctx, poll))
	voter := uuid.New()

	require.NoError(t, store.SaveBallot(ctx, ballotFor(poll, voter, 0)))
	err := store.SaveBallot(ctx, ballotFor(poll, voter, 1))
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	assert.Equal(t, 1, store.VoteCount(poll.ID, voter))
	counts, err := store.CountVotes(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[poll.Options[0].ID])
	assert.Zero(t, counts[poll.Options[1].ID])
}

func TestSaveBallotRollsBackForeignOption(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	poll := newPoll("Q", time.Now(), "A", "B")
	other := newPoll("Other", time.Now(), "X", "Y")
	require.NoError(t, store.Save(ctx, poll))
	require.NoError(t, store.Save(ctx, other))
	voter := uuid.New()

	ballot := ballotFor(poll, voter, 0)
	ballot.OptionIDs = append(ballot.OptionIDs, other.Options[0].ID)

	err := store.SaveBallot(ctx, ballot)
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	voted, err := store.HasVoted(ctx, poll.ID, voter)
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Zero(t, store.VoteCount(poll.ID, voter))
}

func TestWithinTransactionRestoresClosedPolls(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now()
	endsAt := now.Add(-time.Minute)
	poll := newPoll("Q", now.Add(-time.Hour), "A", "B")
	poll.EndsAt = &endsAt
	require.NoError(t, store.Save(ctx, poll))

	abort := errors.New("abort")
	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		closed, err := store.CloseExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), closed)
		return abort
	})
	assert.ErrorIs(t, err, abort)

	stored, err := store.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PollStatusActive, stored.Status)
	assert.Nil(t, stored.ClosedAt)
}

func TestGetBallotOrdersByOrdinal(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	poll := newPoll("Q", time.Now(), "A", "B", "C")
	poll.AllowMultiple = true
	require.NoError(t, store.Save(ctx, poll))
	voter := uuid.New()

	_, err := store.GetBallot(ctx, poll.ID, voter)
	assert.ErrorIs(t, err, domain.ErrDidNotVote)

	require.NoError(t, store.SaveBallot(ctx, ballotFor(poll, voter, 2, 0)))

	ballot, err := store.GetBallot(ctx, poll.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{poll.Options[0].ID, poll.Options[2].ID}, ballot.OptionIDs)
}

func TestSearchOrdersByBallotsThenRecency(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	older := newPoll("Lunch spot", base, "A", "B")
	newer := newPoll("Dinner spot", base.Add(time.Hour), "A", "B")
	popular := newPoll("Lunch time", base.Add(-time.Hour), "A", "B")
	for _, p := range []*domain.Poll{older, newer, popular} {
		require.NoError(t, store.Save(ctx, p))
	}
	require.NoError(t, store.SaveBallot(ctx, ballotFor(popular, uuid.New(), 0)))

	polls, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, polls, 3)
	assert.Equal(t, []uuid.UUID{popular.ID, newer.ID, older.ID}, []uuid.UUID{polls[0].ID, polls[1].ID, polls[2].ID})

	found, err := store.Search(ctx, 10, 0, "LUNCH")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, popular.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)

	page, err := store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, newer.ID, page[0].ID)
}

func TestGetByIDReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	poll := newPoll("Q", time.Now(), "A", "B")
	require.NoError(t, store.Save(ctx, poll))

	got, err := store.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	got.Options[0].Text = "changed"

	again, err := store.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Options[0].Text)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
