package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

func TestResolveWinnersTieBreak(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	poll := e.createPoll(t, "Pick", []string{"A", "B", "C"}, pollOpts{disclosure: domain.DisclosureAlways})

	for i := 0; i < 5; i++ {
		e.vote(t, poll, uuid.New(), 1)
		e.vote(t, poll, uuid.New(), 0)
	}
	for i := 0; i < 3; i++ {
		e.vote(t, poll, uuid.New(), 2)
	}

	winners, err := e.Tallies.ResolveWinners(ctx, poll.ID)
	require.NoError(t, err)

	assert.False(t, winners.Final)
	assert.Equal(t, int64(5), winners.MaxVotes)
	require.Len(t, winners.Options, 2)
	assert.Equal(t, "A", winners.Options[0].Text)
	assert.Equal(t, "B", winners.Options[1].Text)
}

func TestResolveWinnersWithoutVotes(t *testing.T) {
	e := newTestEngine(t)
	poll := e.createPoll(t, "Empty", []string{"A", "B"}, pollOpts{})

	winners, err := e.Tallies.ResolveWinners(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Empty(t, winners.Options)
	assert.Zero(t, winners.MaxVotes)

	_, err = e.Tallies.ResolveWinners(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestBestVenueScenario(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	poll := e.createPoll(t, "Best venue", []string{"Hall", "Park"}, pollOpts{
		disclosure: domain.DisclosureOnClose,
		endsIn:     time.Hour,
	})
	e.vote(t, poll, uuid.New(), 0)
	e.vote(t, poll, uuid.New(), 1)
	e.vote(t, poll, uuid.New(), 1)

	e.Clock.Advance(2 * time.Hour)

	closed, err := e.Lifecycle.ReconcileExpired(ctx, e.Clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	_, err = e.Votes.SubmitBallot(ctx, ports.SubmitBallotInput{
		PollID:    poll.ID,
		VoterID:   uuid.New(),
		OptionIDs: []uuid.UUID{poll.Options[0].ID},
	})
	assert.ErrorIs(t, err, domain.ErrPollClosed)

	tally, err := e.Tallies.Tally(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tally.TotalVotes)
	assert.Equal(t, int64(1), tally.Options[0].VoteCount)
	assert.Equal(t, int64(2), tally.Options[1].VoteCount)

	winners, err := e.Tallies.ResolveWinners(ctx, poll.ID)
	require.NoError(t, err)
	assert.True(t, winners.Final)
	require.Len(t, winners.Options, 1)
	assert.Equal(t, "Park", winners.Options[0].Text)

	// Any voter sees on_close results once the poll is closed.
	visible, err := e.Tallies.VisibleWinners(ctx, poll.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, winners.Options, visible.Options)
}

func TestVisibleTallyAfterVote(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	poll := e.createPoll(t, "Secret until voted", []string{"A", "B"}, pollOpts{disclosure: domain.DisclosureAfterVote})
	voter := uuid.New()
	bystander := uuid.New()

	_, err := e.Tallies.VisibleTally(ctx, poll.ID, voter)
	assert.ErrorIs(t, err, domain.ErrResultsHidden)

	e.vote(t, poll, voter, 1)

	tally, err := e.Tallies.VisibleTally(ctx, poll.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Options[1].VoteCount)

	_, err = e.Tallies.VisibleTally(ctx, poll.ID, bystander)
	assert.ErrorIs(t, err, domain.ErrResultsHidden)
	_, err = e.Tallies.VisibleWinners(ctx, poll.ID, bystander)
	assert.ErrorIs(t, err, domain.ErrResultsHidden)
}

func TestVisibleTallyOnCloseHiddenWhileOpen(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	poll := e.createPoll(t, "Sealed", []string{"A", "B"}, pollOpts{disclosure: domain.DisclosureOnClose})
	voter := uuid.New()
	e.vote(t, poll, voter, 0)

	_, err := e.Tallies.VisibleTally(ctx, poll.ID, voter)
	assert.ErrorIs(t, err, domain.ErrResultsHidden)
}
