package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
	"github.com/vncsmyrnk/pollvote/internal/core/services"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEngine struct {
	*services.Engine
	Store *memory.Store
	Clock *fakeClock
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	engine := services.NewEngine(services.Dependencies{
		Transactor: store,
		Polls:      store,
		Votes:      store,
		Clock:      clock,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &testEngine{Engine: engine, Store: store, Clock: clock}
}

type pollOpts struct {
	allowMultiple bool
	disclosure    domain.DisclosureMode
	endsIn        time.Duration
	creator       uuid.UUID
}

func (e *testEngine) createPoll(t *testing.T, question string, options []string, o pollOpts) *domain.Poll {
	t.Helper()

	input := ports.CreatePollInput{
		Question:      question,
		Options:       options,
		AllowMultiple: o.allowMultiple,
		Disclosure:    o.disclosure,
		CreatedBy:     o.creator,
	}
	if o.endsIn != 0 {
		endsAt := e.Clock.Now().Add(o.endsIn)
		input.EndsAt = &endsAt
	}
	poll, err := e.Polls.Create(context.Background(), input)
	require.NoError(t, err)
	return poll
}

func (e *testEngine) vote(t *testing.T, poll *domain.Poll, voterID uuid.UUID, options ...int) {
	t.Helper()

	ids := make([]uuid.UUID, 0, len(options))
	for _, idx := range options {
		ids = append(ids, poll.Options[idx].ID)
	}
	_, err := e.Votes.SubmitBallot(context.Background(), ports.SubmitBallotInput{
		PollID:    poll.ID,
		VoterID:   voterID,
		OptionIDs: ids,
	})
	require.NoError(t, err)
}
