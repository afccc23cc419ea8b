package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const pollsPageSize = 20

type pollService struct {
	deps      Dependencies
	lifecycle *LifecycleService
}

func NewPollService(deps Dependencies, lifecycle *LifecycleService) ports.PollService {
	deps = deps.withDefaults()
	if lifecycle == nil {
		lifecycle = NewLifecycleService(deps.Polls, deps.Logger)
	}
	return &pollService{
		deps:      deps,
		lifecycle: lifecycle,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidPollInput)
	}
	if len(input.Options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", domain.ErrInvalidPollInput)
	}

	disclosure := input.Disclosure
	if disclosure == "" {
		disclosure = domain.DisclosureAfterVote
	}
	if !disclosure.Valid() {
		return nil, fmt.Errorf("%w: unknown disclosure mode %q", domain.ErrInvalidPollInput, disclosure)
	}

	now := s.deps.Clock.Now()
	if input.EndsAt != nil && !input.EndsAt.After(now) {
		return nil, fmt.Errorf("%w: end time must be in the future", domain.ErrInvalidPollInput)
	}

	pollID := uuid.New()
	poll := &domain.Poll{
		ID:            pollID,
		Question:      question,
		Description:   strings.TrimSpace(input.Description),
		AllowMultiple: input.AllowMultiple,
		Disclosure:    disclosure,
		Status:        domain.PollStatusActive,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		EndsAt:        input.EndsAt,
	}

	for _, optText := range input.Options {
		optText = strings.TrimSpace(optText)
		if optText == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        uuid.New(),
			PollID:    pollID,
			Text:      optText,
			Ordinal:   len(poll.Options) + 1,
			CreatedAt: now,
		})
	}

	if len(poll.Options) < 2 {
		return nil, fmt.Errorf("%w: at least two valid options are required", domain.ErrInvalidPollInput)
	}

	if err := s.deps.Polls.Save(ctx, poll); err != nil {
		return nil, err
	}

	s.deps.Logger.Info("poll created",
		"event", "poll_created",
		"module", logModule,
		"layer", "application",
		"poll_id", poll.ID.String(),
		"options", len(poll.Options),
		"disclosure", string(poll.Disclosure),
	)
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return poll.Effective(now), nil
}

// GetPollState returns the poll as seen by voterID: effective status, whether
// they voted and the tally when the disclosure mode allows it.
func (s *pollService) GetPollState(ctx context.Context, pollID, voterID uuid.UUID) (*ports.PollState, error) {
	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	var (
		hasVoted bool
		counts   map[uuid.UUID]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hasVoted, err = s.deps.Votes.HasVoted(gctx, pollID, voterID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.deps.Votes.CountVotes(gctx, pollID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state := &ports.PollState{
		Poll:           poll.Effective(now),
		HasVoted:       hasVoted,
		ResultsVisible: poll.ResultsVisible(now, hasVoted),
	}
	if state.ResultsVisible {
		state.Results = domain.NewTally(poll, counts)
	}
	return state, nil
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pollsPageSize

	now := s.deps.Clock.Now()
	s.lifecycle.reconcile(ctx, now)

	var (
		polls []*domain.Poll
		err   error
	)
	if q := strings.TrimSpace(input.Query); q != "" {
		polls, err = s.deps.Polls.Search(ctx, pollsPageSize, offset, q)
	} else {
		polls, err = s.deps.Polls.List(ctx, pollsPageSize, offset)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Poll, 0, len(polls))
	for _, p := range polls {
		out = append(out, p.Effective(now))
	}
	return out, nil
}

// ClosePoll closes the poll on behalf of its creator. Closing an already
// closed poll succeeds without changes.
func (s *pollService) ClosePoll(ctx context.Context, pollID, actorID uuid.UUID) (*domain.Poll, error) {
	now := s.deps.Clock.Now()

	poll, err := s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.CreatedBy != actorID {
		return nil, domain.ErrForbidden
	}

	changed, err := s.deps.Polls.Close(ctx, pollID, now)
	if err != nil {
		return nil, err
	}
	if changed {
		s.deps.Logger.Info("poll closed",
			"event", "poll_closed",
			"module", logModule,
			"layer", "application",
			"poll_id", pollID.String(),
			"actor_id", actorID.String(),
		)
	}

	poll, err = s.deps.Polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return poll.Effective(now), nil
}
