package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type ballotKey struct {
	pollID  uuid.UUID
	voterID uuid.UUID
}

type txState struct {
	ballots []ballotKey
	votes   int
	polls   map[uuid.UUID]domain.Poll
}

type txKey struct{}

// Store keeps polls, ballots and votes in process. It applies the same unique
// keys as the SQL schema and serializes transactions with a single mutex.
type Store struct {
	mu      sync.Mutex
	polls   map[uuid.UUID]*domain.Poll
	ballots map[ballotKey]*domain.Ballot
	votes   []domain.Vote

	voteInsertHook func(vote domain.Vote) error
}

func NewStore() *Store {
	return &Store{
		polls:   make(map[uuid.UUID]*domain.Poll),
		ballots: make(map[ballotKey]*domain.Ballot),
	}
}

// SetVoteInsertHook installs a function called before each vote insert. A
// non-nil error aborts the insert as a failing store would.
func (s *Store) SetVoteInsertHook(hook func(vote domain.Vote) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voteInsertHook = hook
}

// VoteCount returns the number of stored vote rows for the poll and voter.
func (s *Store) VoteCount(pollID, voterID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.votes {
		if v.PollID == pollID && v.VoterID == voterID {
			n++
		}
	}
	return n
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := &txState{votes: len(s.votes), polls: make(map[uuid.UUID]domain.Poll)}
	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		s.rollback(state)
		return err
	}
	return nil
}

func (s *Store) rollback(state *txState) {
	for _, key := range state.ballots {
		delete(s.ballots, key)
	}
	s.votes = s.votes[:state.votes]
	for id, poll := range state.polls {
		p := poll
		s.polls[id] = &p
	}
}

// lock acquires the store mutex unless ctx already runs inside one of this
// store's transactions.
func (s *Store) lock(ctx context.Context) (*txState, func()) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state, func() {}
	}
	s.mu.Lock()
	return nil, s.mu.Unlock
}

func (s *Store) Save(ctx context.Context, poll *domain.Poll) error {
	_, unlock := s.lock(ctx)
	defer unlock()

	s.polls[poll.ID] = clonePoll(poll)
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	_, unlock := s.lock(ctx)
	defer unlock()

	poll, ok := s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) GetForBallot(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return s.GetByID(ctx, id)
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	return s.Search(ctx, limit, offset, "")
}

func (s *Store) Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error) {
	_, unlock := s.lock(ctx)
	defer unlock()

	ballots := make(map[uuid.UUID]int)
	for key := range s.ballots {
		ballots[key.pollID]++
	}

	query = strings.ToLower(query)
	var polls []*domain.Poll
	for _, poll := range s.polls {
		if query != "" && !strings.Contains(strings.ToLower(poll.Question), query) {
			continue
		}
		polls = append(polls, clonePoll(poll))
	}
	sort.Slice(polls, func(i, j int) bool {
		bi, bj := ballots[polls[i].ID], ballots[polls[j].ID]
		if bi != bj {
			return bi > bj
		}
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})

	if offset >= len(polls) {
		return nil, nil
	}
	polls = polls[offset:]
	if limit > 0 && len(polls) > limit {
		polls = polls[:limit]
	}
	return polls, nil
}

func (s *Store) Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	state, unlock := s.lock(ctx)
	defer unlock()

	poll, ok := s.polls[id]
	if !ok || poll.Status != domain.PollStatusActive {
		return false, nil
	}
	s.remember(state, poll)
	closedAt := at
	poll.Status = domain.PollStatusClosed
	poll.ClosedAt = &closedAt
	return true, nil
}

func (s *Store) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	state, unlock := s.lock(ctx)
	defer unlock()

	var closed int64
	for _, poll := range s.polls {
		if poll.Status != domain.PollStatusActive || !poll.Expired(now) {
			continue
		}
		s.remember(state, poll)
		closedAt := *poll.EndsAt
		poll.Status = domain.PollStatusClosed
		poll.ClosedAt = &closedAt
		closed++
	}
	return closed, nil
}

func (s *Store) remember(state *txState, poll *domain.Poll) {
	if state == nil {
		return
	}
	if _, ok := state.polls[poll.ID]; !ok {
		state.polls[poll.ID] = *clonePoll(poll)
	}
}

func (s *Store) SaveBallot(ctx context.Context, ballot *domain.Ballot) error {
	if _, ok := ctx.Value(txKey{}).(*txState); !ok {
		return s.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.SaveBallot(ctx, ballot)
		})
	}
	state, _ := s.lock(ctx)

	poll, ok := s.polls[ballot.PollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	key := ballotKey{pollID: ballot.PollID, voterID: ballot.VoterID}
	if _, exists := s.ballots[key]; exists {
		return domain.ErrAlreadyVoted
	}
	stored := *ballot
	stored.OptionIDs = append([]uuid.UUID(nil), ballot.OptionIDs...)
	s.ballots[key] = &stored
	state.ballots = append(state.ballots, key)

	for _, vote := range ballot.Votes() {
		if _, ok := poll.Option(vote.OptionID); !ok {
			return domain.ErrInvalidOption
		}
		for _, existing := range s.votes {
			if existing.PollID == vote.PollID && existing.VoterID == vote.VoterID && existing.OptionID == vote.OptionID {
				return domain.ErrAlreadyVoted
			}
		}
		if s.voteInsertHook != nil {
			if err := s.voteInsertHook(vote); err != nil {
				return err
			}
		}
		s.votes = append(s.votes, vote)
	}
	return nil
}

func (s *Store) HasVoted(ctx context.Context, pollID, voterID uuid.UUID) (bool, error) {
	_, unlock := s.lock(ctx)
	defer unlock()

	_, ok := s.ballots[ballotKey{pollID: pollID, voterID: voterID}]
	return ok, nil
}

func (s *Store) GetBallot(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Ballot, error) {
	_, unlock := s.lock(ctx)
	defer unlock()

	ballot, ok := s.ballots[ballotKey{pollID: pollID, voterID: voterID}]
	if !ok {
		return nil, domain.ErrDidNotVote
	}
	out := *ballot
	out.OptionIDs = append([]uuid.UUID(nil), ballot.OptionIDs...)
	if poll, ok := s.polls[pollID]; ok {
		sort.SliceStable(out.OptionIDs, func(i, j int) bool {
			oi, _ := poll.Option(out.OptionIDs[i])
			oj, _ := poll.Option(out.OptionIDs[j])
			return oi.Ordinal < oj.Ordinal
		})
	}
	return &out, nil
}

func (s *Store) CountVotes(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	_, unlock := s.lock(ctx)
	defer unlock()

	counts := make(map[uuid.UUID]int64)
	for _, v := range s.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func clonePoll(p *domain.Poll) *domain.Poll {
	cp := *p
	cp.Options = append([]domain.PollOption(nil), p.Options...)
	if p.EndsAt != nil {
		endsAt := *p.EndsAt
		cp.EndsAt = &endsAt
	}
	if p.ClosedAt != nil {
		closedAt := *p.ClosedAt
		cp.ClosedAt = &closedAt
	}
	return &cp
}

var (
	_ ports.PollRepository = (*Store)(nil)
	_ ports.VoteRepository = (*Store)(nil)
	_ ports.Transactor     = (*Store)(nil)
)
