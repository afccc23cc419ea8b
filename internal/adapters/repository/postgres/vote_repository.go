package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveBallot writes the ballot row, then its votes. Called outside a
// transaction it opens its own so the ballot is never partially stored.
func (r *voteRepository) SaveBallot(ctx context.Context, ballot *domain.Ballot) error {
	return NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		queryBallot := `
			INSERT INTO ballots (id, poll_id, voter_id, cast_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := q.ExecContext(ctx, queryBallot, ballot.ID, ballot.PollID, ballot.VoterID, ballot.CastAt); err != nil {
			return translateBallotError("failed to save ballot", err)
		}

		queryVote := `
			INSERT INTO votes (id, ballot_id, poll_id, option_id, voter_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, vote := range ballot.Votes() {
			_, err := q.ExecContext(ctx, queryVote, vote.ID, vote.BallotID, vote.PollID, vote.OptionID, vote.VoterID, vote.CreatedAt)
			if err != nil {
				return translateBallotError("failed to save vote", err)
			}
		}
		return nil
	})
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID, voterID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ballots WHERE poll_id = $1 AND voter_id = $2)`
	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, pollID, voterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return exists, nil
}

func (r *voteRepository) GetBallot(ctx context.Context, pollID, voterID uuid.UUID) (*domain.Ballot, error) {
	query := `
		SELECT b.id, b.cast_at, v.option_id
		FROM ballots b
		JOIN votes v ON v.ballot_id = b.id
		JOIN poll_options o ON o.id = v.option_id
		WHERE b.poll_id = $1 AND b.voter_id = $2
		ORDER BY o.ordinal
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pollID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}
	defer rows.Close()

	var ballot *domain.Ballot
	for rows.Next() {
		var (
			ballotID uuid.UUID
			optionID uuid.UUID
			b        domain.Ballot
		)
		if err := rows.Scan(&ballotID, &b.CastAt, &optionID); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if ballot == nil {
			b.ID = ballotID
			b.PollID = pollID
			b.VoterID = voterID
			ballot = &b
		}
		ballot.OptionIDs = append(ballot.OptionIDs, optionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballot votes: %w", err)
	}
	if ballot == nil {
		return nil, domain.ErrDidNotVote
	}
	return ballot, nil
}

func (r *voteRepository) CountVotes(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var (
			optionID uuid.UUID
			count    int64
		)
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}

// translateBallotError maps constraint failures onto the submission failure
// kinds so callers never see storage details.
func translateBallotError(msg string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrAlreadyVoted
	case isForeignKeyViolation(err):
		return domain.ErrInvalidOption
	case isConflict(err):
		return domain.ErrStorageConflict
	}
	return fmt.Errorf("%s: %w", msg, err)
}
