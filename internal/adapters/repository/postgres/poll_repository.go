package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

const pollColumns = `p.id, p.question, p.description, p.allow_multiple, p.disclosure, p.status,
		p.created_by, p.created_at, p.ends_at, p.closed_at`

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	return NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		queryPoll := `
			INSERT INTO polls (id, question, description, allow_multiple, disclosure, status, created_by, created_at, ends_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := q.ExecContext(ctx, queryPoll,
			poll.ID, poll.Question, poll.Description, poll.AllowMultiple, string(poll.Disclosure),
			string(poll.Status), poll.CreatedBy, poll.CreatedAt, poll.EndsAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert poll: %w", err)
		}

		queryOption := `
			INSERT INTO poll_options (id, poll_id, text, ordinal, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, opt := range poll.Options {
			_, err = q.ExecContext(ctx, queryOption, opt.ID, opt.PollID, opt.Text, opt.Ordinal, opt.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert option: %w", err)
			}
		}
		return nil
	})
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return r.get(ctx, id, "")
}

func (r *pollRepository) GetForBallot(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return r.get(ctx, id, "FOR SHARE")
}

func (r *pollRepository) get(ctx context.Context, id uuid.UUID, lock string) (*domain.Poll, error) {
	q := conn(ctx, r.db)
	queryPoll := `SELECT ` + pollColumns + ` FROM polls p WHERE p.id = $1 ` + lock

	poll, err := scanPoll(q.QueryRowContext(ctx, queryPoll, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	options, err := r.fetchOptions(ctx, q, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return poll, nil
}

func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls p
		LEFT JOIN ballots b ON b.poll_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(b.id) DESC, p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryPolls(ctx, query, limit, offset)
}

func (r *pollRepository) Search(ctx context.Context, limit, offset int, q string) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls p
		LEFT JOIN ballots b ON b.poll_id = p.id
		WHERE p.question ILIKE $1
		GROUP BY p.id
		ORDER BY COUNT(b.id) DESC, p.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPolls(ctx, query, "%"+q+"%", limit, offset)
}

func (r *pollRepository) Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE polls SET status = 'closed', closed_at = $2 WHERE id = $1 AND status = 'active'`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to close poll %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to close poll %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *pollRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE polls
		SET status = 'closed', closed_at = ends_at
		WHERE status = 'active' AND ends_at IS NOT NULL AND ends_at <= $1
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to close expired polls: %w", err)
	}
	return res.RowsAffected()
}

func (r *pollRepository) queryPolls(ctx context.Context, query string, args ...any) ([]*domain.Poll, error) {
	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	var polls []*domain.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	rows.Close()

	for _, poll := range polls {
		options, err := r.fetchOptions(ctx, q, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}
	return polls, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, q executor, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT id, poll_id, text, ordinal, created_at
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY ordinal
	`
	rows, err := q.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Ordinal, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*domain.Poll, error) {
	var (
		poll       domain.Poll
		disclosure string
		status     string
	)
	err := row.Scan(
		&poll.ID, &poll.Question, &poll.Description, &poll.AllowMultiple, &disclosure, &status,
		&poll.CreatedBy, &poll.CreatedAt, &poll.EndsAt, &poll.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	poll.Disclosure = domain.DisclosureMode(disclosure)
	poll.Status = domain.PollStatus(status)
	return &poll, nil
}
