package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test")
	}

	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, Migrate(ctx, db))
	return db
}

func testPoll(question string, createdAt time.Time, options ...string) *domain.Poll {
	createdAt = createdAt.UTC().Truncate(time.Microsecond)
	poll := &domain.Poll{
		ID:         uuid.New(),
		Question:   question,
		Disclosure: domain.DisclosureAlways,
		Status:     domain.PollStatusActive,
		CreatedBy:  uuid.New(),
		CreatedAt:  createdAt,
	}
	for i, text := range options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        uuid.New(),
			PollID:    poll.ID,
			Text:      text,
			Ordinal:   i + 1,
			CreatedAt: createdAt,
		})
	}
	return poll
}

func testBallot(poll *domain.Poll, voterID uuid.UUID, options ...int) *domain.Ballot {
	ballot := &domain.Ballot{
		ID:      uuid.New(),
		PollID:  poll.ID,
		VoterID: voterID,
		CastAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, idx := range options {
		ballot.OptionIDs = append(ballot.OptionIDs, poll.Options[idx].ID)
	}
	return ballot
}

func countRows(t *testing.T, db *sql.DB, table string, pollID, voterID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE poll_id = $1 AND voter_id = $2`, pollID, voterID).Scan(&n)
	require.NoError(t, err)
	return n
}
