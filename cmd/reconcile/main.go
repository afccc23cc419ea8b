package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollvote/internal/config"
	"github.com/vncsmyrnk/pollvote/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db := &cfg.Database
	flag.StringVar(&db.Host, "db-host", db.Host, "Database host")
	flag.StringVar(&db.Port, "db-port", db.Port, "Database port")
	flag.StringVar(&db.User, "db-user", db.User, "Database user")
	flag.StringVar(&db.Password, "db-pass", db.Password, "Database password")
	flag.StringVar(&db.DBName, "db-name", db.DBName, "Database name")
	flag.Parse()

	conn, err := sql.Open("postgres", db.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		log.Fatal(err)
	}

	lifecycle := services.NewLifecycleService(postgres.NewPollRepository(conn), logger)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("starting poll reconciliation job")

	closed, err := lifecycle.ReconcileExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("Error reconciling polls: %v", err)
	}

	logger.Info("poll reconciliation completed", "closed", closed)
}
