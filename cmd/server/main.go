package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollvote/internal/config"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
	"github.com/vncsmyrnk/pollvote/internal/core/services"
)

// @title        Poll Voting API
// @version      1.0
// @description  Ballot submission, tallies and results disclosure for polls.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	engine := services.NewEngine(services.Dependencies{
		Transactor: postgres.NewTransactor(db),
		Polls:      postgres.NewPollRepository(db),
		Votes:      postgres.NewVoteRepository(db),
		Clock:      ports.SystemClock{},
		Logger:     logger,
	})

	handler := http.NewHandler(
		http.NewPollHandler(engine.Polls),
		http.NewVoteHandler(engine.Votes),
		http.NewResultHandler(engine.Tallies),
		http.NewVoterIdentity(cfg.JWTSecret),
		cfg.Server.AllowedOrigins,
	)
	server := &stdhttp.Server{Addr: cfg.Server.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ReconcileInterval > 0 {
		go engine.Lifecycle.Run(ctx, cfg.ReconcileInterval, ports.SystemClock{})
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
