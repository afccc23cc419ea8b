package services

import (
	"log/slog"

	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

const logModule = "voting-engine"

// Dependencies are the collaborators shared by the engine services.
type Dependencies struct {
	Transactor ports.Transactor
	Polls      ports.PollRepository
	Votes      ports.VoteRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = ports.SystemClock{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// Engine groups the services that make up the voting engine.
type Engine struct {
	Lifecycle *LifecycleService
	Polls     ports.PollService
	Votes     ports.VoteService
	Tallies   ports.TallyService
}

func NewEngine(deps Dependencies) *Engine {
	deps = deps.withDefaults()
	lifecycle := NewLifecycleService(deps.Polls, deps.Logger)
	tallies := NewTallyService(deps, lifecycle)
	return &Engine{
		Lifecycle: lifecycle,
		Polls:     NewPollService(deps, lifecycle),
		Votes:     NewVoteService(deps, lifecycle),
		Tallies:   tallies,
	}
}
