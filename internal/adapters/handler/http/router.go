package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/vncsmyrnk/pollvote/docs"
)

const requestTimeout = 15 * time.Second

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, resultHandler *ResultHandler, identity *VoterIdentity, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if identity != nil {
			r.Use(identity.Resolve)
		}

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.With(RequireVoter).Post("/", pollHandler.CreatePoll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.Get("/results", resultHandler.GetResults)
				r.Get("/winners", resultHandler.GetWinners)

				r.Group(func(r chi.Router) {
					r.Use(RequireVoter)
					r.Post("/close", pollHandler.ClosePoll)
					r.Post("/votes", voteHandler.SubmitBallot)
					r.Get("/my-vote", voteHandler.GetMyVote)
				})
			})
		})
	})

	return r
}
