package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Question      string     `json:"question"`
	Description   string     `json:"description"`
	Options       []string   `json:"options"`
	AllowMultiple bool       `json:"allow_multiple"`
	Disclosure    string     `json:"disclosure"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Creates an active poll owned by the calling voter. Options receive ordinals in the given order.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        poll  body      createPollRequest  true  "Poll definition"
// @Success      201   {object}  domain.Poll
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	voterID, _ := VoterFromContext(r.Context())

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body", "InvalidRequest")
		return
	}

	input := ports.CreatePollInput{
		Question:      req.Question,
		Description:   req.Description,
		Options:       req.Options,
		AllowMultiple: req.AllowMultiple,
		Disclosure:    domain.DisclosureMode(req.Disclosure),
		EndsAt:        req.EndsAt,
		CreatedBy:     voterID,
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

// ListPolls godoc
// @Summary      Lists polls
// @Description  Lists polls ordered by participation, optionally filtered by question text.
// @Tags         polls
// @Produce      json
// @Param        page  query     int     false  "Page number, starting at 1"
// @Param        q     query     string  false  "Search text"
// @Success      200   {array}   domain.Poll
// @Router       /api/polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{
		Page:  page,
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, polls)
}

// GetPoll godoc
// @Summary      Gets the poll state for the caller
// @Description  Returns the poll with its effective status, whether the caller voted and, when the disclosure mode allows it, the tally.
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  ports.PollState
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	state, err := h.service.GetPollState(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// ClosePoll godoc
// @Summary      Closes a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Poll
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/close [post]
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	poll, err := h.service.ClosePoll(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func pollIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrInvalidPollID)
		return uuid.Nil, false
	}
	return pollID, true
}
