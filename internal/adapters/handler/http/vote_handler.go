package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	OptionIDs []uuid.UUID `json:"option_ids"`
	// OptionID is accepted for single-choice clients.
	OptionID uuid.UUID `json:"option_id"`
}

// SubmitBallot godoc
// @Summary      Submits a ballot
// @Description  Records the caller's ballot. Failure codes: PollNotFound, PollClosed, NoOptionsSelected, MultipleNotAllowed, InvalidOption, AlreadyVoted, StorageConflict.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id      path      string       true  "Poll ID"
// @Param        ballot  body      voteRequest  true  "Selected options"
// @Success      201     {object}  domain.Ballot
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /api/polls/{id}/votes [post]
func (h *VoteHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body", "InvalidRequest")
		return
	}
	optionIDs := req.OptionIDs
	if req.OptionID != uuid.Nil {
		optionIDs = append(optionIDs, req.OptionID)
	}

	ballot, err := h.service.SubmitBallot(r.Context(), ports.SubmitBallotInput{
		PollID:    pollID,
		VoterID:   voterID,
		OptionIDs: optionIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ballot)
}

// GetMyVote godoc
// @Summary      Gets the caller's ballot
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Ballot
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/my-vote [get]
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	ballot, err := h.service.GetMyBallot(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ballot)
}
