package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollvote/internal/core/ports"
)

type ResultHandler struct {
	service ports.TallyService
}

func NewResultHandler(service ports.TallyService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Gets the tally
// @Description  Vote count per option in ordinal order. Returns 403 while the poll's disclosure mode hides results from the caller.
// @Tags         results
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Tally
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/results [get]
func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	tally, err := h.service.VisibleTally(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tally)
}

// GetWinners godoc
// @Summary      Gets the co-winning options
// @Description  Options tied at the highest count, in ordinal order. Empty when no votes were cast. final is false while the poll is still open.
// @Tags         results
// @Produce      json
// @Param        id   path      string  true  "Poll ID"
// @Success      200  {object}  domain.Winners
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id}/winners [get]
func (h *ResultHandler) GetWinners(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	voterID, _ := VoterFromContext(r.Context())

	winners, err := h.service.VisibleWinners(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, winners)
}
