package domain

import "errors"

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrInvalidPollInput   = errors.New("invalid poll input")
	ErrPollClosed         = errors.New("poll is closed")
	ErrNoOptionsSelected  = errors.New("no options selected")
	ErrMultipleNotAllowed = errors.New("poll accepts a single option per ballot")
	ErrInvalidOption      = errors.New("invalid option for this poll")
	ErrAlreadyVoted       = errors.New("voter has already voted")
	ErrStorageConflict    = errors.New("storage conflict, retry the request")
	ErrDidNotVote         = errors.New("voter did not vote on this poll")
	ErrResultsHidden      = errors.New("results are not visible yet")
	ErrForbidden          = errors.New("operation not allowed for this voter")
	ErrInternal           = errors.New("internal server error")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrPollNotFound, "PollNotFound"},
	{ErrPollClosed, "PollClosed"},
	{ErrNoOptionsSelected, "NoOptionsSelected"},
	{ErrMultipleNotAllowed, "MultipleNotAllowed"},
	{ErrInvalidOption, "InvalidOption"},
	{ErrAlreadyVoted, "AlreadyVoted"},
	{ErrStorageConflict, "StorageConflict"},
	{ErrInvalidPollID, "InvalidPollID"},
	{ErrInvalidPollInput, "InvalidPollInput"},
	{ErrDidNotVote, "DidNotVote"},
	{ErrResultsHidden, "ResultsHidden"},
	{ErrForbidden, "Forbidden"},
}

// ErrorCode returns the stable failure kind reported to API callers.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "Internal"
}
