package domain

import "time"

// CanSeeResults decides whether tallies may be shown to a voter. hasVoted
// refers to the requesting voter and this poll only, so the answer must be
// computed per request.
func CanSeeResults(mode DisclosureMode, closed, hasVoted bool) bool {
	switch mode {
	case DisclosureAlways:
		return true
	case DisclosureAfterVote:
		return hasVoted
	case DisclosureOnClose:
		return closed
	}
	return false
}

func (p *Poll) ResultsVisible(now time.Time, hasVoted bool) bool {
	return CanSeeResults(p.Disclosure, p.IsClosed(now), hasVoted)
}
