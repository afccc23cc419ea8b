package domain

import (
	"sort"

	"github.com/google/uuid"
)

type PollOptionStats struct {
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type OptionTally struct {
	Option PollOption `json:"option"`
	PollOptionStats
}

type Tally struct {
	PollID     uuid.UUID     `json:"poll_id"`
	Options    []OptionTally `json:"options"`
	TotalVotes int64         `json:"total_votes"`
}

type Winners struct {
	PollID   uuid.UUID    `json:"poll_id"`
	Final    bool         `json:"final"`
	MaxVotes int64        `json:"max_votes"`
	Options  []PollOption `json:"winners"`
}

// NewTally builds a tally covering every option, zero-filled from counts, in
// ordinal order.
func NewTally(poll *Poll, counts map[uuid.UUID]int64) *Tally {
	t := &Tally{PollID: poll.ID, Options: make([]OptionTally, 0, len(poll.Options))}
	for _, opt := range poll.Options {
		t.TotalVotes += counts[opt.ID]
	}
	for _, opt := range poll.Options {
		count := counts[opt.ID]
		percentage := 0.0
		if t.TotalVotes > 0 {
			percentage = (float64(count) / float64(t.TotalVotes)) * 100
		}
		t.Options = append(t.Options, OptionTally{
			Option:          opt,
			PollOptionStats: PollOptionStats{VoteCount: count, Percentage: percentage},
		})
	}
	sort.SliceStable(t.Options, func(i, j int) bool {
		return t.Options[i].Option.Ordinal < t.Options[j].Option.Ordinal
	})
	return t
}

// Winners returns every option tied at the maximum count, in ordinal order.
// A tally without votes has no winner.
func (t *Tally) Winners() (int64, []PollOption) {
	var max int64
	for _, ot := range t.Options {
		if ot.VoteCount > max {
			max = ot.VoteCount
		}
	}
	winners := []PollOption{}
	if max == 0 {
		return 0, winners
	}
	for _, ot := range t.Options {
		if ot.VoteCount == max {
			winners = append(winners, ot.Option)
		}
	}
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].Ordinal < winners[j].Ordinal
	})
	return max, winners
}
