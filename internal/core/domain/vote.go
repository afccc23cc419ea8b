package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is the complete set of selections one voter made on one poll.
type Ballot struct {
	ID        uuid.UUID   `json:"id"`
	PollID    uuid.UUID   `json:"poll_id"`
	VoterID   uuid.UUID   `json:"voter_id"`
	OptionIDs []uuid.UUID `json:"option_ids"`
	CastAt    time.Time   `json:"cast_at"`
}

type Vote struct {
	ID        uuid.UUID `json:"id"`
	BallotID  uuid.UUID `json:"ballot_id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	VoterID   uuid.UUID `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Votes expands the ballot into one vote per selected option.
func (b *Ballot) Votes() []Vote {
	votes := make([]Vote, 0, len(b.OptionIDs))
	for _, optionID := range b.OptionIDs {
		votes = append(votes, Vote{
			ID:        uuid.New(),
			BallotID:  b.ID,
			PollID:    b.PollID,
			OptionID:  optionID,
			VoterID:   b.VoterID,
			CreatedAt: b.CastAt,
		})
	}
	return votes
}
