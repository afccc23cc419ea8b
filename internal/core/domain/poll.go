package domain

import (
	"time"

	"github.com/google/uuid"
)

type DisclosureMode string

const (
	DisclosureAlways    DisclosureMode = "always"
	DisclosureAfterVote DisclosureMode = "after_vote"
	DisclosureOnClose   DisclosureMode = "on_close"
)

func (m DisclosureMode) Valid() bool {
	switch m {
	case DisclosureAlways, DisclosureAfterVote, DisclosureOnClose:
		return true
	}
	return false
}

type PollStatus string

const (
	PollStatusActive PollStatus = "active"
	PollStatusClosed PollStatus = "closed"
)

type Poll struct {
	ID            uuid.UUID      `json:"id"`
	Question      string         `json:"question"`
	Description   string         `json:"description,omitempty"`
	AllowMultiple bool           `json:"allow_multiple"`
	Disclosure    DisclosureMode `json:"disclosure"`
	Status        PollStatus     `json:"status"`
	Options       []PollOption   `json:"options"`
	CreatedBy     uuid.UUID      `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	EndsAt        *time.Time     `json:"ends_at,omitempty"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
}

type PollOption struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Text      string    `json:"text"`
	Ordinal   int       `json:"ordinal"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the poll's end time has been reached.
func (p *Poll) Expired(now time.Time) bool {
	return p.EndsAt != nil && !p.EndsAt.After(now)
}

// EffectiveStatus is the persisted status corrected by the end time. The
// stored status may lag until the lifecycle reconciler runs.
func (p *Poll) EffectiveStatus(now time.Time) PollStatus {
	if p.Status == PollStatusClosed || p.Expired(now) {
		return PollStatusClosed
	}
	return PollStatusActive
}

func (p *Poll) IsClosed(now time.Time) bool {
	return p.EffectiveStatus(now) == PollStatusClosed
}

// Effective returns a copy of the poll with Status replaced by the effective
// status at now.
func (p *Poll) Effective(now time.Time) *Poll {
	cp := *p
	cp.Status = p.EffectiveStatus(now)
	if cp.Status == PollStatusClosed && cp.ClosedAt == nil && p.EndsAt != nil {
		endsAt := *p.EndsAt
		cp.ClosedAt = &endsAt
	}
	return &cp
}

func (p *Poll) Option(id uuid.UUID) (PollOption, bool) {
	for _, opt := range p.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return PollOption{}, false
}
