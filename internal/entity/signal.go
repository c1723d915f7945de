package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

func (s Side) Valid() bool {
	return s == SideLong || s == SideShort
}

// Signal 跟踪中的交易信号
type Signal struct {
	Id      int64             `json:"id"`
	Symbol  string            `json:"symbol"`
	Side    Side              `json:"side"`
	Entry   decimal.Decimal   `json:"entry"`
	Targets []decimal.Decimal `json:"targets"`
	Stop    *decimal.Decimal  `json:"stop,omitempty"`
	Note    string            `json:"note,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	Active     bool      `json:"active"`
	HitTargets []int     `json:"hit_targets"`

	// ExternalRef links follow-up alerts to the originally published card.
	// Empty means the signal was never published.
	ExternalRef string `json:"external_ref,omitempty"`
}

// TargetHit reports whether the target at idx has already been announced.
func (s Signal) TargetHit(idx int) bool {
	return slices.Contains(s.HitTargets, idx)
}

// Clone returns a copy that shares no mutable state with the receiver.
func (s Signal) Clone() Signal {
	s.Targets = slices.Clone(s.Targets)
	s.HitTargets = slices.Clone(s.HitTargets)
	if s.Stop != nil {
		stop := *s.Stop
		s.Stop = &stop
	}
	return s
}
