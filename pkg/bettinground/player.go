package bettinground

import (
	"holdemengine/pkg/chip"
	"holdemengine/pkg/seat"
)

// Player is the betting round's per-seat view: enough to drive legal-action
// computation and bet application, without the hole cards or per-hand
// result bookkeeping handstate.Player layers on top.
type Player struct {
	Seat       seat.Index
	Chips      chip.Count
	CurrentBet chip.Count
	IsFolded   bool
	IsAllIn    bool
}

// CanAct reports whether p is still able to take an action this round:
// not folded, not all-in, and holding chips.
func (p Player) CanAct() bool {
	return !p.IsFolded && !p.IsAllIn && p.Chips > 0
}
