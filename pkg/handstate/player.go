package handstate

import (
	"holdemengine/pkg/chip"
	"holdemengine/pkg/deck"
	"holdemengine/pkg/seat"
)

// Player is a hand's per-seat view: chips, this-round current bet, fold/
// all-in status, and the private hole cards dealt at Start. It generalizes
// participant.Participant (the teacher's per-game player record, which also
// carries the fixed-limit bet-count bookkeeping this spec's no-limit
// betting no longer needs) down to exactly the fields spec.md's Player
// (per-hand view) names.
type Player struct {
	Seat       seat.Index
	Chips      chip.Count
	CurrentBet chip.Count
	IsFolded   bool
	IsAllIn    bool
	HoleCards  deck.Hand
}

// PlaceBet commits amount from the player's stack into CurrentBet, marking
// the player all-in if it exhausts their chips.
func (p Player) PlaceBet(amount chip.Count) Player {
	p.Chips = p.Chips.Sub(amount)
	p.CurrentBet = p.CurrentBet.Add(amount)
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	return p
}

// Fold marks the player folded, ineligible for any subsequent pot.
func (p Player) Fold() Player {
	p.IsFolded = true
	return p
}

// CollectBet zeroes CurrentBet after it has been swept into the pots.
func (p Player) CollectBet() Player {
	p.CurrentBet = chip.Zero
	return p
}

// WinChips credits amount to the player's stack.
func (p Player) WinChips(amount chip.Count) Player {
	p.Chips = p.Chips.Add(amount)
	return p
}

// ClearHand resets per-hand state ahead of a new deal, keeping the seat and
// chip stack.
func (p Player) ClearHand() Player {
	p.CurrentBet = chip.Zero
	p.IsFolded = false
	p.IsAllIn = false
	p.HoleCards = nil
	return p
}

// CanAct reports whether p is still able to act: not folded, not all-in,
// and holding chips.
func (p Player) CanAct() bool {
	return !p.IsFolded && !p.IsAllIn && p.Chips > 0
}
