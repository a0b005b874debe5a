package gameloop

import (
	"context"

	"holdemengine/pkg/action"
	"holdemengine/pkg/bettinground"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/deck"
	"holdemengine/pkg/event"
	"holdemengine/pkg/seat"
)

// Role names a seat's position relative to the button for the hand
// currently in progress.
type Role int

const (
	RoleOther Role = iota
	RoleButton
	RoleSmallBlind
	RoleBigBlind
)

func (r Role) String() string {
	switch r {
	case RoleButton:
		return "button"
	case RoleSmallBlind:
		return "small_blind"
	case RoleBigBlind:
		return "big_blind"
	default:
		return "other"
	}
}

// PlayerView is the public-information slice of a seat visible to every
// other seat: chips, current bet, and fold/all-in status, but never hole
// cards.
type PlayerView struct {
	Seat       seat.Index
	Chips      chip.Count
	CurrentBet chip.Count
	IsFolded   bool
	IsAllIn    bool
}

// StrategyContext is the view a Strategy receives each turn: its own
// chips and hole cards, its positional role, the phase and community
// cards, the pot total, a public view of every seat, the legal actions
// computed for it, and every event the current hand has produced so far
// (so a strategy can observe what happened while it was waiting its turn).
type StrategyContext struct {
	Seat         seat.Index
	Chips        chip.Count
	HoleCards    deck.Hand
	Role         Role
	Phase        bettinground.Phase
	Community    deck.Hand
	PotTotal     chip.Count
	Players      []PlayerView
	LegalActions action.LegalActions
	NewEvents    []event.GameEvent
}

// Strategy decides an action given a StrategyContext. ctx carries the
// per-action timeout the Loop configures; a Strategy that respects ctx
// cancellation lets the loop fall back to its default action promptly
// instead of blocking past the deadline.
type Strategy interface {
	Decide(ctx context.Context, sc StrategyContext) (action.Action, error)
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(ctx context.Context, sc StrategyContext) (action.Action, error)

// Decide calls f.
func (f StrategyFunc) Decide(ctx context.Context, sc StrategyContext) (action.Action, error) {
	return f(ctx, sc)
}
