// Package event defines the append-only GameEvent log emitted by a hand as
// it progresses (spec §3). It replaces the teacher's gameLog/LogMessage
// snapshot-on-demand approach (texasholdem.Game.gameLog,
// playable.SimpleLogMessage) with a proper discriminated sum: every state
// transition in handstate produces one or more immutable events rather than
// callers re-deriving a snapshot from mutable game state.
package event

import (
	"time"

	"github.com/google/uuid"
	"holdemengine/pkg/action"
	"holdemengine/pkg/bettinground"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/deck"
	"holdemengine/pkg/seat"
)

// Kind tags which variant a GameEvent carries. Only the fields relevant to
// Kind are populated on a given event.
type Kind int

const (
	HandStarted Kind = iota
	BlindsPosted
	HoleCardsDealt
	PlayerActed
	BettingRoundEnded
	CommunityCardsDealt
	ShowdownStarted
	PotAwarded
	HandEnded
	PlayerSatDown
	PlayerStoodUp
)

func (k Kind) String() string {
	switch k {
	case HandStarted:
		return "hand_started"
	case BlindsPosted:
		return "blinds_posted"
	case HoleCardsDealt:
		return "hole_cards_dealt"
	case PlayerActed:
		return "player_acted"
	case BettingRoundEnded:
		return "betting_round_ended"
	case CommunityCardsDealt:
		return "community_cards_dealt"
	case ShowdownStarted:
		return "showdown_started"
	case PotAwarded:
		return "pot_awarded"
	case HandEnded:
		return "hand_ended"
	case PlayerSatDown:
		return "player_sat_down"
	case PlayerStoodUp:
		return "player_stood_up"
	default:
		return "unknown"
	}
}

// GameEvent is one immutable fact about a hand or table's history. A
// GameEvent is never mutated after construction; handstate and tableengine
// only ever append to an event slice, never edit or remove an entry.
type GameEvent struct {
	ID        uuid.UUID
	HandID    uuid.UUID
	Kind      Kind
	At        time.Time
	Seat      *seat.Index
	Action    *action.Action
	Phase     *bettinground.Phase
	Cards     deck.Hand
	Amount    chip.Count
	PotIndex  int
	Chips     chip.Count
}

func newEvent(handID uuid.UUID, kind Kind, now time.Time) GameEvent {
	return GameEvent{ID: uuid.New(), HandID: handID, Kind: kind, At: now}
}

// NewHandStarted marks the beginning of a hand.
func NewHandStarted(handID uuid.UUID, now time.Time) GameEvent {
	return newEvent(handID, HandStarted, now)
}

// NewBlindsPosted marks that forced bets have been committed for the hand.
func NewBlindsPosted(handID uuid.UUID, now time.Time) GameEvent {
	return newEvent(handID, BlindsPosted, now)
}

// NewHoleCardsDealt records that s received its hole cards. Per spec the
// event carries the seat only, never the cards themselves — hole cards are
// private and live in handstate.Player, not the public event log.
func NewHoleCardsDealt(handID uuid.UUID, s seat.Index, now time.Time) GameEvent {
	e := newEvent(handID, HoleCardsDealt, now)
	e.Seat = &s
	return e
}

// NewPlayerActed records the action s took.
func NewPlayerActed(handID uuid.UUID, s seat.Index, a action.Action, now time.Time) GameEvent {
	e := newEvent(handID, PlayerActed, now)
	e.Seat = &s
	e.Action = &a
	return e
}

// NewBettingRoundEnded marks that phase's betting round reached completion.
func NewBettingRoundEnded(handID uuid.UUID, phase bettinground.Phase, now time.Time) GameEvent {
	e := newEvent(handID, BettingRoundEnded, now)
	e.Phase = &phase
	return e
}

// NewCommunityCardsDealt records the cards dealt to reach phase.
func NewCommunityCardsDealt(handID uuid.UUID, phase bettinground.Phase, cards deck.Hand, now time.Time) GameEvent {
	e := newEvent(handID, CommunityCardsDealt, now)
	e.Phase = &phase
	e.Cards = cards.Clone()
	return e
}

// NewShowdownStarted marks the beginning of showdown evaluation.
func NewShowdownStarted(handID uuid.UUID, now time.Time) GameEvent {
	return newEvent(handID, ShowdownStarted, now)
}

// NewPotAwarded records a single pot's award to s.
func NewPotAwarded(handID uuid.UUID, s seat.Index, amount chip.Count, potIndex int, now time.Time) GameEvent {
	e := newEvent(handID, PotAwarded, now)
	e.Seat = &s
	e.Amount = amount
	e.PotIndex = potIndex
	return e
}

// NewHandEnded marks the hand's terminal event.
func NewHandEnded(handID uuid.UUID, now time.Time) GameEvent {
	return newEvent(handID, HandEnded, now)
}

// NewPlayerSatDown records s joining the table with chips. Table-scoped
// events use the nil UUID for HandID since they are not associated with any
// one hand.
func NewPlayerSatDown(s seat.Index, chips chip.Count, now time.Time) GameEvent {
	e := newEvent(uuid.Nil, PlayerSatDown, now)
	e.Seat = &s
	e.Chips = chips
	return e
}

// NewPlayerStoodUp records s leaving the table.
func NewPlayerStoodUp(s seat.Index, now time.Time) GameEvent {
	e := newEvent(uuid.Nil, PlayerStoodUp, now)
	e.Seat = &s
	return e
}
