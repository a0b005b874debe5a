// Package handstate is the hand lifecycle orchestrator (spec §4.3): it
// drives a single hand from Start through blind posting, hole-card
// dealing, the four betting streets, and showdown, auto-advancing the
// phase whenever a betting round closes. It is grounded on
// texasholdem.Game's dealerState enum and
// dealTwoCardsToEachParticipant/setPendingDealerState phase machine,
// generalized to run synchronously: the teacher queues a
// pendingDealerState behind a time.Duration so a client has time to see
// the result of an action before the next street deals; this package has
// no timers or pending-state scaffolding; Apply runs every consequence of
// an action to completion (or the next betting round) before returning.
package handstate

import (
	"time"

	"github.com/google/uuid"
	"holdemengine/pkg/action"
	"holdemengine/pkg/bettinground"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/deck"
	"holdemengine/pkg/engineerr"
	"holdemengine/pkg/event"
	"holdemengine/pkg/handrank"
	"holdemengine/pkg/potengine"
	"holdemengine/internal/rng"
	"holdemengine/pkg/seat"
)

// HandState is a single hand's complete state: the players and their hole
// cards, the shared community cards and remaining deck, the pots swept so
// far, the active betting round (nil once the hand leaves a betting
// phase), and the append-only event log. Every exported method returns a
// new HandState rather than mutating the receiver, matching the
// engine-wide value-transition discipline (spec §5).
type HandState struct {
	HandID     uuid.UUID
	Phase      bettinground.Phase
	Players    map[seat.Index]Player
	Community  deck.Hand
	deckCards  deck.Deck
	Pots       []potengine.Pot
	Betting    *bettinground.Round
	Button     seat.Index
	ForcedBets ForcedBets
	SeatOrder  []seat.Index
	Events     []event.GameEvent
	Ranker     handrank.Ranker
}

// Start deals a new hand for roster (the seated, chip-holding players;
// callers are expected to have already run ClearHand on each, matching
// tableengine.Table's start_next_hand precondition), posts blinds, and
// opens the preflop betting round. seed/entropy are forwarded to
// deck.Shuffle unchanged: seed 0 draws fresh entropy, a non-zero seed
// reproduces an exact deal.
func Start(handID uuid.UUID, roster []Player, button seat.Index, forcedBets ForcedBets, ranker handrank.Ranker, seed int64, entropy rng.Generator, now time.Time) (HandState, error) {
	players := make(map[seat.Index]Player, len(roster))
	var nonFolded []seat.Index
	for _, p := range roster {
		players[p.Seat] = p
		if !p.IsFolded {
			nonFolded = append(nonFolded, p.Seat)
		}
	}
	if len(nonFolded) < 2 {
		return HandState{}, &engineerr.InvalidGameState{State: "start", Reason: "need at least 2 non-folded players to start a hand"}
	}

	seatOrder := seat.RotateFrom(nonFolded, button)

	d := deck.New52()
	d, _ = deck.Shuffle(d, seed, entropy)

	intSeatOrder := make([]int, len(seatOrder))
	for i, s := range seatOrder {
		intSeatOrder[i] = int(s)
	}
	holes, d, err := deck.DealHoleCards(d, intSeatOrder)
	if err != nil {
		return HandState{}, err
	}
	for _, s := range seatOrder {
		p := players[s]
		p.HoleCards = holes[int(s)]
		players[s] = p
	}

	hs := HandState{
		HandID:     handID,
		Phase:      bettinground.Preflop,
		Players:    players,
		Community:  deck.Hand{},
		deckCards:  d,
		Button:     button,
		ForcedBets: forcedBets,
		SeatOrder:  seatOrder,
		Ranker:     ranker,
	}

	hs = hs.postBlinds()

	hs.Events = append(hs.Events, event.NewHandStarted(handID, now))
	hs.Events = append(hs.Events, event.NewBlindsPosted(handID, now))
	for _, s := range seatOrder {
		hs.Events = append(hs.Events, event.NewHoleCardsDealt(handID, s, now))
	}

	firstToAct := hs.preflopFirstToAct()
	round := bettinground.New(bettinground.Preflop, hs.bettingRoundPlayers(), firstToAct, forcedBets.BB, forcedBets.BB)
	if round.IsComplete {
		// every non-folded seat posted itself all-in on the blinds alone
		// (e.g. a one-chip stack covering less than the big blind against a
		// single opponent): there is nothing left to decide preflop, so
		// run the same auto-advance pipeline a completed Apply would, to
		// sweep the blinds into a pot and deal onward.
		return hs.afterRoundComplete(now)
	}
	hs.Betting = &round

	return hs, nil
}

// postBlinds posts the small and big blind per spec §4.3: heads-up the
// button posts SB and the other player posts BB; three-plus handed,
// seat_order[1] posts SB and seat_order[2] posts BB. Each player posts
// min(forced_amount, chips), so a short stack can post itself all-in.
func (hs HandState) postBlinds() HandState {
	var sbSeat, bbSeat seat.Index
	if len(hs.SeatOrder) == 2 {
		sbSeat, bbSeat = hs.SeatOrder[0], hs.SeatOrder[1]
	} else {
		sbSeat, bbSeat = hs.SeatOrder[1], hs.SeatOrder[2]
	}

	hs.postBlind(sbSeat, hs.ForcedBets.SB)
	hs.postBlind(bbSeat, hs.ForcedBets.BB)
	return hs
}

func (hs HandState) postBlind(s seat.Index, amount chip.Count) {
	p := hs.Players[s]
	post := chip.Min(amount, p.Chips)
	hs.Players[s] = p.PlaceBet(post)
}

// preflopFirstToAct returns the seat that acts first preflop: heads-up the
// button/SB; otherwise the seat immediately after the big blind in
// seat_order, wrapping (which, three-handed, puts the button back on the
// clock first, since seat_order[2] is the big blind).
func (hs HandState) preflopFirstToAct() seat.Index {
	n := len(hs.SeatOrder)
	if n == 2 {
		return hs.SeatOrder[0]
	}
	return hs.SeatOrder[3%n]
}

// ActivePlayer returns the seat on the clock, if a betting round is open.
func (hs HandState) ActivePlayer() (seat.Index, bool) {
	if hs.Betting == nil {
		return 0, false
	}
	return hs.Betting.ActivePlayer()
}

// LegalActionsFor mirrors bettinground.Round.LegalActionsFor for s, letting
// table and game-loop layers introspect without mutating state (a shape
// kept from the teacher's read-only ActionsForParticipant/
// FutureActionsForParticipant).
func (hs HandState) LegalActionsFor(s seat.Index) (action.LegalActions, bool) {
	if hs.Betting == nil {
		return action.LegalActions{}, false
	}
	return hs.Betting.LegalActionsFor(s)
}

// Apply validates and applies action a for seat s against the open betting
// round, then runs every automatic consequence (pot collection, street
// advance, showdown) until either a new betting round opens or the hand
// reaches Complete.
func Apply(hs HandState, s seat.Index, a action.Action, now time.Time) (HandState, error) {
	if hs.Phase == bettinground.Showdown || hs.Phase == bettinground.Complete || hs.Betting == nil {
		return HandState{}, &engineerr.InvalidGameState{State: hs.Phase.String(), Reason: "no betting round is open"}
	}

	nextRound, err := bettinground.Apply(*hs.Betting, s, a)
	if err != nil {
		return HandState{}, err
	}

	next := hs.clone()
	next.syncFromRound(nextRound)
	next.Betting = &nextRound
	next.Events = append(next.Events, event.NewPlayerActed(next.HandID, s, a, now))

	if nextRound.IsComplete {
		return next.afterRoundComplete(now)
	}
	return next, nil
}

func (hs *HandState) syncFromRound(r bettinground.Round) {
	for _, rp := range r.Players() {
		p := hs.Players[rp.Seat]
		p.Chips = rp.Chips
		p.CurrentBet = rp.CurrentBet
		p.IsFolded = rp.IsFolded
		p.IsAllIn = rp.IsAllIn
		hs.Players[rp.Seat] = p
	}
}

// afterRoundComplete runs the auto-advance sequence of spec §4.3 steps 1-6:
// sweep bets into pots, close out the round, award to the last player if
// the hand folded out, otherwise deal the next street (skipping betting
// rounds no one can act in) or run showdown.
func (hs HandState) afterRoundComplete(now time.Time) (HandState, error) {
	hs.Pots = potengine.CollectBets(hs.potEnginePlayers(), hs.Pots)
	for s, p := range hs.Players {
		hs.Players[s] = p.CollectBet()
	}

	hs.Events = append(hs.Events, event.NewBettingRoundEnded(hs.HandID, hs.Phase, now))
	hs.Betting = nil

	remaining := hs.nonFoldedSeats()
	if len(remaining) <= 1 {
		return hs.awardToLastPlayer(remaining, now), nil
	}

	return hs.advanceStreet(now)
}

func (hs HandState) potEnginePlayers() []potengine.Player {
	out := make([]potengine.Player, 0, len(hs.SeatOrder))
	for _, s := range hs.SeatOrder {
		p := hs.Players[s]
		out = append(out, potengine.Player{Seat: s, CurrentBet: p.CurrentBet, IsFolded: p.IsFolded, IsAllIn: p.IsAllIn})
	}
	return out
}

func (hs HandState) nonFoldedSeats() []seat.Index {
	var out []seat.Index
	for _, s := range hs.SeatOrder {
		if !hs.Players[s].IsFolded {
			out = append(out, s)
		}
	}
	return out
}

func (hs HandState) awardToLastPlayer(remaining []seat.Index, now time.Time) HandState {
	if len(remaining) == 1 {
		winner := remaining[0]
		for i, pot := range hs.Pots {
			if pot.Amount <= 0 {
				continue
			}
			p := hs.Players[winner]
			hs.Players[winner] = p.WinChips(pot.Amount)
			hs.Events = append(hs.Events, event.NewPotAwarded(hs.HandID, winner, pot.Amount, i, now))
		}
		hs.Pots = nil
	}

	hs.Events = append(hs.Events, event.NewHandEnded(hs.HandID, now))
	hs.Phase = bettinground.Complete
	return hs
}

// advanceStreet deals community cards street by street until either a
// playable betting round opens or Showdown is reached (spec §4.3 step 5:
// "If none [can act], no betting round is created and the next street is
// dealt immediately").
func (hs HandState) advanceStreet(now time.Time) (HandState, error) {
	for {
		nextPhase := hs.Phase + 1
		if nextPhase == bettinground.Showdown {
			return hs.runShowdown(now)
		}

		var cards deck.Hand
		var err error
		switch nextPhase {
		case bettinground.Flop:
			cards, hs.deckCards, err = deck.DealFlop(hs.deckCards)
		case bettinground.Turn, bettinground.River:
			cards, hs.deckCards, err = deck.DealOne(hs.deckCards)
		}
		if err != nil {
			return HandState{}, err
		}

		hs.Community = hs.Community.Plus(cards)
		hs.Phase = nextPhase
		hs.Events = append(hs.Events, event.NewCommunityCardsDealt(hs.HandID, nextPhase, cards, now))

		firstToAct, canActCount := hs.canActPostflop()
		if canActCount < 2 {
			// fewer than two seats can still act (everyone else is
			// all-in or folded): no betting round is created for this
			// street at all, per spec — the board just runs out.
			continue
		}

		round := bettinground.New(nextPhase, hs.bettingRoundPlayers(), firstToAct, chip.Zero, hs.ForcedBets.BB)
		hs.Betting = &round
		return hs, nil
	}
}

// canActPostflop returns the first seat in seat_order after button,
// wrapping, that can still act, along with the total count of seats that
// can. A betting round is only opened when at least two seats can act
// (spec §3's HandState invariant: "betting_round is present iff the phase
// admits actions and ≥2 players can act").
func (hs HandState) canActPostflop() (seat.Index, int) {
	n := len(hs.SeatOrder)
	var first seat.Index
	found := false
	count := 0
	for i := 1; i <= n; i++ {
		s := hs.SeatOrder[i%n]
		if hs.Players[s].CanAct() {
			count++
			if !found {
				first = s
				found = true
			}
		}
	}
	return first, count
}

func (hs HandState) bettingRoundPlayers() []bettinground.Player {
	out := make([]bettinground.Player, 0, len(hs.SeatOrder))
	for _, s := range hs.SeatOrder {
		p := hs.Players[s]
		out = append(out, bettinground.Player{Seat: s, Chips: p.Chips, CurrentBet: p.CurrentBet, IsFolded: p.IsFolded, IsAllIn: p.IsAllIn})
	}
	return out
}

// runShowdown evaluates every live hand against the community cards and
// credits the resulting awards, pot by pot.
func (hs HandState) runShowdown(now time.Time) (HandState, error) {
	hs.Phase = bettinground.Showdown
	hs.Events = append(hs.Events, event.NewShowdownStarted(hs.HandID, now))

	hands := make(map[seat.Index]handrank.HandRank, len(hs.SeatOrder))
	for _, s := range hs.SeatOrder {
		p := hs.Players[s]
		if p.IsFolded || len(p.HoleCards) == 0 {
			continue
		}
		hr, err := hs.Ranker.Rank(p.HoleCards.Plus(hs.Community))
		if err != nil {
			return HandState{}, err
		}
		hands[s] = hr
	}

	awards := potengine.AwardPots(hs.Pots, hands, hs.Button, hs.SeatOrder)
	for _, award := range awards {
		p := hs.Players[award.Seat]
		hs.Players[award.Seat] = p.WinChips(award.Amount)
		hs.Events = append(hs.Events, event.NewPotAwarded(hs.HandID, award.Seat, award.Amount, award.PotIndex, now))
	}
	hs.Pots = nil

	hs.Events = append(hs.Events, event.NewHandEnded(hs.HandID, now))
	hs.Phase = bettinground.Complete
	return hs, nil
}

func (hs HandState) clone() HandState {
	players := make(map[seat.Index]Player, len(hs.Players))
	for s, p := range hs.Players {
		players[s] = p
	}

	events := make([]event.GameEvent, len(hs.Events))
	copy(events, hs.Events)

	pots := make([]potengine.Pot, len(hs.Pots))
	copy(pots, hs.Pots)

	seatOrder := make([]seat.Index, len(hs.SeatOrder))
	copy(seatOrder, hs.SeatOrder)

	var betting *bettinground.Round
	if hs.Betting != nil {
		r := *hs.Betting
		betting = &r
	}

	return HandState{
		HandID:     hs.HandID,
		Phase:      hs.Phase,
		Players:    players,
		Community:  hs.Community.Clone(),
		deckCards:  hs.deckCards,
		Pots:       pots,
		Betting:    betting,
		Button:     hs.Button,
		ForcedBets: hs.ForcedBets,
		SeatOrder:  seatOrder,
		Events:     events,
		Ranker:     hs.Ranker,
	}
}

// TotalChips sums every seat's chips, current bets, and pot amounts — the
// quantity invariant 1 (spec §8) holds constant across a hand's lifetime.
func (hs HandState) TotalChips() chip.Count {
	total := chip.Zero
	for _, p := range hs.Players {
		total = total.Add(p.Chips).Add(p.CurrentBet)
	}
	for _, pot := range hs.Pots {
		total = total.Add(pot.Amount)
	}
	return total
}
