// Package bettinground implements the turn-queue state machine for a
// single betting street: construction, turn query, action application, and
// completion detection (spec §4.2). It is grounded on
// texasholdem.Game's decisionIndex/decisionStart turn bookkeeping
// (advanceToActiveParticipant, nextDecision, GetCurrentTurn) and
// potmanager.PotManager's actionAtIndex/actionStartIndex/completeTurn,
// generalized from the teacher's fixed-limit Bet/Raise (a single
// LowerLimit/UpperLimit amount per street, capped at four raises) to the
// spec's no-limit bet/raise-to-amount semantics with no raise cap.
package bettinground

import (
	"holdemengine/pkg/action"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/engineerr"
	"holdemengine/pkg/seat"
)

// Round is a single betting street's state: who can still act, whose turn
// it is, and the bet/raise levels in play. Every method that advances the
// round returns a new Round value rather than mutating the receiver.
type Round struct {
	Name            Phase
	players         map[seat.Index]Player
	ActiveQueue     []seat.Index
	ActiveIndex     int
	BiggestBet      chip.Count
	MinRaise        chip.Count
	LastAggressor   *seat.Index
	HasBetThisRound bool
	Acted           map[seat.Index]bool
	IsComplete      bool
}

// New constructs a betting round for name given the full player set, the
// seat first to act, and the opening bet/raise levels (carried over from
// blinds on preflop, zero on later streets).
func New(name Phase, players []Player, firstToAct seat.Index, biggestBet, minRaise chip.Count) Round {
	byseat := make(map[seat.Index]Player, len(players))
	var canAct []seat.Index
	nonFolded := 0

	for _, p := range players {
		byseat[p.Seat] = p
		if !p.IsFolded {
			nonFolded++
		}
		if p.CanAct() {
			canAct = append(canAct, p.Seat)
		}
	}

	queue := seat.RotateFrom(canAct, firstToAct)

	r := Round{
		Name:            name,
		players:         byseat,
		ActiveQueue:      queue,
		BiggestBet:      biggestBet,
		MinRaise:        minRaise,
		HasBetThisRound: biggestBet > 0,
		Acted:           make(map[seat.Index]bool),
	}
	r.IsComplete = nonFolded <= 1 || len(queue) <= 1

	return r
}

// Player returns the current snapshot for s.
func (r Round) Player(s seat.Index) (Player, bool) {
	p, ok := r.players[s]
	return p, ok
}

// Players returns every player's snapshot, in seat order.
func (r Round) Players() []Player {
	seats := make([]seat.Index, 0, len(r.players))
	for s := range r.players {
		seats = append(seats, s)
	}
	seats = seat.Sorted(seats)

	out := make([]Player, len(seats))
	for i, s := range seats {
		out[i] = r.players[s]
	}
	return out
}

// ActivePlayer returns the seat on the clock, or false if the round is
// complete or no one can act.
func (r Round) ActivePlayer() (seat.Index, bool) {
	if r.IsComplete || len(r.ActiveQueue) == 0 || r.ActiveIndex >= len(r.ActiveQueue) {
		return 0, false
	}
	return r.ActiveQueue[r.ActiveIndex], true
}

// LegalActionsFor computes the LegalActions descriptor for s, or the zero
// value and false if s is not on the clock.
func (r Round) LegalActionsFor(s seat.Index) (action.LegalActions, bool) {
	active, ok := r.ActivePlayer()
	if !ok || active != s {
		return action.LegalActions{}, false
	}

	p := r.players[s]
	return action.Compute(p.Chips, p.CurrentBet, r.BiggestBet, r.MinRaise, r.HasBetThisRound), true
}

func (r Round) clone() Round {
	players := make(map[seat.Index]Player, len(r.players))
	for s, p := range r.players {
		players[s] = p
	}

	acted := make(map[seat.Index]bool, len(r.Acted))
	for s, v := range r.Acted {
		acted[s] = v
	}

	queue := make([]seat.Index, len(r.ActiveQueue))
	copy(queue, r.ActiveQueue)

	var aggressor *seat.Index
	if r.LastAggressor != nil {
		s := *r.LastAggressor
		aggressor = &s
	}

	return Round{
		Name:            r.Name,
		players:         players,
		ActiveQueue:     queue,
		ActiveIndex:     r.ActiveIndex,
		BiggestBet:      r.BiggestBet,
		MinRaise:        r.MinRaise,
		LastAggressor:   aggressor,
		HasBetThisRound: r.HasBetThisRound,
		Acted:           acted,
		IsComplete:      r.IsComplete,
	}
}

// Apply validates and applies action a for seat s, returning the resulting
// Round. On any error the returned Round is the zero value and r is left
// untouched by the caller (Apply never mutates its receiver).
func Apply(r Round, s seat.Index, a action.Action) (Round, error) {
	active, ok := r.ActivePlayer()
	if !ok {
		return Round{}, &engineerr.InvalidGameState{State: r.Name.String(), Reason: "no seat is on the clock"}
	}
	if active != s {
		return Round{}, &engineerr.NotPlayersTurn{Seat: int(s), Expected: int(active)}
	}

	player, ok := r.players[s]
	if !ok {
		return Round{}, &engineerr.InvalidGameState{State: r.Name.String(), Reason: "acting seat has no player record"}
	}

	la := action.Compute(player.Chips, player.CurrentBet, r.BiggestBet, r.MinRaise, r.HasBetThisRound)
	validated, err := action.Validate(la, a)
	if err != nil {
		return Round{}, err
	}

	next := r.clone()
	removeFromQueue := false

	switch validated.Kind {
	case action.Fold:
		p := next.players[s]
		p.IsFolded = true
		next.players[s] = p
		removeFromQueue = true

	case action.Check:
		// no state change beyond the turn advance.

	case action.Call:
		gap := r.BiggestBet.Sub(player.CurrentBet)
		p := next.players[s]
		p.Chips = p.Chips.Sub(gap)
		p.CurrentBet = p.CurrentBet.Add(gap)
		if p.Chips == 0 {
			p.IsAllIn = true
			removeFromQueue = true
		}
		next.players[s] = p

	case action.Bet:
		amount := validated.Amount
		p := next.players[s]
		p.Chips = p.Chips.Sub(amount)
		newBet := p.CurrentBet.Add(amount)
		p.CurrentBet = newBet
		next.players[s] = p

		next.BiggestBet = newBet
		next.MinRaise = amount
		next.LastAggressor = &s
		next.HasBetThisRound = true
		next.Acted = make(map[seat.Index]bool)

	case action.Raise:
		amount := validated.Amount
		oldBiggest := r.BiggestBet
		commit := amount.Sub(player.CurrentBet)

		p := next.players[s]
		p.Chips = p.Chips.Sub(commit)
		p.CurrentBet = amount
		next.players[s] = p

		next.BiggestBet = amount
		next.MinRaise = amount.Sub(oldBiggest)
		next.LastAggressor = &s
		next.Acted = make(map[seat.Index]bool)

	case action.AllIn:
		chipsBefore := player.Chips
		currentBetBefore := player.CurrentBet
		total := currentBetBefore.Add(chipsBefore)

		p := next.players[s]
		p.Chips = chip.Zero
		p.CurrentBet = total
		p.IsAllIn = true
		next.players[s] = p
		removeFromQueue = true

		oldBiggest := r.BiggestBet
		if total > oldBiggest {
			increment := total.Sub(oldBiggest)
			next.BiggestBet = total
			if increment >= r.MinRaise {
				next.MinRaise = increment
				next.LastAggressor = &s
				next.Acted = make(map[seat.Index]bool)
			}
			// a short all-in (increment < MinRaise) raises BiggestBet but
			// does not reopen action for seats already in Acted (spec §9,
			// "short all-in re-opening").
		}
	}

	if removeFromQueue {
		next.ActiveQueue = seat.Remove(next.ActiveQueue, s)
	}
	next.Acted[s] = true

	next.advance(removeFromQueue)
	next.recomputeComplete()

	return next, nil
}

// advance moves ActiveIndex to the next seat still in ActiveQueue. If s was
// removed from the queue this action, the slot at the old index now holds
// whoever was next (seat.Remove preserves relative order), so the index
// only needs to wrap; otherwise it steps forward by one.
func (r *Round) advance(removed bool) {
	if len(r.ActiveQueue) == 0 {
		r.ActiveIndex = 0
		return
	}

	if removed {
		r.ActiveIndex = r.ActiveIndex % len(r.ActiveQueue)
		return
	}

	r.ActiveIndex = (r.ActiveIndex + 1) % len(r.ActiveQueue)
}

func (r *Round) recomputeComplete() {
	nonFolded := 0
	for _, p := range r.players {
		if !p.IsFolded {
			nonFolded++
		}
	}
	if nonFolded <= 1 {
		r.IsComplete = true
		return
	}

	if len(r.ActiveQueue) == 0 {
		r.IsComplete = true
		return
	}

	for _, s := range r.ActiveQueue {
		if !r.Acted[s] {
			r.IsComplete = false
			return
		}
	}
	r.IsComplete = true
}
