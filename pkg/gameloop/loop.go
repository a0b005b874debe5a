// Package gameloop is a pull-model driver (spec §4.6) that repeatedly
// starts hands on a tableengine.Table and, for each seat on the clock,
// calls a Strategy for a decision under a per-action timeout, falling
// back through a configurable default action and finally a fixed
// Check/Call/Fold cascade if the strategy errors, times out, or returns
// something illegal.
//
// It generalizes the teacher's room.Dealer/room.PitBoss: the teacher runs
// one actor per table, dispatching client messages off channels in a
// run-loop select; this package collapses that into a synchronous loop
// that "is" every seat at once, calling out to a Strategy instead of
// waiting on a network message.
package gameloop

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"holdemengine/internal/rng"
	"holdemengine/pkg/action"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/engineerr"
	"holdemengine/pkg/event"
	"holdemengine/pkg/seat"
	"holdemengine/pkg/tableengine"
)

const (
	defaultMaxActionsPerHand = 500
	defaultMaxHands          = 10000
)

// Loop configures and runs the pull-model driver.
type Loop struct {
	// Strategies maps a seat to the Strategy deciding its actions. A seat
	// with no entry falls straight to DefaultAction/the Check-Call-Fold
	// cascade every turn.
	Strategies map[seat.Index]Strategy

	// PerActionTimeout bounds how long a Strategy.Decide call is given via
	// ctx before the loop moves on to its fallback. Zero means no timeout.
	PerActionTimeout time.Duration

	// DefaultAction is tried, after validation, whenever a Strategy times
	// out, errors, or returns an action that fails action.Validate. Its
	// zero value has Kind Fold, which is always legal.
	DefaultAction action.Action

	// MaxActionsPerHand and MaxHands cap a runaway loop. Zero takes the
	// package defaults (500 and 10000).
	MaxActionsPerHand int
	MaxHands          int

	// StopWhen is consulted before every new hand; the loop stops once it
	// returns true. A nil StopWhen runs until tableengine.StartNextHand
	// itself refuses for lack of funded seats.
	StopWhen StopPredicate

	// OnEvent, if set, is called once per event newly appended to the
	// table's history, in order, after each action and after each hand
	// completes.
	OnEvent func(event.GameEvent)

	// Entropy is forwarded to every hand dealt; nil draws fresh entropy
	// per hand via crypto/rand.
	Entropy rng.Generator

	// Log receives structured diagnostics. A nil Log uses logrus's
	// standard logger.
	Log logrus.FieldLogger
}

func (l Loop) maxActionsPerHand() int {
	if l.MaxActionsPerHand > 0 {
		return l.MaxActionsPerHand
	}
	return defaultMaxActionsPerHand
}

func (l Loop) maxHands() int {
	if l.MaxHands > 0 {
		return l.MaxHands
	}
	return defaultMaxHands
}

func (l Loop) logger() logrus.FieldLogger {
	if l.Log != nil {
		return l.Log
	}
	return logrus.StandardLogger()
}

// Run drives t hand after hand until StopWhen says stop or
// tableengine.StartNextHand reports it can't deal another (fewer than two
// funded seats remain). now is called once per state-changing operation
// so a caller that needs a clock with ticking time can override it; seed
// is forwarded unchanged to every hand (0 draws fresh entropy each time).
func (l Loop) Run(t tableengine.Table, seed int64, now func() time.Time) (tableengine.Table, error) {
	handsPlayed := 0
	log := l.logger()

	for {
		if l.StopWhen != nil && l.StopWhen(t, handsPlayed) {
			log.WithField("hands_played", handsPlayed).Debug("stop predicate satisfied")
			return t, nil
		}
		if handsPlayed >= l.maxHands() {
			log.WithField("hands_played", handsPlayed).Warn("max_hands reached")
			return t, nil
		}

		started := len(t.Events)
		next, err := tableengine.StartNextHand(t, seed, l.Entropy, now())
		if err != nil {
			if _, ok := err.(*engineerr.NotEnoughPlayers); ok {
				return t, nil
			}
			return t, err
		}
		t = next
		l.emitNew(t, started)

		actions := 0
		for t.CurrentHand != nil {
			if actions >= l.maxActionsPerHand() {
				return t, &engineerr.InvalidGameState{State: "gameloop", Reason: "max_actions_per_hand exceeded"}
			}

			s, ok := t.ActivePlayer()
			if !ok {
				break
			}

			before := len(t.Events)
			t, err = l.step(t, s, now())
			if err != nil {
				return t, err
			}
			l.emitNew(t, before)
			actions++
		}

		handsPlayed++
	}
}

// step decides and applies a single action for seat s.
func (l Loop) step(t tableengine.Table, s seat.Index, now time.Time) (tableengine.Table, error) {
	la, ok := t.LegalActionsFor(s)
	if !ok {
		return t, &engineerr.InvalidGameState{State: "gameloop", Reason: "no legal actions for active seat"}
	}

	sc := l.buildContext(t, s, la)

	a, err := l.decide(s, sc)
	if err != nil {
		l.logger().WithField("seat", int(s)).WithError(err).Debug("strategy failed, falling back")
		a = l.fallback(la)
	} else if _, verr := action.Validate(la, a); verr != nil {
		l.logger().WithField("seat", int(s)).WithField("action", a.String()).Debug("strategy chose illegal action, falling back")
		a = l.fallback(la)
	}

	return tableengine.Act(t, s, a, now)
}

func (l Loop) decide(s seat.Index, sc StrategyContext) (action.Action, error) {
	strat, ok := l.Strategies[s]
	if !ok {
		return action.Action{}, &engineerr.InvalidGameState{State: "gameloop", Reason: "no strategy assigned"}
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if l.PerActionTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, l.PerActionTimeout)
		defer cancel()
	}

	return strat.Decide(ctx, sc)
}

// fallback tries DefaultAction, then Check, Call, and Fold in order,
// returning the first that validates against la. Fold is always legal
// for a seat on the clock, so this always terminates.
func (l Loop) fallback(la action.LegalActions) action.Action {
	for _, candidate := range []action.Action{l.DefaultAction, action.NewCheck(), action.NewCall(), action.NewFold()} {
		if validated, err := action.Validate(la, candidate); err == nil {
			return validated
		}
	}
	return action.NewFold()
}

func (l Loop) buildContext(t tableengine.Table, s seat.Index, la action.LegalActions) StrategyContext {
	hs := t.CurrentHand

	var players []PlayerView
	for _, seatIdx := range hs.SeatOrder {
		p := hs.Players[seatIdx]
		players = append(players, PlayerView{
			Seat:       seatIdx,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			IsFolded:   p.IsFolded,
			IsAllIn:    p.IsAllIn,
		})
	}

	potTotal := chip.Zero
	for _, pot := range hs.Pots {
		potTotal = potTotal.Add(pot.Amount)
	}
	for _, p := range hs.Players {
		potTotal = potTotal.Add(p.CurrentBet)
	}

	handEvents := make([]event.GameEvent, len(hs.Events))
	copy(handEvents, hs.Events)

	self := hs.Players[s]
	return StrategyContext{
		Seat:         s,
		Chips:        self.Chips,
		HoleCards:    self.HoleCards.Clone(),
		Role:         roleOf(s, hs.SeatOrder, hs.Button),
		Phase:        hs.Phase,
		Community:    hs.Community.Clone(),
		PotTotal:     potTotal,
		Players:      players,
		LegalActions: la,
		NewEvents:    handEvents,
	}
}

func roleOf(s seat.Index, seatOrder []seat.Index, button seat.Index) Role {
	if s == button {
		return RoleButton
	}
	n := len(seatOrder)
	if n == 2 {
		return RoleOther
	}
	// three-plus handed: seat_order[1] is SB, seat_order[2] is BB.
	if n > 1 && s == seatOrder[1] {
		return RoleSmallBlind
	}
	if n > 2 && s == seatOrder[2] {
		return RoleBigBlind
	}
	return RoleOther
}

// emitNew calls OnEvent for every table event from index from onward.
func (l Loop) emitNew(t tableengine.Table, from int) {
	if l.OnEvent == nil {
		return
	}
	for _, e := range t.Events[from:] {
		l.OnEvent(e)
	}
}
