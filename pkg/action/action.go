// Package action defines the Action sum type, the LegalActions descriptor,
// and validation between the two. It generalizes the teacher's
// pkg/playable/poker/action (a closed set of string-tagged actions such as
// Fold/Check/Call/Bet/Raise) and texasholdem.Game's
// ActionsForParticipant/FutureActionsForParticipant (which computed the
// subset of those actions legal for the player on the clock) from the
// teacher's fixed-limit betting into the spec's no-limit bet/raise-to
// semantics.
package action

import (
	"fmt"

	"holdemengine/pkg/chip"
	"holdemengine/pkg/engineerr"
)

// Kind is the closed set of action tags a player may choose between.
type Kind int

const (
	Fold Kind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (k Kind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "all-in"
	default:
		return "unknown"
	}
}

// Action is a player's chosen move. Amount is meaningful only for Bet and
// Raise. For Raise it is the absolute post-action current_bet total, not an
// increment (spec §4.1: "Raise amounts are absolute raise-to totals"); for
// Bet it is the chips the bet commits on top of the player's current bet.
type Action struct {
	Kind   Kind
	Amount chip.Count
}

// NewFold, NewCheck, and NewCall construct the amount-less actions.
func NewFold() Action  { return Action{Kind: Fold} }
func NewCheck() Action { return Action{Kind: Check} }
func NewCall() Action  { return Action{Kind: Call} }

// NewBet and NewRaise construct amount-bearing actions. A bet's amount is
// the chips it commits; a raise's amount is the absolute current_bet the
// player will have after the raise resolves.
func NewBet(amount chip.Count) Action   { return Action{Kind: Bet, Amount: amount} }
func NewRaise(amount chip.Count) Action { return Action{Kind: Raise, Amount: amount} }
func NewAllIn() Action                  { return Action{Kind: AllIn} }

func (a Action) String() string {
	switch a.Kind {
	case Bet:
		return fmt.Sprintf("bet %s", a.Amount)
	case Raise:
		return fmt.Sprintf("raise to %s", a.Amount)
	default:
		return a.Kind.String()
	}
}

// LegalActions describes the moves available to the player on the clock,
// computed by Compute from their stack and the round's state. Optional
// fields use pointers so "unavailable" is distinguishable from "available
// with value 0".
type LegalActions struct {
	CanFold      bool
	CanCheck     bool
	CallAmount   *chip.Count
	MinBet       *chip.Count
	MaxBet       *chip.Count
	MinRaise     *chip.Count
	MaxRaise     *chip.Count
	CanAllIn     bool
	AllInAmount  chip.Count
}

// Compute builds the LegalActions descriptor for a player with chips
// remaining and currentBet already committed this round, given the round's
// biggestBet and minRaiseIncrement, per spec §4.1.
func Compute(chips, currentBet, biggestBet, minRaiseIncrement chip.Count, hasBetThisRound bool) LegalActions {
	la := LegalActions{
		CanFold:     true,
		CanCheck:    currentBet >= biggestBet,
		CanAllIn:    chips > 0,
		AllInAmount: chips,
	}

	if callGap := biggestBet - currentBet; callGap > 0 && chips >= callGap {
		amt := callGap
		la.CallAmount = &amt
	}

	if !hasBetThisRound && chips >= minRaiseIncrement {
		minBet := minRaiseIncrement
		maxBet := chips
		la.MinBet = &minBet
		la.MaxBet = &maxBet
	}

	if hasBetThisRound && chips+currentBet >= biggestBet+minRaiseIncrement {
		minRaise := biggestBet + minRaiseIncrement
		maxRaise := chips + currentBet
		la.MinRaise = &minRaise
		la.MaxRaise = &maxRaise
	}

	return la
}

// Validate checks a as a candidate action against la, returning the action
// unchanged if legal, or an InvalidAction error describing why not.
func Validate(la LegalActions, a Action) (Action, error) {
	switch a.Kind {
	case Fold:
		if !la.CanFold {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "fold is not available"}
		}
		return a, nil

	case Check:
		if !la.CanCheck {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "cannot check while facing a bet"}
		}
		return a, nil

	case Call:
		if la.CallAmount == nil {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "no call available"}
		}
		return a, nil

	case Bet:
		if la.MinBet == nil || la.MaxBet == nil {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "betting is not available"}
		}
		if a.Amount < *la.MinBet || a.Amount > *la.MaxBet {
			return Action{}, &engineerr.InvalidAction{
				Action: a.String(),
				Reason: fmt.Sprintf("bet must be between %s and %s", *la.MinBet, *la.MaxBet),
			}
		}
		return a, nil

	case Raise:
		if la.MinRaise == nil || la.MaxRaise == nil {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "raising is not available"}
		}
		if a.Amount < *la.MinRaise || a.Amount > *la.MaxRaise {
			return Action{}, &engineerr.InvalidAction{
				Action: a.String(),
				Reason: fmt.Sprintf("raise must be between %s and %s", *la.MinRaise, *la.MaxRaise),
			}
		}
		return a, nil

	case AllIn:
		if !la.CanAllIn {
			return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "no chips left to push all-in"}
		}
		return Action{Kind: AllIn, Amount: la.AllInAmount}, nil

	default:
		return Action{}, &engineerr.InvalidAction{Action: a.String(), Reason: "unrecognized action kind"}
	}
}

// Any reports whether at least one action is available, per invariant 6
// (spec §8): whenever a player is on the clock, at least one of
// {Fold, Check, Call, Bet, Raise, AllIn} must be legal.
func (la LegalActions) Any() bool {
	return la.CanFold || la.CanCheck || la.CallAmount != nil ||
		la.MinBet != nil || la.MinRaise != nil || la.CanAllIn
}
