// Package strategy holds the built-in Strategy implementations spec §4.6
// names: AlwaysFold and Passive. It generalizes the teacher's bot-strategy
// split seen in lox-pokerforbots' sdk/bot package (separate random,
// calling-station, aggressive, and complex bots implementing one common
// decision interface), trimmed to the two built-ins the spec names.
package strategy

import (
	"context"

	"holdemengine/pkg/action"
	"holdemengine/pkg/gameloop"
)

// AlwaysFold folds every time folding is legal, and checks when it isn't
// (action.Compute always offers Fold, so the check branch only serves
// callers that build a LegalActions without it).
type AlwaysFold struct{}

// Decide implements gameloop.Strategy.
func (AlwaysFold) Decide(_ context.Context, sc gameloop.StrategyContext) (action.Action, error) {
	if sc.LegalActions.CanFold {
		return action.NewFold(), nil
	}
	return action.NewCheck(), nil
}

// Passive checks whenever possible, calls any bet it's facing, and only
// ever folds as a last resort (when the call amount exceeds its stack). It
// never bets or raises.
type Passive struct{}

// Decide implements gameloop.Strategy.
func (Passive) Decide(_ context.Context, sc gameloop.StrategyContext) (action.Action, error) {
	la := sc.LegalActions
	switch {
	case la.CanCheck:
		return action.NewCheck(), nil
	case la.CallAmount != nil:
		return action.NewCall(), nil
	default:
		return action.NewFold(), nil
	}
}
