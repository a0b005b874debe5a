package gameloop

import "holdemengine/pkg/tableengine"

// StopPredicate decides whether the loop should stop before starting
// another hand, given the table as it stands and how many hands have
// already been played.
type StopPredicate func(t tableengine.Table, handsPlayed int) bool

// AfterNHands stops once handsPlayed reaches n.
func AfterNHands(n int) StopPredicate {
	return func(_ tableengine.Table, handsPlayed int) bool {
		return handsPlayed >= n
	}
}

// FewerThan stops once fewer than min seats hold chips, since
// tableengine.StartNextHand itself refuses to deal with fewer than two
// funded seats; this lets a caller stop a three-or-more-handed game the
// moment it narrows below a higher threshold instead of running it down
// to heads-up.
func FewerThan(min int) StopPredicate {
	return func(t tableengine.Table, _ int) bool {
		funded := 0
		for _, chips := range t.Seats {
			if chips > 0 {
				funded++
			}
		}
		return funded < min
	}
}

// Any stops as soon as any one of preds would stop.
func Any(preds ...StopPredicate) StopPredicate {
	return func(t tableengine.Table, handsPlayed int) bool {
		for _, p := range preds {
			if p(t, handsPlayed) {
				return true
			}
		}
		return false
	}
}
