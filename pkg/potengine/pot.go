// Package potengine implements the min-bet sweep side-pot algorithm and
// odd-chip award distribution, grounded on
// potmanager.PotManager.calculatePot (the all-in-layered sweep) and
// potmanager.PotManager.PayWinners (the winner-payout loop). Unlike the
// teacher, which mutates a *PotManager in place one action at a time, this
// package exposes pure (players, existingPots) -> newPots and
// (pots, hands) -> awards transforms, matching the pure-transition rule
// the rest of the engine follows.
package potengine

import (
	"sort"

	"holdemengine/pkg/chip"
	"holdemengine/pkg/seat"
)

// Pot is a layer of chips and the seats still eligible to win it.
type Pot struct {
	Amount   chip.Count
	Eligible []seat.Index
}

// HasEligible reports whether s can still win this pot.
func (p Pot) HasEligible(s seat.Index) bool {
	return seat.Contains(p.Eligible, s)
}

// Total sums the amount across every pot.
func Total(pots []Pot) chip.Count {
	var total chip.Count
	for _, p := range pots {
		total = total.Add(p.Amount)
	}
	return total
}

func sortedSeats(seats []seat.Index) []seat.Index {
	out := seat.Sorted(seats)
	return out
}

func eligibleEqual(a, b []seat.Index) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedSeats(a), sortedSeats(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// clonePots makes a deep-enough copy so CollectBets never mutates its
// caller's slice backing arrays.
func clonePots(pots []Pot) []Pot {
	out := make([]Pot, len(pots))
	for i, p := range pots {
		eligible := make([]seat.Index, len(p.Eligible))
		copy(eligible, p.Eligible)
		out[i] = Pot{Amount: p.Amount, Eligible: eligible}
	}
	return out
}

func sortInts(levels []chip.Count) {
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
}
