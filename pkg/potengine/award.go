package potengine

import (
	"holdemengine/pkg/chip"
	"holdemengine/pkg/handrank"
	"holdemengine/pkg/seat"
)

// Award records a single payout: seat s wins amount from the pot at
// PotIndex. A pot can produce more than one Award when its best hand ties
// across multiple eligible seats.
type Award struct {
	Seat     seat.Index
	Amount   chip.Count
	PotIndex int
}

// AwardPots distributes every pot to its best eligible hand(s), splitting
// ties evenly and handing any odd remainder chip to the tied winner
// clockwise-nearest the button (the glossary's "odd chip" rule), grounded
// on potmanager.PotManager.PayWinners's winner-payout loop. Unlike the
// teacher, which rounds payouts down to the nearest ante unit and orders by
// raw table index, this distributes to the chip and orders strictly by
// seat-order distance from the button, since spec.md has no ante-unit
// rounding concept and payouts must conserve chips exactly (invariant 1,
// spec §8). A pot whose eligible set has no hand on file (the "dead money"
// case, spec §9) is skipped rather than awarded, per that section's
// resolution.
func AwardPots(pots []Pot, hands map[seat.Index]handrank.HandRank, button seat.Index, seatOrder []seat.Index) []Award {
	clockwise := seat.Clockwise(seatOrder, button)

	var awards []Award
	for potIndex, pot := range pots {
		if pot.Amount <= 0 || len(pot.Eligible) == 0 {
			continue
		}

		best, ok := bestRank(pot.Eligible, hands)
		if !ok {
			continue
		}

		winners := winnersInClockwiseOrder(pot.Eligible, hands, best, clockwise)
		if len(winners) == 0 {
			continue
		}

		share := pot.Amount / chip.Count(len(winners))
		remainder := chip.Count(int(pot.Amount) % len(winners))

		for i, s := range winners {
			amount := share
			if i == 0 {
				amount = amount.Add(remainder)
			}
			awards = append(awards, Award{Seat: s, Amount: amount, PotIndex: potIndex})
		}
	}

	return awards
}

func bestRank(eligible []seat.Index, hands map[seat.Index]handrank.HandRank) (handrank.HandRank, bool) {
	var best handrank.HandRank
	found := false

	for _, s := range eligible {
		hr, ok := hands[s]
		if !ok {
			continue
		}
		if !found || hr.Beats(best) {
			best = hr
			found = true
		}
	}

	return best, found
}

func winnersInClockwiseOrder(eligible []seat.Index, hands map[seat.Index]handrank.HandRank, best handrank.HandRank, clockwise []seat.Index) []seat.Index {
	isWinner := make(map[seat.Index]bool, len(eligible))
	for _, s := range eligible {
		if hr, ok := hands[s]; ok && hr.Rank == best.Rank {
			isWinner[s] = true
		}
	}

	var ordered []seat.Index
	for _, s := range clockwise {
		if isWinner[s] {
			ordered = append(ordered, s)
		}
	}

	return ordered
}
