package potengine

import (
	"holdemengine/pkg/chip"
	"holdemengine/pkg/seat"
)

// Player is the minimal per-player view CollectBets needs: a seat, the
// chips committed this betting round, and fold/all-in status. It is
// deliberately narrower than handstate.Player so potengine has no
// dependency on the rest of the engine.
type Player struct {
	Seat       seat.Index
	CurrentBet chip.Count
	IsFolded   bool
	IsAllIn    bool
}

type contribution struct {
	seat   seat.Index
	amount chip.Count
	folded bool
	allIn  bool
}

// CollectBets sweeps this round's committed bets into pot layers and merges
// them onto existingPots, implementing the spec's min-bet sweep (§4.4):
// contributions are grouped into layers at every all-in amount plus the
// top (biggest-bet) level; a layer's amount is the sum of every
// contributor's share up to that level, and its eligible set is every
// non-folded contributor who reached it. The bottom new layer merges into
// existingPots' last pot when their eligible sets agree (the common case:
// no new side-pot boundary opened at the lowest level); otherwise it starts
// a fresh pot. Every existing pot's eligible set is first stripped of any
// seat that folded this round, since folding revokes eligibility
// immediately (invariant 10, spec §8) rather than at award time.
func CollectBets(players []Player, existingPots []Pot) []Pot {
	folded := make(map[seat.Index]bool)
	for _, p := range players {
		if p.IsFolded {
			folded[p.Seat] = true
		}
	}

	pots := clonePots(existingPots)
	for i, p := range pots {
		pots[i] = Pot{Amount: p.Amount, Eligible: withoutFolded(p.Eligible, folded)}
	}

	var contributions []contribution
	maxAmount := chip.Zero
	for _, p := range players {
		if p.CurrentBet <= 0 {
			continue
		}
		contributions = append(contributions, contribution{
			seat:   p.Seat,
			amount: p.CurrentBet,
			folded: p.IsFolded,
			allIn:  p.IsAllIn,
		})
		if p.CurrentBet > maxAmount {
			maxAmount = p.CurrentBet
		}
	}

	if len(contributions) == 0 {
		return pots
	}

	levelSet := map[chip.Count]bool{maxAmount: true}
	for _, c := range contributions {
		if c.allIn && !c.folded {
			levelSet[c.amount] = true
		}
	}

	levels := make([]chip.Count, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sortInts(levels)

	var newLayers []Pot
	prev := chip.Zero
	for _, level := range levels {
		amount := chip.Zero
		var eligible []seat.Index

		for _, c := range contributions {
			share := chip.Min(c.amount, level)
			if share > prev {
				amount = amount.Add(share.Sub(prev))
			}
			if !c.folded && c.amount >= level {
				eligible = append(eligible, c.seat)
			}
		}

		if amount > 0 {
			newLayers = append(newLayers, Pot{Amount: amount, Eligible: sortedSeats(eligible)})
		}
		prev = level
	}

	if len(pots) > 0 && len(newLayers) > 0 && eligibleEqual(pots[len(pots)-1].Eligible, newLayers[0].Eligible) {
		pots[len(pots)-1].Amount = pots[len(pots)-1].Amount.Add(newLayers[0].Amount)
		newLayers = newLayers[1:]
	}

	return append(pots, newLayers...)
}

func withoutFolded(seats []seat.Index, folded map[seat.Index]bool) []seat.Index {
	out := make([]seat.Index, 0, len(seats))
	for _, s := range seats {
		if !folded[s] {
			out = append(out, s)
		}
	}
	return out
}
