// Package analyzer is a from-scratch 5-from-7 hand evaluator, adapted from
// the teacher's pkg/poker.HandAnalyzer (rank-grouping for pairs/trips/quads,
// a suit-bucketed flush scan, a rank-streak tracker for straights counted
// twice for ace-low). The teacher's version carries wild-card bookkeeping
// that a wild-free game like hold'em never exercises; this version drops
// it and fixes size at 5, since every Texas hold'em showdown hand is the
// best 5 cards out of the 5-to-7 available.
package analyzer

import (
	"fmt"
	"sort"

	"holdemengine/pkg/deck"
	"holdemengine/pkg/handrank"
)

const bestHandSize = 5

// Analyzer is the default handrank.Ranker: pure, dependency-free, and fully
// specified, which is why engine tests pin their expectations to it rather
// than to the third-party paulhankin adapter.
type Analyzer struct{}

// Rank evaluates the best 5-card hand obtainable from 5 to 7 cards.
func (Analyzer) Rank(cards deck.Hand) (handrank.HandRank, error) {
	if len(cards) < bestHandSize || len(cards) > 7 {
		return handrank.HandRank{}, fmt.Errorf("analyzer: need 5 to 7 cards, got %d", len(cards))
	}

	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	a := &analysis{cards: sorted}
	a.findFlush()
	a.findGroups()
	a.findStraights()

	category, best, tiebreak := a.classify()

	return handrank.HandRank{
		Rank:        encodeRank(category, tiebreak),
		Category:    category,
		Name:        category.String(),
		Description: describe(category, best),
		Best:        best,
	}, nil
}

// analysis holds every intermediate grouping computed from a sorted (by
// descending rank) set of 5-to-7 cards.
type analysis struct {
	cards deck.Hand

	flushSuit  deck.Suit
	hasFlush   bool
	flushCards deck.Hand // descending rank, all of flushSuit

	quads []int // ranks with 4 cards, descending
	trips []int // ranks with 3 cards, descending
	pairs []int // ranks with 2 cards, descending

	straightHigh       int // 0 if none
	straightFlushHigh  int // 0 if none
	cardsByRank        map[int]deck.Hand
}

func (a *analysis) findFlush() {
	bySuit := make(map[deck.Suit]deck.Hand)
	for _, c := range a.cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	for suit, cs := range bySuit {
		if len(cs) >= bestHandSize {
			a.hasFlush = true
			a.flushSuit = suit
			a.flushCards = cs
		}
	}
}

func (a *analysis) findGroups() {
	a.cardsByRank = make(map[int]deck.Hand)
	for _, c := range a.cards {
		a.cardsByRank[c.Rank] = append(a.cardsByRank[c.Rank], c)
	}

	ranks := make([]int, 0, len(a.cardsByRank))
	for r := range a.cardsByRank {
		ranks = append(ranks, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	for _, r := range ranks {
		switch len(a.cardsByRank[r]) {
		case 4:
			a.quads = append(a.quads, r)
		case 3:
			a.trips = append(a.trips, r)
		case 2:
			a.pairs = append(a.pairs, r)
		}
	}
}

// findStraights scans distinct ranks (high to low, with an ace-low pass
// appended) for five consecutive ranks, both across all cards and within
// the flush suit alone.
func (a *analysis) findStraights() {
	distinct := distinctDescendingRanks(a.cards)
	a.straightHigh = highestStraight(distinct)

	if a.hasFlush {
		flushDistinct := distinctDescendingRanks(a.flushCards)
		a.straightFlushHigh = highestStraight(flushDistinct)
	}
}

func distinctDescendingRanks(cards deck.Hand) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(cards))
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			out = append(out, c.Rank)
		}
	}

	if seen[deck.Ace] {
		out = append(out, deck.LowAce)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// highestStraight returns the high rank of the best 5-consecutive run in a
// descending, duplicate-free rank list (ace-low already folded in as a 1),
// or 0 if no run of 5 exists.
func highestStraight(descending []int) int {
	streak := 1
	for i := 1; i < len(descending); i++ {
		if descending[i-1]-descending[i] == 1 {
			streak++
			if streak >= bestHandSize {
				return descending[i-streak+1]
			}
		} else {
			streak = 1
		}
	}
	return 0
}

// classify picks the best category available and builds the corresponding
// 5-card hand and int tiebreak vector (most significant first).
func (a *analysis) classify() (handrank.Category, deck.Hand, []int) {
	if a.hasFlush && a.straightFlushHigh > 0 {
		cat := handrank.StraightFlush
		if a.straightFlushHigh == deck.Ace {
			cat = handrank.RoyalFlush
		}
		return cat, a.straightHand(a.flushCards, a.straightFlushHigh), []int{a.straightFlushHigh}
	}

	if len(a.quads) > 0 {
		quad := a.quads[0]
		kicker := a.bestKickers([]int{quad}, 1)
		best := append(deck.Hand{}, a.cardsByRank[quad]...)
		best = append(best, kicker...)
		return handrank.FourOfAKind, best, []int{quad, rankOf(kicker[0])}
	}

	if len(a.trips) > 0 {
		pairRank, ok := a.bestFullHousePair()
		if ok {
			trips := a.trips[0]
			best := append(deck.Hand{}, a.cardsByRank[trips]...)
			best = append(best, a.cardsByRank[pairRank][:2]...)
			return handrank.FullHouse, best, []int{trips, pairRank}
		}
	}

	if a.hasFlush {
		best := append(deck.Hand{}, a.flushCards[:bestHandSize]...)
		tiebreak := make([]int, bestHandSize)
		for i, c := range best {
			tiebreak[i] = c.Rank
		}
		return handrank.Flush, best, tiebreak
	}

	if a.straightHigh > 0 {
		return handrank.Straight, a.straightHand(a.cards, a.straightHigh), []int{a.straightHigh}
	}

	if len(a.trips) > 0 {
		trips := a.trips[0]
		kickers := a.bestKickers([]int{trips}, 2)
		best := append(deck.Hand{}, a.cardsByRank[trips]...)
		best = append(best, kickers...)
		return handrank.ThreeOfAKind, best, []int{trips, rankOf(kickers[0]), rankOf(kickers[1])}
	}

	if len(a.pairs) >= 2 {
		hi, lo := a.pairs[0], a.pairs[1]
		kickers := a.bestKickers([]int{hi, lo}, 1)
		best := append(deck.Hand{}, a.cardsByRank[hi]...)
		best = append(best, a.cardsByRank[lo]...)
		best = append(best, kickers...)
		return handrank.TwoPair, best, []int{hi, lo, rankOf(kickers[0])}
	}

	if len(a.pairs) == 1 {
		pair := a.pairs[0]
		kickers := a.bestKickers([]int{pair}, 3)
		best := append(deck.Hand{}, a.cardsByRank[pair]...)
		best = append(best, kickers...)
		return handrank.OnePair, best, []int{pair, rankOf(kickers[0]), rankOf(kickers[1]), rankOf(kickers[2])}
	}

	kickers := a.bestKickers(nil, bestHandSize)
	tiebreak := make([]int, len(kickers))
	for i, c := range kickers {
		tiebreak[i] = c.Rank
	}
	return handrank.HighCard, kickers, tiebreak
}

// bestFullHousePair picks the pairing rank for a full house: the best
// available pair, or (if there are two sets of trips) the second trips'
// rank used as a pair, whichever is higher.
func (a *analysis) bestFullHousePair() (int, bool) {
	var pairRank int
	found := false

	if len(a.pairs) > 0 {
		pairRank = a.pairs[0]
		found = true
	}

	if len(a.trips) >= 2 && (!found || a.trips[1] > pairRank) {
		pairRank = a.trips[1]
		found = true
	}

	return pairRank, found
}

// bestKickers returns the n highest cards excluding any rank in exclude,
// one card per rank, descending.
func (a *analysis) bestKickers(exclude []int, n int) deck.Hand {
	excluded := make(map[int]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}

	seen := make(map[int]bool)
	out := make(deck.Hand, 0, n)
	for _, c := range a.cards {
		if excluded[c.Rank] || seen[c.Rank] {
			continue
		}
		seen[c.Rank] = true
		out = append(out, c)
		if len(out) == n {
			break
		}
	}

	return out
}

// straightHand picks one card per rank of the 5-consecutive run starting at
// high, from the given candidate pool (which may be flush-suit-only for a
// straight flush, or the full hand for a plain straight).
func (a *analysis) straightHand(pool deck.Hand, high int) deck.Hand {
	wanted := make(map[int]bool, bestHandSize)
	for r := high; r > high-bestHandSize; r-- {
		rank := r
		if rank == 1 {
			rank = deck.Ace
		}
		wanted[rank] = true
	}

	out := make(deck.Hand, 0, bestHandSize)
	seen := make(map[int]bool)
	for _, c := range pool {
		if wanted[c.Rank] && !seen[c.Rank] {
			seen[c.Rank] = true
			out = append(out, c)
		}
	}

	return out
}

func rankOf(c deck.Card) int {
	return c.Rank
}

// encodeRank folds a category and its tiebreak vector (most significant
// first, at most 5 entries, each a rank in [1,14]) into a single total-order
// integer: category dominates, then each tiebreak slot in turn.
func encodeRank(category handrank.Category, tiebreak []int) int {
	const base = 15
	rank := int(category)
	for _, t := range tiebreak {
		rank = rank*base + t
	}
	for i := len(tiebreak); i < bestHandSize; i++ {
		rank *= base
	}
	return rank
}

func describe(category handrank.Category, best deck.Hand) string {
	return fmt.Sprintf("%s (%s)", category.String(), best.String())
}
