package deck

import (
	"math/rand"

	"holdemengine/internal/rng"
	"holdemengine/pkg/engineerr"
)

// Deck is an immutable, ordered sequence of cards. Every operation returns
// a new Deck value rather than mutating the receiver, matching the
// engine-wide rule that transitions return new state instead of aliasing
// mutable storage (spec §5). This trades the teacher's pkg/deck.Deck
// (a *Deck with in-place Draw/Shuffle) for value semantics; the shuffle
// algorithm (Fisher-Yates keyed by a recorded seed) is unchanged.
type Deck []Card

// New52 returns the unshuffled 52-card universe in rank-major order.
func New52() Deck {
	cards := make(Deck, 0, 52)
	for rank := 2; rank <= Ace; rank++ {
		for _, suit := range AllSuits {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Shuffle returns a new permutation of d using a Fisher-Yates shuffle keyed
// by seed. A seed of 0 asks for fresh, non-reproducible entropy (drawn from
// the given Generator, or from internal/rng.Crypto when it is nil); a non-zero seed
// reproduces the exact same permutation every time, which is how tests pin
// a hand's deal deterministically. Returns the permutation and the seed
// actually used.
func Shuffle(d Deck, seed int64, entropy rng.Generator) (Deck, int64) {
	if seed == 0 {
		seed = seedFromEntropy(entropy)
	}

	r := rand.New(rand.NewSource(seed))
	out := make(Deck, len(d))
	copy(out, d)

	for j := len(out) - 1; j > 0; j-- {
		i := r.Intn(j + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out, seed
}

func seedFromEntropy(entropy rng.Generator) int64 {
	if entropy == nil {
		entropy = rng.Crypto{}
	}
	if c, ok := entropy.(interface{ Seed() int64 }); ok {
		return c.Seed()
	}

	seed := int64(entropy.Intn(1<<62)) + 1
	return seed
}

// Draw removes the first n cards from d and returns them along with the
// remaining deck. It is the pure analogue of the teacher's mutating
// Deck.Draw: (drawn, rest) instead of an in-place pop.
func Draw(d Deck, n int) (Hand, Deck, error) {
	if n < 0 || n > len(d) {
		return nil, d, &engineerr.DeckExhausted{Requested: n, Remaining: len(d)}
	}

	drawn := make(Hand, n)
	for i := 0; i < n; i++ {
		drawn[i] = d[i]
	}

	rest := make(Deck, len(d)-n)
	copy(rest, d[n:])

	return drawn, rest, nil
}

// DealHoleCards deals two cards to each seat in seatOrder, sequentially:
// seatOrder[0] gets the first two cards drawn, seatOrder[1] the next two,
// and so on, matching spec §4.3's "seat0 gets deck[0..2], seat1 gets
// deck[2..4], ..." rule.
func DealHoleCards(d Deck, seatOrder []int) (map[int]Hand, Deck, error) {
	holes := make(map[int]Hand, len(seatOrder))
	remaining := d

	for _, s := range seatOrder {
		var drawn Hand
		var err error
		drawn, remaining, err = Draw(remaining, 2)
		if err != nil {
			return nil, d, err
		}
		holes[s] = drawn
	}

	return holes, remaining, nil
}

// DealFlop implements the burn-then-deal rule for the flop: discard one
// card, then deal three. It returns the three flop cards and the deck with
// both the burn card and the flop cards removed.
func DealFlop(d Deck) (Hand, Deck, error) {
	return burnThenDeal(d, 3)
}

// DealOne implements the burn-then-deal rule for the turn and the river:
// discard one card, then deal one.
func DealOne(d Deck) (Hand, Deck, error) {
	return burnThenDeal(d, 1)
}

func burnThenDeal(d Deck, n int) (Hand, Deck, error) {
	_, afterBurn, err := Draw(d, 1)
	if err != nil {
		return nil, d, err
	}

	dealt, rest, err := Draw(afterBurn, n)
	if err != nil {
		return nil, d, err
	}

	return dealt, rest, nil
}

// CardsLeft returns the number of cards remaining in d.
func CardsLeft(d Deck) int {
	return len(d)
}
