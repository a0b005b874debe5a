package deck

import "strings"

// Hand represents an ordered collection of cards: hole cards, the
// community cards, or (in handrank) the 5-to-7 cards being evaluated.
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if cmp := strings.Compare(string(h[i].Suit), string(h[j].Suit)); cmp != 0 {
		return cmp < 0
	}

	return h[i].Rank < h[j].Rank
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Plus returns a new hand with other's cards appended.
func (h Hand) Plus(other Hand) Hand {
	out := make(Hand, 0, len(h)+len(other))
	out = append(out, h...)
	out = append(out, other...)
	return out
}

func (h Hand) String() string {
	strs := make([]string, len(h))
	for i, c := range h {
		strs[i] = CardToString(c)
	}
	return strings.Join(strs, ",")
}

// Clone returns a copy of the hand.
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)
	return h2
}
