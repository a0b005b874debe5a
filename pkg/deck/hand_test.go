package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustCard(t *testing.T, s string) Card {
	t.Helper()
	c, err := CardFromString(s)
	assert.NoError(t, err)
	return c
}

func TestHand_HasCard(t *testing.T) {
	hand := Hand{mustCard(t, "2c"), mustCard(t, "3c"), mustCard(t, "4d")}
	assert.True(t, hand.HasCard(mustCard(t, "3c")))
	assert.False(t, hand.HasCard(mustCard(t, "3s")))
}

func TestHand_Plus(t *testing.T) {
	a := assert.New(t)

	h1 := Hand{mustCard(t, "2c"), mustCard(t, "3c")}
	h2 := Hand{mustCard(t, "4d")}

	joined := h1.Plus(h2)
	a.Len(joined, 3)
	a.Equal(mustCard(t, "4d"), joined[2])
	a.Len(h1, 2, "Plus must not mutate the receiver")
}

func TestHand_Clone(t *testing.T) {
	a := assert.New(t)

	h := Hand{mustCard(t, "2c"), mustCard(t, "3c")}
	clone := h.Clone()
	clone[0] = mustCard(t, "9s")

	a.Equal(mustCard(t, "2c"), h[0], "mutating the clone must not affect the original")
}

func TestHand_Sort(t *testing.T) {
	a := assert.New(t)

	h := Hand{mustCard(t, "14s"), mustCard(t, "2c"), mustCard(t, "5c")}
	sort.Sort(h)

	a.Equal(mustCard(t, "2c"), h[0])
	a.Equal(mustCard(t, "5c"), h[1])
	a.Equal(mustCard(t, "14s"), h[2])
}

func TestHand_String(t *testing.T) {
	h := Hand{mustCard(t, "14s"), mustCard(t, "3c")}
	assert.Equal(t, "14s,3c", h.String())
}
