// Package chip defines the non-negative chip quantity used throughout the
// engine. Wrapping a plain int in a named type keeps chip counts from being
// confused with seat indices, pot indices, or raise increments at call
// sites, the same nominal-typing idiom the rest of the engine uses for
// seat.Index.
package chip

import "fmt"

// Count is a non-negative integer quantity of chips.
type Count int

// Zero is the empty chip count.
const Zero Count = 0

// Add returns a+b. Chip counts never go negative through addition.
func (a Count) Add(b Count) Count {
	return a + b
}

// Sub returns a-b. The caller must ensure a >= b; Sub panics otherwise,
// since a negative chip count is a programming error, not a recoverable
// condition reachable through valid engine transitions.
func (a Count) Sub(b Count) Count {
	if b > a {
		panic(fmt.Sprintf("chip: subtraction would go negative: %d - %d", a, b))
	}
	return a - b
}

// TrySub returns a-b and true, or (0, false) if b > a.
func (a Count) TrySub(b Count) (Count, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// Min returns the smaller of a and b.
func Min(a, b Count) Count {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Count) Count {
	if a > b {
		return a
	}
	return b
}

// Sum totals a slice of chip counts.
func Sum(cs ...Count) Count {
	var total Count
	for _, c := range cs {
		total += c
	}
	return total
}

func (a Count) String() string {
	return fmt.Sprintf("%d", int(a))
}
