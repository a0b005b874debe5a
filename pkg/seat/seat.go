// Package seat defines the bounded seat identifier and the seat-order
// rotation helpers shared by the betting round, hand lifecycle, and pot
// engine. A table's seat order is always kept sorted ascending and rotated
// relative to the button, never stored pre-rotated as a mutable list that
// could drift out of sync with the button.
package seat

import "sort"

// Index is a seat identifier in [0, 9].
type Index int

// MinIndex and MaxIndex bound the legal seat range.
const (
	MinIndex Index = 0
	MaxIndex Index = 9
)

// Valid reports whether i falls within [MinIndex, MaxIndex].
func (i Index) Valid() bool {
	return i >= MinIndex && i <= MaxIndex
}

// Sorted returns a new, ascending-sorted copy of seats.
func Sorted(seats []Index) []Index {
	out := make([]Index, len(seats))
	copy(out, seats)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RotateFrom returns seats (assumed ascending) rotated so the first element
// still present whose value is >= from becomes index 0, wrapping around
// when every seat is < from. Used to make the button (or whoever is first
// to act) seat 0 of an ordered sequence.
func RotateFrom(seats []Index, from Index) []Index {
	if len(seats) == 0 {
		return nil
	}

	sorted := Sorted(seats)
	start := 0
	for i, s := range sorted {
		if s >= from {
			start = i
			break
		}
		if i == len(sorted)-1 {
			start = 0
		}
	}

	out := make([]Index, 0, len(sorted))
	out = append(out, sorted[start:]...)
	out = append(out, sorted[:start]...)
	return out
}

// Clockwise returns seatOrder rotated so the seat immediately after button
// (in seatOrder's cyclic order) comes first. If button isn't present in
// seatOrder, the seats are returned in their existing rotation.
func Clockwise(seatOrder []Index, button Index) []Index {
	if len(seatOrder) == 0 {
		return nil
	}

	idx := -1
	for i, s := range seatOrder {
		if s == button {
			idx = i
			break
		}
	}
	if idx == -1 {
		return append([]Index(nil), seatOrder...)
	}

	n := len(seatOrder)
	out := make([]Index, n)
	for i := 0; i < n; i++ {
		out[i] = seatOrder[(idx+1+i)%n]
	}
	return out
}

// Contains reports whether seats contains s.
func Contains(seats []Index, s Index) bool {
	for _, x := range seats {
		if x == s {
			return true
		}
	}
	return false
}

// Remove returns a copy of seats with s removed (first match only).
func Remove(seats []Index, s Index) []Index {
	out := make([]Index, 0, len(seats))
	removed := false
	for _, x := range seats {
		if x == s && !removed {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out
}
