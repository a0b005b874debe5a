package handstate

import "holdemengine/pkg/chip"

// ForcedBets names the blind schedule that drives preflop action: the small
// and big blind amounts posted at Start.
type ForcedBets struct {
	SB chip.Count
	BB chip.Count
}
