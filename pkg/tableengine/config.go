package tableengine

import (
	"holdemengine/pkg/engineerr"
	"holdemengine/pkg/handstate"
)

// Config holds a table's fixed parameters: seat capacity and the blind
// schedule forwarded to handstate.Start on every hand.
type Config struct {
	MaxSeats   int
	ForcedBets handstate.ForcedBets
}

// Validate checks MaxSeats falls within spec.md's [2, 10] bound.
func (c Config) Validate() error {
	if c.MaxSeats < 2 || c.MaxSeats > 10 {
		return &engineerr.InvalidConfig{Reason: "max_seats must be between 2 and 10"}
	}
	return nil
}
