// Package tableengine is the multi-hand table session (spec §4.5): seating,
// button rotation, starting hands, and folding a completed hand's results
// and event log back into the table. It is grounded on the teacher's
// table.PlayerTable (a seat-indexed roster with a balance adjusted per
// hand), rebuilt as an in-memory value type rather than a Postgres-backed
// row, since persistence is an explicit Non-goal of the core.
package tableengine

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"holdemengine/internal/rng"
	"holdemengine/pkg/action"
	"holdemengine/pkg/bettinground"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/engineerr"
	"holdemengine/pkg/event"
	"holdemengine/pkg/handrank"
	"holdemengine/pkg/handstate"
	"holdemengine/pkg/seat"
)

// Table is a table's session state: its seated players' chip stacks, the
// dealer button, any in-progress hand, and the merged event history. Every
// exported function returns a new Table rather than mutating its argument.
type Table struct {
	Config      Config
	Seats       map[seat.Index]chip.Count
	Button      *seat.Index
	CurrentHand *handstate.HandState
	HandCount   int
	Events      []event.GameEvent
	Ranker      handrank.Ranker

	// Log receives structured diagnostics (hand started, seat busted, hand
	// complete). A nil Log uses logrus's standard logger, matching
	// texasholdem.Game's logrus.FieldLogger constructor argument.
	Log logrus.FieldLogger
}

func (t Table) logger() logrus.FieldLogger {
	if t.Log != nil {
		return t.Log
	}
	return logrus.StandardLogger()
}

// New constructs an empty table, failing if config is invalid.
func New(config Config, ranker handrank.Ranker) (Table, error) {
	if err := config.Validate(); err != nil {
		return Table{}, err
	}
	return Table{
		Config: config,
		Seats:  make(map[seat.Index]chip.Count),
		Ranker: ranker,
	}, nil
}

func (t Table) clone() Table {
	seats := make(map[seat.Index]chip.Count, len(t.Seats))
	for s, c := range t.Seats {
		seats[s] = c
	}
	events := make([]event.GameEvent, len(t.Events))
	copy(events, t.Events)

	var button *seat.Index
	if t.Button != nil {
		b := *t.Button
		button = &b
	}

	return Table{
		Config:      t.Config,
		Seats:       seats,
		Button:      button,
		CurrentHand: t.CurrentHand,
		HandCount:   t.HandCount,
		Events:      events,
		Ranker:      t.Ranker,
		Log:         t.Log,
	}
}

// SitDown seats chips at s, failing with SeatOccupied or TableFull.
func SitDown(t Table, s seat.Index, chips chip.Count, now time.Time) (Table, error) {
	if _, ok := t.Seats[s]; ok {
		return Table{}, &engineerr.SeatOccupied{Seat: int(s)}
	}
	if len(t.Seats) >= t.Config.MaxSeats {
		return Table{}, &engineerr.TableFull{}
	}

	next := t.clone()
	next.Seats[s] = chips
	next.Events = append(next.Events, event.NewPlayerSatDown(s, chips, now))
	return next, nil
}

// StandUp removes the player at s, failing with SeatEmpty or HandInProgress.
func StandUp(t Table, s seat.Index, now time.Time) (Table, error) {
	if _, ok := t.Seats[s]; !ok {
		return Table{}, &engineerr.SeatEmpty{Seat: int(s)}
	}
	if t.CurrentHand != nil {
		return Table{}, &engineerr.HandInProgress{}
	}

	next := t.clone()
	delete(next.Seats, s)
	next.Events = append(next.Events, event.NewPlayerStoodUp(s, now))
	return next, nil
}

// nextButton implements spec §4.5's rotation: the first hand picks the
// smallest occupied seat; afterward, the smallest occupied seat strictly
// greater than the previous button, wrapping to the smallest if none is
// greater.
func nextButton(occupied []seat.Index, prev *seat.Index) seat.Index {
	sorted := seat.Sorted(occupied)
	if prev == nil {
		return sorted[0]
	}
	for _, s := range sorted {
		if s > *prev {
			return s
		}
	}
	return sorted[0]
}

// StartNextHand advances the button, gathers every chip-holding seat into a
// fresh roster, and delegates to handstate.Start with a freshly derived
// HandId. A hand that Start already ran to completion is folded back into
// the table at once, leaving CurrentHand nil. Fails with HandInProgress or
// NotEnoughPlayers.
func StartNextHand(t Table, seed int64, entropy rng.Generator, now time.Time) (Table, error) {
	if t.CurrentHand != nil {
		return Table{}, &engineerr.HandInProgress{}
	}

	var occupied []seat.Index
	for s := range t.Seats {
		occupied = append(occupied, s)
	}

	var eligible []seat.Index
	for _, s := range seat.Sorted(occupied) {
		if t.Seats[s] > 0 {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) < 2 {
		return Table{}, &engineerr.NotEnoughPlayers{Count: len(eligible), Min: 2}
	}

	next := t.clone()
	button := nextButton(occupied, next.Button)
	next.Button = &button

	roster := make([]handstate.Player, len(eligible))
	for i, s := range eligible {
		roster[i] = handstate.Player{Seat: s, Chips: t.Seats[s]}
	}

	handID := uuid.New()
	hs, err := handstate.Start(handID, roster, button, t.Config.ForcedBets, t.Ranker, seed, entropy, now)
	if err != nil {
		return Table{}, err
	}

	next.HandCount++
	next.logger().WithField("hand_id", handID).WithField("button", int(button)).Debug("hand started")

	if hs.Phase == bettinground.Complete {
		// nobody could act on the blinds, so Start already ran the hand out:
		// fold its results back now, exactly as Act does.
		for seatIdx, p := range hs.Players {
			if p.Chips > 0 {
				next.Seats[seatIdx] = p.Chips
			} else {
				delete(next.Seats, seatIdx)
				next.logger().WithField("seat", int(seatIdx)).Debug("seat busted")
			}
		}
		next.Events = append(next.Events, hs.Events...)
		next.logger().WithField("hand_id", handID).Debug("hand complete")
		return next, nil
	}

	next.CurrentHand = &hs
	return next, nil
}

// Act applies a to seat s against the in-progress hand, folding the hand's
// results and event log back into the table if it reaches Complete. Fails
// with NoHandInProgress, or whatever handstate.Apply returns.
func Act(t Table, s seat.Index, a action.Action, now time.Time) (Table, error) {
	if t.CurrentHand == nil {
		return Table{}, &engineerr.NoHandInProgress{}
	}

	hs, err := handstate.Apply(*t.CurrentHand, s, a, now)
	if err != nil {
		return Table{}, err
	}

	next := t.clone()
	if hs.Phase != bettinground.Complete {
		next.CurrentHand = &hs
		return next, nil
	}

	for seatIdx, p := range hs.Players {
		if p.Chips > 0 {
			next.Seats[seatIdx] = p.Chips
		} else {
			delete(next.Seats, seatIdx)
			next.logger().WithField("seat", int(seatIdx)).Debug("seat busted")
		}
	}
	next.Events = append(next.Events, hs.Events...)
	next.CurrentHand = nil
	next.logger().WithField("hand_id", hs.HandID).Debug("hand complete")
	return next, nil
}

// ActivePlayer returns the seat on the clock in the current hand, if any.
func (t Table) ActivePlayer() (seat.Index, bool) {
	if t.CurrentHand == nil {
		return 0, false
	}
	return t.CurrentHand.ActivePlayer()
}

// LegalActionsFor mirrors handstate.HandState.LegalActionsFor.
func (t Table) LegalActionsFor(s seat.Index) (action.LegalActions, bool) {
	if t.CurrentHand == nil {
		return action.LegalActions{}, false
	}
	return t.CurrentHand.LegalActionsFor(s)
}
