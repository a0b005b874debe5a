package bettinground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"holdemengine/pkg/action"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/seat"
)

func threeHanded() []Player {
	return []Player{
		{Seat: 0, Chips: 98, CurrentBet: 2},
		{Seat: 1, Chips: 99, CurrentBet: 1},
		{Seat: 2, Chips: 100},
	}
}

func TestNew_ActiveQueueRotatedToFirstToAct(t *testing.T) {
	a := assert.New(t)

	r := New(Preflop, threeHanded(), 2, chip.Count(2), chip.Count(2))
	active, ok := r.ActivePlayer()
	a.True(ok)
	a.Equal(seat.Index(2), active)
}

func TestNew_CompleteWhenOnlyOneCanAct(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 98, CurrentBet: 2},
		{Seat: 1, Chips: 0, CurrentBet: 100, IsAllIn: true},
	}
	r := New(Preflop, players, 0, chip.Count(100), chip.Count(2))
	a.True(r.IsComplete)
}

func TestApply_RejectsWrongSeat(t *testing.T) {
	a := assert.New(t)

	r := New(Preflop, threeHanded(), 2, chip.Count(2), chip.Count(2))
	_, err := Apply(r, seat.Index(0), action.NewFold())
	a.Error(err)
}

func TestApply_FoldRemovesFromQueueAndMarksFolded(t *testing.T) {
	a := assert.New(t)

	r := New(Preflop, threeHanded(), 2, chip.Count(2), chip.Count(2))
	r2, err := Apply(r, seat.Index(2), action.NewFold())
	a.NoError(err)

	a.False(seat.Contains(r2.ActiveQueue, seat.Index(2)))
	p, _ := r2.Player(seat.Index(2))
	a.True(p.IsFolded)
}

func TestApply_CallMatchesBiggestBet(t *testing.T) {
	a := assert.New(t)

	r := New(Preflop, threeHanded(), 2, chip.Count(2), chip.Count(2))
	r2, err := Apply(r, seat.Index(2), action.NewCall())
	a.NoError(err)

	p, _ := r2.Player(seat.Index(2))
	a.Equal(chip.Count(2), p.CurrentBet)
	a.Equal(chip.Count(98), p.Chips)
}

func TestApply_CallAllInRemovesFromQueue(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 98, CurrentBet: 2},
		{Seat: 1, Chips: 1, CurrentBet: 1},
		{Seat: 2, Chips: 100, CurrentBet: 2},
	}
	r := New(Preflop, players, 1, chip.Count(2), chip.Count(2))
	r2, err := Apply(r, seat.Index(1), action.NewCall())
	a.NoError(err)

	p, _ := r2.Player(seat.Index(1))
	a.True(p.IsAllIn)
	a.Equal(chip.Count(0), p.Chips)
	a.False(seat.Contains(r2.ActiveQueue, seat.Index(1)))
}

func TestApply_BetReopensActionForEveryoneElse(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 100},
		{Seat: 1, Chips: 100},
	}
	r := New(Flop, players, 0, chip.Zero, chip.Count(2))

	r2, err := Apply(r, seat.Index(0), action.NewBet(chip.Count(10)))
	a.NoError(err)
	a.Equal(chip.Count(10), r2.BiggestBet)
	a.True(r2.HasBetThisRound)
	a.False(r2.IsComplete)

	active, ok := r2.ActivePlayer()
	a.True(ok)
	a.Equal(seat.Index(1), active)
}

func TestApply_RaiseUpdatesBiggestBetAndMinRaise(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 98, CurrentBet: 2},
		{Seat: 1, Chips: 99, CurrentBet: 1},
		{Seat: 2, Chips: 100},
	}
	r := New(Preflop, players, 2, chip.Count(2), chip.Count(2))

	r2, err := Apply(r, seat.Index(2), action.NewRaise(chip.Count(6)))
	a.NoError(err)
	a.Equal(chip.Count(6), r2.BiggestBet)
	a.Equal(chip.Count(4), r2.MinRaise)

	p, _ := r2.Player(seat.Index(2))
	a.Equal(chip.Count(6), p.CurrentBet)
	a.Equal(chip.Count(94), p.Chips)
}

func TestApply_ShortAllInDoesNotReopenActedSeats(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 100, CurrentBet: 10},
		{Seat: 1, Chips: 3, CurrentBet: 10},
		{Seat: 2, Chips: 100, CurrentBet: 10},
	}
	r := New(Flop, players, 1, chip.Count(10), chip.Count(10))
	r.Acted[seat.Index(0)] = true
	r.Acted[seat.Index(2)] = true

	r2, err := Apply(r, seat.Index(1), action.NewAllIn())
	a.NoError(err)
	a.Equal(chip.Count(13), r2.BiggestBet, "short all-in still raises biggest_bet")
	a.True(r2.Acted[seat.Index(0)], "a short all-in must not clear acted for earlier players")
	a.True(r2.Acted[seat.Index(2)])
}

func TestApply_FullRaiseAllInReopensAction(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 100, CurrentBet: 10},
		{Seat: 1, Chips: 50, CurrentBet: 10},
		{Seat: 2, Chips: 100, CurrentBet: 10},
	}
	r := New(Flop, players, 1, chip.Count(10), chip.Count(10))
	r.Acted[seat.Index(0)] = true
	r.Acted[seat.Index(2)] = true

	r2, err := Apply(r, seat.Index(1), action.NewAllIn())
	a.NoError(err)
	a.Equal(chip.Count(60), r2.BiggestBet)
	a.False(r2.Acted[seat.Index(0)], "a full-raise all-in reopens action")
	a.False(r2.Acted[seat.Index(2)])
}

func TestApply_RoundCompletesWhenEveryoneHasActed(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 100},
		{Seat: 1, Chips: 100},
	}
	r := New(Flop, players, 0, chip.Zero, chip.Count(2))

	r, err := Apply(r, seat.Index(0), action.NewCheck())
	a.NoError(err)
	a.False(r.IsComplete)

	r, err = Apply(r, seat.Index(1), action.NewCheck())
	a.NoError(err)
	a.True(r.IsComplete)
}

func TestApply_RoundCompletesWhenFoldedToOne(t *testing.T) {
	a := assert.New(t)

	players := []Player{
		{Seat: 0, Chips: 98, CurrentBet: 2},
		{Seat: 1, Chips: 99, CurrentBet: 1},
	}
	r := New(Preflop, players, 1, chip.Count(2), chip.Count(2))

	r, err := Apply(r, seat.Index(1), action.NewFold())
	a.NoError(err)
	a.True(r.IsComplete)
}
