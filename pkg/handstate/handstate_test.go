package handstate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"holdemengine/pkg/action"
	"holdemengine/pkg/bettinground"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/event"
	"holdemengine/pkg/handrank/analyzer"
	"holdemengine/pkg/seat"
)

var fixedTime = time.Unix(1700000000, 0)

func headsUpRoster() []Player {
	return []Player{
		{Seat: 0, Chips: 100},
		{Seat: 1, Chips: 100},
	}
}

func threeWayRoster() []Player {
	return []Player{
		{Seat: 0, Chips: 100},
		{Seat: 1, Chips: 100},
		{Seat: 2, Chips: 100},
	}
}

func eventKinds(events []event.GameEvent) []event.Kind {
	out := make([]event.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestStart_HeadsUpBlindsAndFirstToAct(t *testing.T) {
	a := assert.New(t)

	hs, err := Start(uuid.New(), headsUpRoster(), seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 42, nil, fixedTime)
	a.NoError(err)

	a.Equal(chip.Count(99), hs.Players[0].Chips)
	a.Equal(chip.Count(1), hs.Players[0].CurrentBet)
	a.Equal(chip.Count(98), hs.Players[1].Chips)
	a.Equal(chip.Count(2), hs.Players[1].CurrentBet)

	active, ok := hs.ActivePlayer()
	a.True(ok)
	a.Equal(seat.Index(0), active, "heads-up: button/SB acts first preflop")

	a.Len(hs.Players[0].HoleCards, 2)
	a.Len(hs.Players[1].HoleCards, 2)
}

func TestS1_HeadsUpFold(t *testing.T) {
	a := assert.New(t)

	hs, err := Start(uuid.New(), headsUpRoster(), seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 7, nil, fixedTime)
	a.NoError(err)

	hs, err = Apply(hs, seat.Index(0), action.NewFold(), fixedTime)
	a.NoError(err)

	a.Equal(chip.Count(99), hs.Players[0].Chips)
	a.Equal(chip.Count(101), hs.Players[1].Chips)
	a.Equal(bettinground.Complete, hs.Phase)

	expected := []event.Kind{
		event.HandStarted,
		event.BlindsPosted,
		event.HoleCardsDealt,
		event.HoleCardsDealt,
		event.PlayerActed,
		event.BettingRoundEnded,
		event.PotAwarded,
		event.HandEnded,
	}
	a.Equal(expected, eventKinds(hs.Events))
}

func TestS2_ThreeWayFlatToShowdown(t *testing.T) {
	a := assert.New(t)

	hs, err := Start(uuid.New(), threeWayRoster(), seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 99, nil, fixedTime)
	a.NoError(err)
	a.Equal(chip.Count(300), hs.TotalChips())

	// preflop: UTG(0) calls, SB(1) calls, BB(2) checks
	hs, err = Apply(hs, seat.Index(0), action.NewCall(), fixedTime)
	a.NoError(err)
	hs, err = Apply(hs, seat.Index(1), action.NewCall(), fixedTime)
	a.NoError(err)
	hs, err = Apply(hs, seat.Index(2), action.NewCheck(), fixedTime)
	a.NoError(err)
	a.Equal(chip.Count(300), hs.TotalChips())
	a.Equal(bettinground.Flop, hs.Phase)
	a.Len(hs.Community, 3)

	for _, street := range []bettinground.Phase{bettinground.Flop, bettinground.Turn, bettinground.River} {
		a.Equal(street, hs.Phase)
		for i := 0; i < 3; i++ {
			active, ok := hs.ActivePlayer()
			a.True(ok)
			hs, err = Apply(hs, active, action.NewCheck(), fixedTime)
			a.NoError(err)
		}
		a.Equal(chip.Count(300), hs.TotalChips())
	}

	a.Equal(bettinground.Complete, hs.Phase)
	a.Len(hs.Community, 5)

	var showdowns, potAwards, handEnds int
	for _, e := range hs.Events {
		switch e.Kind {
		case event.ShowdownStarted:
			showdowns++
		case event.PotAwarded:
			potAwards++
		case event.HandEnded:
			handEnds++
		}
	}
	a.Equal(1, showdowns)
	a.GreaterOrEqual(potAwards, 1)
	a.Equal(1, handEnds)

	total := chip.Zero
	for _, p := range hs.Players {
		total = total.Add(p.Chips)
	}
	a.Equal(chip.Count(300), total)
}

func TestApply_RejectsActionAfterComplete(t *testing.T) {
	a := assert.New(t)

	hs, err := Start(uuid.New(), headsUpRoster(), seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 7, nil, fixedTime)
	a.NoError(err)
	hs, err = Apply(hs, seat.Index(0), action.NewFold(), fixedTime)
	a.NoError(err)

	_, err = Apply(hs, seat.Index(1), action.NewCheck(), fixedTime)
	a.Error(err)
}

func TestStart_RejectsFewerThanTwoNonFoldedPlayers(t *testing.T) {
	a := assert.New(t)

	_, err := Start(uuid.New(), []Player{{Seat: 0, Chips: 100}}, seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 1, nil, fixedTime)
	a.Error(err)
}

func TestStart_BothCommittedPreflopRunsOutTheBoard(t *testing.T) {
	a := assert.New(t)

	// seat 0 posts its entire 1-chip stack as the small blind and is
	// immediately all-in; seat 1 (the only seat who can still act) has
	// nobody left to act against, so the whole board runs out with no
	// Apply call at all.
	roster := []Player{
		{Seat: 0, Chips: 1},
		{Seat: 1, Chips: 100},
	}
	hs, err := Start(uuid.New(), roster, seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 17, nil, fixedTime)
	a.NoError(err)

	a.Nil(hs.Betting)
	a.Equal(bettinground.Complete, hs.Phase)
	a.Len(hs.Community, 5)
	a.Equal(chip.Count(101), hs.TotalChips())

	var showdowns, handEnds int
	for _, e := range hs.Events {
		switch e.Kind {
		case event.ShowdownStarted:
			showdowns++
		case event.HandEnded:
			handEnds++
		}
	}
	a.Equal(1, showdowns)
	a.Equal(1, handEnds)

	total := chip.Zero
	for _, p := range hs.Players {
		total = total.Add(p.Chips)
	}
	a.Equal(chip.Count(101), total)
}

func TestStart_ShortStackPostsAllIn(t *testing.T) {
	a := assert.New(t)

	// three-handed, so two seats can still act and the preflop round stays
	// open: seat 2 posts its only chip as the big blind and is all-in.
	roster := []Player{
		{Seat: 0, Chips: 100},
		{Seat: 1, Chips: 100},
		{Seat: 2, Chips: 1},
	}
	hs, err := Start(uuid.New(), roster, seat.Index(0), ForcedBets{SB: 1, BB: 2}, analyzer.Analyzer{}, 3, nil, fixedTime)
	a.NoError(err)

	a.Equal(chip.Count(0), hs.Players[2].Chips)
	a.Equal(chip.Count(1), hs.Players[2].CurrentBet)
	a.True(hs.Players[2].IsAllIn)
}
