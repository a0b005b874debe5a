package gameloop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"holdemengine/pkg/action"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/event"
	"holdemengine/pkg/gameloop"
	"holdemengine/pkg/handrank/analyzer"
	"holdemengine/pkg/handstate"
	"holdemengine/pkg/seat"
	"holdemengine/pkg/strategy"
	"holdemengine/pkg/tableengine"
)

var fixedTime = time.Unix(1700000000, 0)

func fixedClock() time.Time { return fixedTime }

func twoSeatTable(t *testing.T) tableengine.Table {
	tbl, err := tableengine.New(tableengine.Config{MaxSeats: 2, ForcedBets: handstate.ForcedBets{SB: 1, BB: 2}}, analyzer.Analyzer{})
	assert.NoError(t, err)
	tbl, err = tableengine.SitDown(tbl, seat.Index(0), chip.Count(100), fixedTime)
	assert.NoError(t, err)
	tbl, err = tableengine.SitDown(tbl, seat.Index(1), chip.Count(100), fixedTime)
	assert.NoError(t, err)
	return tbl
}

func TestLoop_StopsAfterNHands(t *testing.T) {
	a := assert.New(t)

	loop := gameloop.Loop{
		Strategies: map[seat.Index]gameloop.Strategy{
			0: strategy.AlwaysFold{},
			1: strategy.AlwaysFold{},
		},
		StopWhen: gameloop.AfterNHands(3),
	}

	final, err := loop.Run(twoSeatTable(t), 123, fixedClock)
	a.NoError(err)
	a.Equal(3, final.HandCount)
	a.Equal(chip.Count(200), totalSeatChips(final))
}

func TestLoop_StopsWhenTooFewFundedSeatsRemain(t *testing.T) {
	a := assert.New(t)

	// seat 0 always folds and seat 1 plays passively, so seat 0 gives up its
	// blind whenever it is asked to act and its stack drains toward zero.
	loop := gameloop.Loop{
		Strategies: map[seat.Index]gameloop.Strategy{
			0: strategy.AlwaysFold{},
			1: strategy.Passive{},
		},
		StopWhen: gameloop.FewerThan(2),
		MaxHands: 500,
	}

	final, err := loop.Run(twoSeatTable(t), 55, fixedClock)
	a.NoError(err)
	a.LessOrEqual(len(final.Seats), 2)
	a.Equal(chip.Count(200), totalSeatChips(final))
}

func TestLoop_DefaultActionCascadeOnIllegalStrategy(t *testing.T) {
	a := assert.New(t)

	// a "strategy" that always tries to check, even when facing a bet: the
	// loop must fall back (here to DefaultAction's zero value, Fold) instead
	// of applying an illegal action.
	alwaysCheck := gameloop.StrategyFunc(func(_ context.Context, _ gameloop.StrategyContext) (action.Action, error) {
		return action.NewCheck(), nil
	})

	loop := gameloop.Loop{
		Strategies: map[seat.Index]gameloop.Strategy{
			0: alwaysCheck,
			1: alwaysCheck,
		},
		StopWhen: gameloop.AfterNHands(1),
	}

	final, err := loop.Run(twoSeatTable(t), 7, fixedClock)
	a.NoError(err)
	a.Equal(chip.Count(200), totalSeatChips(final))
}

func TestLoop_FallsBackOnStrategyTimeout(t *testing.T) {
	a := assert.New(t)

	// a strategy that blocks until its context is cancelled: under a short
	// PerActionTimeout, the loop must move on to the fallback cascade
	// instead of hanging forever waiting on Decide.
	blocksForever := gameloop.StrategyFunc(func(ctx context.Context, _ gameloop.StrategyContext) (action.Action, error) {
		<-ctx.Done()
		return action.Action{}, ctx.Err()
	})

	loop := gameloop.Loop{
		Strategies: map[seat.Index]gameloop.Strategy{
			0: blocksForever,
			1: blocksForever,
		},
		PerActionTimeout: 10 * time.Millisecond,
		StopWhen:         gameloop.AfterNHands(1),
	}

	final, err := loop.Run(twoSeatTable(t), 7, fixedClock)
	a.NoError(err)
	a.Equal(1, final.HandCount)
	a.Equal(chip.Count(200), totalSeatChips(final))
}

func TestLoop_EmitsEventsViaOnEvent(t *testing.T) {
	a := assert.New(t)

	var captured []event.Kind
	loop := gameloop.Loop{
		Strategies: map[seat.Index]gameloop.Strategy{
			0: strategy.AlwaysFold{},
			1: strategy.AlwaysFold{},
		},
		StopWhen: gameloop.AfterNHands(1),
		OnEvent: func(e event.GameEvent) {
			captured = append(captured, e.Kind)
		},
	}

	_, err := loop.Run(twoSeatTable(t), 7, fixedClock)
	a.NoError(err)
	a.Contains(captured, event.HandStarted)
	a.Contains(captured, event.HandEnded)
}

func totalSeatChips(t tableengine.Table) chip.Count {
	total := chip.Zero
	for _, c := range t.Seats {
		total = total.Add(c)
	}
	return total
}
