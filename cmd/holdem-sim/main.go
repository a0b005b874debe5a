// Command holdem-sim drives a tableengine.Table through a configurable
// number of hands using the built-in strategy package, reporting the
// final chip counts. It is the CLI demo the core engine itself has no
// business owning (spec.md §6: "No CLI, environment variables, or
// persistent on-disk format are part of the core").
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"holdemengine/internal/config"
	"holdemengine/pkg/chip"
	"holdemengine/pkg/gameloop"
	"holdemengine/pkg/handrank"
	"holdemengine/pkg/handrank/analyzer"
	"holdemengine/pkg/handrank/paulhankin"
	"holdemengine/pkg/handstate"
	"holdemengine/pkg/seat"
	"holdemengine/pkg/strategy"
	"holdemengine/pkg/tableengine"
)

// CLI is the flag surface for the demo, in lox-pokerforbots' kong
// struct-tag idiom rather than the teacher's hand-rolled flag parsing
// (the teacher never ships a CLI binary at all).
type CLI struct {
	Hands    int    `default:"0" help:"Number of hands to simulate (0 uses the config default)"`
	MaxSeats int    `default:"0" help:"Table seat count (0 uses the config default)"`
	Bots     int    `default:"6" help:"Number of bots to seat"`
	Opponent string `default:"passive" help:"Bot strategy: fold or passive"`
	Ranker   string `default:"" help:"Hand ranker: analyzer or paulhankin (empty uses the config default)"`
	Seed     int64  `default:"0" help:"Deck RNG seed (0 draws fresh entropy per hand)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	log := logrus.StandardLogger()
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Instance()
	if cli.Hands > 0 {
		cfg.Hands = cli.Hands
	}
	if cli.MaxSeats > 0 {
		cfg.MaxSeats = cli.MaxSeats
	}
	if cli.Ranker != "" {
		cfg.Ranker = cli.Ranker
	}

	ranker := rankerFor(cfg.Ranker)
	bot := botFor(cli.Opponent)

	tbl, err := tableengine.New(tableengine.Config{
		MaxSeats:   cfg.MaxSeats,
		ForcedBets: handstate.ForcedBets{SB: chip.Count(cfg.SmallBlind), BB: chip.Count(cfg.BigBlind)},
	}, ranker)
	if err != nil {
		log.WithError(err).Fatal("invalid table config")
	}
	tbl.Log = log

	strategies := make(map[seat.Index]gameloop.Strategy, cli.Bots)
	now := time.Now()
	for i := 0; i < cli.Bots && i <= int(seat.MaxIndex); i++ {
		s := seat.Index(i)
		tbl, err = tableengine.SitDown(tbl, s, chip.Count(cfg.StartingChips), now)
		if err != nil {
			log.WithError(err).Fatal("failed to seat bot")
		}
		strategies[s] = bot
	}

	loop := gameloop.Loop{
		Strategies: strategies,
		StopWhen:   gameloop.Any(gameloop.AfterNHands(cfg.Hands), gameloop.FewerThan(2)),
		Log:        log,
	}

	final, err := loop.Run(tbl, cli.Seed, time.Now)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}

	fmt.Printf("played %d hands\n", final.HandCount)
	for _, s := range seat.Sorted(seatsOf(final)) {
		fmt.Printf("seat %d: %s chips\n", s, final.Seats[s])
	}
}

func seatsOf(t tableengine.Table) []seat.Index {
	out := make([]seat.Index, 0, len(t.Seats))
	for s := range t.Seats {
		out = append(out, s)
	}
	return out
}

func rankerFor(name string) handrank.Ranker {
	if name == "paulhankin" {
		return paulhankin.Ranker{}
	}
	return analyzer.Analyzer{}
}

func botFor(name string) gameloop.Strategy {
	if name == "fold" {
		return strategy.AlwaysFold{}
	}
	return strategy.Passive{}
}
