// Command simulate runs the arena offline and prints a per-tick digest.
// With no decision provider wired, live mode degrades every agent to its
// observe fallback; demo mode plays the scripted scenario.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"arena-lite/arena"
	"arena-lite/replay"
)

func main() {
	ticks := flag.Int("ticks", 0, "ticks to run (default: full demo script in demo mode, 10 in live)")
	mode := flag.String("mode", "demo", "simulation mode: demo or live")
	seed := flag.Int64("seed", 1, "rng seed (0 = time-based)")
	flag.Parse()

	runMode := arena.Mode(*mode)
	if runMode != arena.ModeDemo && runMode != arena.ModeLive {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	n := *ticks
	if n <= 0 {
		n = 10
		if runMode == arena.ModeDemo {
			n = arena.TotalDemoTicks()
		}
	}

	cfg := arena.DefaultConfig()
	cfg.Seed = *seed

	engine, err := arena.NewEngine(cfg, nil, nil)
	if err != nil {
		log.Fatalf("[Simulate] %v", err)
	}

	ctx := context.Background()
	for i := 0; i < n; i++ {
		outcome := engine.Advance(ctx, runMode, arena.ForcedNone)
		fmt.Printf("=== Tick %d ===\n", outcome.Tick)
		for _, ev := range outcome.Events {
			fmt.Printf("  [%s] %s\n", ev.Type, ev.Message)
		}
		fmt.Printf("  supply=%d wagered=%d transferred=%d sentiment=%.1f\n",
			outcome.Economy.TotalSupply,
			outcome.Economy.TotalWagered,
			outcome.Economy.TotalTransferred,
			outcome.Economy.Sentiment.SentimentScore)
	}

	timeline := replay.BuildTimeline(engine.Archive())
	fmt.Printf("\n=== Key Moments (%d ticks archived) ===\n", timeline.TotalTicks)
	for _, m := range timeline.KeyMoments {
		fmt.Printf("  tick %d [%s] %s\n", m.Tick, m.Type, m.Message)
	}

	fmt.Println("\n=== Final Standings ===")
	for i, agent := range engine.Leaderboard() {
		fmt.Printf("  %d. %-12s %6d tokens (%s, %dW/%dL)\n",
			i+1, agent.Persona.Name, agent.Balance, agent.Status, agent.Wins, agent.Losses)
	}
}
