package replay

import (
	"context"
	"testing"

	"arena-lite/arena"
)

func runDemo(t *testing.T, ticks int) *arena.Engine {
	t.Helper()
	cfg := arena.DefaultConfig()
	cfg.Seed = 1
	e, err := arena.NewEngine(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for i := 0; i < ticks; i++ {
		e.Advance(context.Background(), arena.ModeDemo, arena.ForcedNone)
	}
	return e
}

func TestStateAtTick(t *testing.T) {
	e := runDemo(t, 3)

	s, ok := StateAtTick(e.Archive(), 2)
	if !ok {
		t.Fatalf("tick 2 missing from archive")
	}
	if s.Tick != 2 || s.World.Tick != 2 {
		t.Fatalf("snapshot ticks = %d/%d", s.Tick, s.World.Tick)
	}
	if _, ok := StateAtTick(e.Archive(), 99); ok {
		t.Fatalf("found state for an unplayed tick")
	}
}

func TestEventsForTick(t *testing.T) {
	e := runDemo(t, 1)

	events := EventsForTick(e.Archive(), 1)
	if len(events) == 0 {
		t.Fatalf("tick 1 recorded no events")
	}
	for _, ev := range events {
		if ev.Tick != 1 {
			t.Fatalf("event from tick %d in tick 1 archive", ev.Tick)
		}
	}
	if got := EventsForTick(e.Archive(), 42); len(got) != 0 {
		t.Fatalf("unplayed tick returned %d events", len(got))
	}
}

func TestEventsForTickReturnsCopy(t *testing.T) {
	e := runDemo(t, 1)

	events := EventsForTick(e.Archive(), 1)
	if len(events) == 0 {
		t.Fatalf("tick 1 recorded no events")
	}
	events[0].Message = "rewritten"

	fresh := EventsForTick(e.Archive(), 1)
	if fresh[0].Message == "rewritten" {
		t.Fatalf("mutating the returned slice changed the archive")
	}
}

func TestBuildTimeline(t *testing.T) {
	e := runDemo(t, 3)

	timeline := BuildTimeline(e.Archive())
	if timeline.TotalTicks != 3 {
		t.Fatalf("total ticks = %d, want 3", timeline.TotalTicks)
	}
	if len(timeline.Snapshots) != 3 {
		t.Fatalf("snapshots = %d", len(timeline.Snapshots))
	}

	// The scripted first tick resolves a duel, so at least one key moment
	// must exist, and only highlight-worthy types qualify.
	if len(timeline.KeyMoments) == 0 {
		t.Fatalf("no key moments in a run with resolved games")
	}
	for _, m := range timeline.KeyMoments {
		switch m.Type {
		case arena.EventGameResolve, arena.EventAgentFallen, arena.EventAllianceFormed, arena.EventHumanJoined:
		default:
			t.Fatalf("unexpected key moment type %s", m.Type)
		}
	}
}

func TestRange(t *testing.T) {
	e := runDemo(t, 5)

	got := Range(e.Archive(), 2, 4)
	if len(got) != 3 {
		t.Fatalf("range = %d snapshots, want 3", len(got))
	}
	if got[0].Tick != 2 || got[2].Tick != 4 {
		t.Fatalf("range bounds = %d..%d", got[0].Tick, got[2].Tick)
	}

	if len(Range(e.Archive(), 10, 20)) != 0 {
		t.Fatalf("out-of-range query returned snapshots")
	}
}
