package arena

import "testing"

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := newTestWorld(t)
	w.AddAlliance("athena", "prometheus")
	w.CreateGame(GameTypeSacrificeDuel, []string{"ares", "athena"}, []GameWager{
		{AgentID: "ares", Amount: 50, Move: MoveHoard},
		{AgentID: "athena", Amount: 50, Move: MoveSacrifice},
	})

	s := w.Snapshot()

	// Mutate the copy every way a careless caller might.
	s.Agents["ares"].Balance = -1
	s.Agents["athena"].Alliances = append(s.Agents["athena"].Alliances, "ares")
	s.Zones[ZoneTempleOfGames].Agents = nil
	s.Games[0].Wagers[0].Amount = 9999

	ares, _ := w.AgentView("ares")
	if ares.Balance != 500 {
		t.Fatalf("live balance mutated: %d", ares.Balance)
	}
	athena, _ := w.AgentView("athena")
	if len(athena.Alliances) != 1 {
		t.Fatalf("live alliances mutated: %v", athena.Alliances)
	}
	fresh := w.Snapshot()
	if len(fresh.Zones[ZoneTempleOfGames].Agents) == 0 {
		t.Fatalf("live zone roster mutated")
	}
	if fresh.Games[0].Wagers[0].Amount != 50 {
		t.Fatalf("live wager mutated: %d", fresh.Games[0].Wagers[0].Amount)
	}
}

func TestSnapshotLogQueries(t *testing.T) {
	l := NewSnapshotLog()
	if _, ok := l.Latest(); ok {
		t.Fatalf("empty log has a latest snapshot")
	}

	for tick := 1; tick <= 3; tick++ {
		l.Record(TickSnapshot{Tick: tick, Events: []Event{{Tick: tick}}})
	}

	if l.Total() != 3 {
		t.Fatalf("total = %d", l.Total())
	}
	s, ok := l.AtTick(2)
	if !ok || s.Tick != 2 {
		t.Fatalf("AtTick(2) = %v/%v", s.Tick, ok)
	}
	if _, ok := l.AtTick(9); ok {
		t.Fatalf("found a snapshot for an unrecorded tick")
	}
	latest, ok := l.Latest()
	if !ok || latest.Tick != 3 {
		t.Fatalf("latest = %v/%v", latest.Tick, ok)
	}

	l.Clear()
	if l.Total() != 0 {
		t.Fatalf("clear left %d snapshots", l.Total())
	}
}
