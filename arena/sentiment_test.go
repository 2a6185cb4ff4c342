package arena

import "testing"

func TestScoreStartsNeutralAndDampsDelta(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)
	w := NewWorld(cfg)

	// alliance (+3) + transfer (+1) = +4 delta, damped to +2.
	metrics := s.Score(1, []Event{
		{Type: EventAllianceFormed},
		{Type: EventTokenTransfer},
	}, w.AgentsView())

	if metrics.SentimentScore != 52 {
		t.Fatalf("score = %v, want 52", metrics.SentimentScore)
	}
	if len(metrics.Triggers) != 1 || metrics.Triggers[0] != "Alliance formed" {
		t.Fatalf("triggers = %v", metrics.Triggers)
	}
}

func TestScoreBigWagerAndFallen(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)
	w := NewWorld(cfg)

	// game resolve (+2) with pot above threshold (+8), fallen agent (-10): net 0.
	metrics := s.Score(1, []Event{
		{Type: EventGameResolve, Amount: cfg.BigWagerThreshold + 1},
		{Type: EventAgentFallen, AgentName: "Hermes"},
	}, w.AgentsView())

	if metrics.SentimentScore != 50 {
		t.Fatalf("score = %v, want 50", metrics.SentimentScore)
	}
	if len(metrics.Triggers) != 2 {
		t.Fatalf("triggers = %v", metrics.Triggers)
	}
}

func TestScoreClampsToRange(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)
	w := NewWorld(cfg)

	fallen := make([]Event, 20)
	for i := range fallen {
		fallen[i] = Event{Type: EventAgentFallen}
	}
	metrics := s.Score(1, fallen, w.AgentsView())
	if metrics.SentimentScore != 0 {
		t.Fatalf("score = %v, want clamp at 0", metrics.SentimentScore)
	}

	persuasions := make([]Event, 50)
	for i := range persuasions {
		persuasions[i] = Event{Type: EventPersuasionAttempt}
	}
	metrics = s.Score(2, persuasions, w.AgentsView())
	if metrics.SentimentScore != 100 {
		t.Fatalf("score = %v, want clamp at 100", metrics.SentimentScore)
	}
}

func TestScoreDescriptiveStats(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)
	w := NewWorld(cfg)
	w.AddAlliance("athena", "prometheus")

	metrics := s.Score(1, []Event{
		{Type: EventGameStart},
		{Type: EventGameResolve},
		{Type: EventTokenTransfer},
	}, w.AgentsView())

	if metrics.DemandIndex != 2 {
		t.Fatalf("demand = %d, want 2", metrics.DemandIndex)
	}
	if metrics.Velocity != 2 {
		t.Fatalf("velocity = %d, want 2", metrics.Velocity)
	}
	if metrics.InfluenceScore != 2 {
		t.Fatalf("influence = %d, want 2 (both alliance ends)", metrics.InfluenceScore)
	}
	// Six equal balances: top two hold a third of the supply.
	if metrics.Dominance != 33.3 {
		t.Fatalf("dominance = %v, want 33.3", metrics.Dominance)
	}
}

func TestScorerResetReseedsNeutral(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)
	w := NewWorld(cfg)

	s.Score(1, []Event{{Type: EventPersuasionAttempt}}, w.AgentsView())
	if _, ok := s.Latest(); !ok {
		t.Fatalf("expected history")
	}

	s.Reset()
	if _, ok := s.Latest(); ok {
		t.Fatalf("history survived reset")
	}
	metrics := s.Score(1, nil, w.AgentsView())
	if metrics.SentimentScore != 50 {
		t.Fatalf("post-reset score = %v, want 50", metrics.SentimentScore)
	}
}

func TestEconomyRecordAccumulates(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEconomy()
	w := NewWorld(cfg)

	first := e.Record(1, w.AgentsView(), SentimentMetrics{Tick: 1}, 100, 30)
	if first.TotalWagered != 100 || first.TotalTransferred != 30 {
		t.Fatalf("first snapshot totals: %d/%d", first.TotalWagered, first.TotalTransferred)
	}
	if first.TotalSupply != 3000 {
		t.Fatalf("supply = %d, want 3000", first.TotalSupply)
	}

	second := e.Record(2, w.AgentsView(), SentimentMetrics{Tick: 2}, 60, 0)
	if second.TotalWagered != 160 || second.TotalTransferred != 30 {
		t.Fatalf("second snapshot totals: %d/%d", second.TotalWagered, second.TotalTransferred)
	}
	if len(e.History()) != 2 {
		t.Fatalf("history = %d entries", len(e.History()))
	}
}

func TestDominanceBreakdownSharesSumAndSort(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	w.AdjustBalance("ares", 500)
	w.MarkFallen("hermes")

	shares := DominanceBreakdown(w.AgentsView())
	if len(shares) != 5 {
		t.Fatalf("shares = %d rows, want 5 active", len(shares))
	}
	if shares[0].AgentID != "ares" {
		t.Fatalf("largest share = %s, want ares", shares[0].AgentID)
	}
	for _, share := range shares {
		if share.AgentID == "hermes" {
			t.Fatalf("fallen agent included in dominance")
		}
	}
}
