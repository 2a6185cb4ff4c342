package arena

import (
	"strings"
	"testing"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return NewWorld(DefaultConfig())
}

func TestSacrificeDuelPayoffs(t *testing.T) {
	cases := []struct {
		name  string
		moveA GameMove
		moveB GameMove
		wantA int64
		wantB int64
		// empty winner means draw
		winner string
	}{
		{"mutual sacrifice", MoveSacrifice, MoveSacrifice, 80, 80, ""},
		{"a betrayed", MoveSacrifice, MoveHoard, -50, 120, "athena"},
		{"b betrayed", MoveHoard, MoveSacrifice, 120, -50, "prometheus"},
		{"mutual hoard", MoveHoard, MoveHoard, -20, -20, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			g := w.CreateGame(GameTypeSacrificeDuel, []string{"prometheus", "athena"}, []GameWager{
				{AgentID: "prometheus", Amount: 50, Move: tc.moveA},
				{AgentID: "athena", Amount: 50, Move: tc.moveB},
			})
			result := w.ResolveGame(g.ID)
			if result == nil {
				t.Fatalf("expected result, got nil")
			}
			if got := result.Payouts["prometheus"]; got != tc.wantA {
				t.Fatalf("payout A = %d, want %d", got, tc.wantA)
			}
			if got := result.Payouts["athena"]; got != tc.wantB {
				t.Fatalf("payout B = %d, want %d", got, tc.wantB)
			}
			if result.WinnerID != tc.winner {
				t.Fatalf("winner = %q, want %q", result.WinnerID, tc.winner)
			}
		})
	}
}

// Duel payouts are flat constants; the stake changes the pot but never the
// token deltas.
func TestSacrificeDuelPayoutsIgnoreStake(t *testing.T) {
	for _, stake := range []int64{10, 100, 200} {
		w := newTestWorld(t)
		g := w.CreateGame(GameTypeSacrificeDuel, []string{"ares", "hades"}, []GameWager{
			{AgentID: "ares", Amount: stake, Move: MoveHoard},
			{AgentID: "hades", Amount: stake, Move: MoveSacrifice},
		})
		result := w.ResolveGame(g.ID)
		if result.Payouts["ares"] != 120 || result.Payouts["hades"] != -50 {
			t.Fatalf("stake %d: payouts = %v, want ares=120 hades=-50", stake, result.Payouts)
		}
		if g.Pot != stake*2 {
			t.Fatalf("stake %d: pot = %d, want %d", stake, g.Pot, stake*2)
		}
	}
}

func TestSacrificeDuelAppliesBalancesAndRecords(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeSacrificeDuel, []string{"athena", "ares"}, []GameWager{
		{AgentID: "athena", Amount: 50, Move: MoveSacrifice},
		{AgentID: "ares", Amount: 50, Move: MoveHoard},
	})
	result := w.ResolveGame(g.ID)
	if result == nil {
		t.Fatalf("expected result")
	}

	ares, _ := w.AgentView("ares")
	athena, _ := w.AgentView("athena")
	if ares.Balance != 620 {
		t.Fatalf("ares balance = %d, want 620", ares.Balance)
	}
	if athena.Balance != 450 {
		t.Fatalf("athena balance = %d, want 450", athena.Balance)
	}
	if ares.Wins != 1 || ares.Losses != 0 || ares.TotalGamesPlayed != 1 {
		t.Fatalf("ares record = %dW/%dL/%d games", ares.Wins, ares.Losses, ares.TotalGamesPlayed)
	}
	if athena.Wins != 0 || athena.Losses != 1 {
		t.Fatalf("athena record = %dW/%dL", athena.Wins, athena.Losses)
	}
	if ares.PeakBalance != 620 {
		t.Fatalf("ares peak = %d, want 620", ares.PeakBalance)
	}

	// The narrative names both gods with their signed deltas.
	for _, want := range []string{"Athena", "Ares", "gains 120", "loses 50"} {
		if !strings.Contains(result.Narrative, want) {
			t.Fatalf("narrative %q missing %q", result.Narrative, want)
		}
	}
}

func TestResolveGameIdempotent(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeSacrificeDuel, []string{"ares", "athena"}, []GameWager{
		{AgentID: "ares", Amount: 50, Move: MoveHoard},
		{AgentID: "athena", Amount: 50, Move: MoveSacrifice},
	})
	if w.ResolveGame(g.ID) == nil {
		t.Fatalf("first resolve should settle")
	}
	if w.ResolveGame(g.ID) != nil {
		t.Fatalf("second resolve must be a no-op")
	}
	if w.ResolveGame("game_missing") != nil {
		t.Fatalf("unknown game must resolve to nil")
	}

	ares, _ := w.AgentView("ares")
	if ares.Balance != 620 {
		t.Fatalf("double resolve changed balance: %d", ares.Balance)
	}
}

func TestOraclesGambitGrowthTruth(t *testing.T) {
	w := newTestWorld(t)

	// Balances untouched, so active total equals initial supply: growth.
	g := w.CreateGame(GameTypeOraclesGambit, []string{"apollo", "hermes"}, []GameWager{
		{AgentID: "apollo", Amount: 45, Move: MoveBetYes},
		{AgentID: "hermes", Amount: 30, Move: MoveBetNo},
	})
	result := w.ResolveGame(g.ID)
	if result.Payouts["apollo"] != 45 {
		t.Fatalf("correct bettor payout = %d, want 45", result.Payouts["apollo"])
	}
	if result.Payouts["hermes"] != -30 {
		t.Fatalf("wrong bettor payout = %d, want -30", result.Payouts["hermes"])
	}
	if result.WinnerID != "apollo" {
		t.Fatalf("winner = %q, want apollo", result.WinnerID)
	}
}

func TestOraclesGambitContraction(t *testing.T) {
	w := newTestWorld(t)
	// Burn tokens so the active total drops below the initial supply.
	w.AdjustBalance("hades", -100)

	g := w.CreateGame(GameTypeOraclesGambit, []string{"apollo"}, []GameWager{
		{AgentID: "apollo", Amount: 60, Move: MoveBetNo},
	})
	result := w.ResolveGame(g.ID)
	if result.Payouts["apollo"] != 60 {
		t.Fatalf("payout = %d, want 60 for correct contraction bet", result.Payouts["apollo"])
	}
}

func TestOraclesGambitWinnerIsLargestCorrectStake(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeOraclesGambit, []string{"apollo", "prometheus", "hermes"}, []GameWager{
		{AgentID: "apollo", Amount: 40, Move: MoveBetYes},
		{AgentID: "prometheus", Amount: 90, Move: MoveBetYes},
		{AgentID: "hermes", Amount: 120, Move: MoveBetNo},
	})
	result := w.ResolveGame(g.ID)
	if result.WinnerID != "prometheus" {
		t.Fatalf("winner = %q, want prometheus", result.WinnerID)
	}
	if len(result.Losers) != 1 || result.Losers[0] != "hermes" {
		t.Fatalf("losers = %v, want [hermes]", result.Losers)
	}
}

func TestTributeWarLargestStakeWins(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeTributeWar, []string{"ares", "prometheus", "hades"}, []GameWager{
		{AgentID: "ares", Amount: 30, Move: MoveContribute},
		{AgentID: "prometheus", Amount: 80, Move: MoveContribute},
		{AgentID: "hades", Amount: 50, Move: MoveContribute},
	})
	result := w.ResolveGame(g.ID)
	if result.WinnerID != "prometheus" {
		t.Fatalf("winner = %q, want prometheus", result.WinnerID)
	}
	want := map[string]int64{"ares": -30, "prometheus": 80, "hades": -50}
	for id, amount := range want {
		if result.Payouts[id] != amount {
			t.Fatalf("payout[%s] = %d, want %d", id, result.Payouts[id], amount)
		}
	}
}

func TestTributeWarTieBreaksByListOrder(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeTributeWar, []string{"hermes", "apollo"}, []GameWager{
		{AgentID: "hermes", Amount: 60, Move: MoveContribute},
		{AgentID: "apollo", Amount: 60, Move: MoveContribute},
	})
	result := w.ResolveGame(g.ID)
	if result.WinnerID != "hermes" {
		t.Fatalf("tie winner = %q, want first-listed hermes", result.WinnerID)
	}
}

func TestDuelWithMissingMoveIsDraw(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeSacrificeDuel, []string{"ares", "athena"}, []GameWager{
		{AgentID: "ares", Amount: 50, Move: MoveHoard},
		{AgentID: "athena", Amount: 50},
	})
	result := w.ResolveGame(g.ID)
	if result == nil {
		t.Fatalf("expected incomplete-duel result")
	}
	if len(result.Payouts) != 0 || result.WinnerID != "" {
		t.Fatalf("incomplete duel must settle with no payouts, got %v", result.Payouts)
	}
}

func TestAddWagerClampsToBalance(t *testing.T) {
	w := newTestWorld(t)
	human := w.AddHuman("Mortal", "0xabc")

	g := w.CreateGame(GameTypeTributeWar, []string{"ares"}, []GameWager{
		{AgentID: "ares", Amount: 80, Move: MoveContribute},
	})
	updated, err := w.AddWager(g.ID, human.ID, 10_000, MoveContribute)
	if err != nil {
		t.Fatalf("AddWager: %v", err)
	}
	last := updated.Wagers[len(updated.Wagers)-1]
	if last.Amount != human.Balance {
		t.Fatalf("wager clamped to %d, want %d", last.Amount, human.Balance)
	}
	if updated.Pot != 80+human.Balance {
		t.Fatalf("pot = %d, want %d", updated.Pot, 80+human.Balance)
	}
}

func TestAddWagerRejectsResolvedGame(t *testing.T) {
	w := newTestWorld(t)
	g := w.CreateGame(GameTypeSacrificeDuel, []string{"ares", "athena"}, []GameWager{
		{AgentID: "ares", Amount: 50, Move: MoveHoard},
		{AgentID: "athena", Amount: 50, Move: MoveHoard},
	})
	w.ResolveGame(g.ID)

	if _, err := w.AddWager(g.ID, "hermes", 10, MoveContribute); err != ErrGameNotActive {
		t.Fatalf("err = %v, want ErrGameNotActive", err)
	}
	if _, err := w.AddWager("nope", "hermes", 10, MoveContribute); err != ErrGameNotFound {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}
