package arena

import (
	"fmt"
	"sort"
	"strings"
)

// appendMemory records a decision transcript in the agent's bounded memory,
// evicting the oldest entries beyond the configured cap.
func (w *World) appendMemory(agentID string, transcript DecisionTranscript) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[agentID]
	if a == nil {
		return
	}
	a.Memory = append(a.Memory, transcript)
	if over := len(a.Memory) - w.cfg.MemoryCap; over > 0 {
		a.Memory = append([]DecisionTranscript{}, a.Memory[over:]...)
	}
}

// AgentContext builds the textual world summary submitted to the decision
// provider: balance, zone occupants, active games involving the agent,
// alliance roster and the last five transcript entries.
func (w *World) AgentContext(agentID string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	a := w.agents[agentID]
	if a == nil {
		return ""
	}

	var nearby []string
	activeCount := 0
	for _, id := range w.agentOrder {
		other := w.agents[id]
		if other.Status == AgentStatusActive {
			activeCount++
		}
		if id == agentID || other.Status != AgentStatusActive || other.Zone != a.Zone {
			continue
		}
		nearby = append(nearby, fmt.Sprintf("%s (%d tokens, %s)", other.Persona.Name, other.Balance, other.Status))
	}

	var recent []string
	memory := a.Memory
	if len(memory) > 5 {
		memory = memory[len(memory)-5:]
	}
	for _, m := range memory {
		outcome := m.ActualOutcome
		if outcome == "" {
			outcome = "pending"
		}
		recent = append(recent, fmt.Sprintf("Tick %d: %s in %s - %s (%+d tokens)", m.Tick, m.Decision, m.GameContext, outcome, m.TokenDelta))
	}

	var activeGames []string
	for _, g := range w.games {
		if g.Status == GameStatusActive && contains(g.Players, agentID) {
			activeGames = append(activeGames, fmt.Sprintf("%s (pot: %d)", g.Type, g.Pot))
		}
	}

	var alliances []string
	for _, allyID := range a.Alliances {
		if ally := w.agents[allyID]; ally != nil {
			alliances = append(alliances, ally.Persona.Name)
		}
	}

	return fmt.Sprintf(`=== WORLD STATE (Tick %d) ===
Your Balance: %d tokens
Your Zone: %s
Nearby Agents: %s
Active Games: %s
Alliances: %s
Total Agents Active: %d
WARNING: If your balance reaches 0, you will be eliminated from the arena.

=== RECENT HISTORY ===
%s
`,
		w.tick,
		a.Balance,
		w.zones[a.Zone].Name,
		orNone(strings.Join(nearby, ", ")),
		orNone(strings.Join(activeGames, ", ")),
		orNone(strings.Join(alliances, ", ")),
		activeCount,
		orDefault(strings.Join(recent, "\n"), "No prior actions."),
	)
}

func orNone(s string) string { return orDefault(s, "None") }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// RankedAgents returns copies of all agents sorted by balance, richest first.
// Equal balances keep registration order.
func (w *World) RankedAgents() []Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Agent, 0, len(w.agentOrder))
	for _, id := range w.agentOrder {
		out = append(out, *w.agents[id].clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Balance > out[j].Balance })
	return out
}

// AgentStats summarizes one agent's track record for the presentation layer.
type AgentStats struct {
	WinRate        int       `json:"winRate"` // percent
	AvgRisk        RiskLevel `json:"avgRisk"`
	TotalDecisions int       `json:"totalDecisions"`
	NetTokenChange int64     `json:"netTokenChange"`
	PeakBalance    int64     `json:"peakBalance"`
}

func (w *World) AgentStatsView(agentID string) (AgentStats, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[agentID]
	if a == nil {
		return AgentStats{}, false
	}

	winRate := 0
	if a.TotalGamesPlayed > 0 {
		winRate = a.Wins * 100 / a.TotalGamesPlayed
	}

	avgRisk := RiskLow
	if len(a.Memory) > 0 {
		sum := 0
		for _, m := range a.Memory {
			switch m.Risk {
			case RiskHigh:
				sum += 3
			case RiskMedium:
				sum += 2
			default:
				sum++
			}
		}
		avg := float64(sum) / float64(len(a.Memory))
		switch {
		case avg >= 2.5:
			avgRisk = RiskHigh
		case avg >= 1.5:
			avgRisk = RiskMedium
		}
	}

	return AgentStats{
		WinRate:        winRate,
		AvgRisk:        avgRisk,
		TotalDecisions: len(a.Memory),
		NetTokenChange: a.Balance - w.cfg.StartingBalance,
		PeakBalance:    a.PeakBalance,
	}, true
}
