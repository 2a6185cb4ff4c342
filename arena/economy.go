package arena

import (
	"math"
	"sort"
	"sync"
)

// Economy keeps the append-only snapshot history and the running cumulative
// wagered/transferred totals across ticks.
type Economy struct {
	mu               sync.Mutex
	history          []EconomySnapshot
	totalWagered     int64
	totalTransferred int64
}

func NewEconomy() *Economy {
	return &Economy{}
}

// Record folds this tick's contributions into the running totals and appends
// one immutable snapshot.
func (e *Economy) Record(tick int, agents map[string]*Agent, sentiment SentimentMetrics, tickWagered, tickTransferred int64) EconomySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.totalWagered += tickWagered
	e.totalTransferred += tickTransferred

	balances := make(map[string]int64, len(agents))
	var totalSupply int64
	for id, a := range agents {
		balances[id] = a.Balance
		totalSupply += a.Balance
	}

	snapshot := EconomySnapshot{
		Tick:             tick,
		TotalSupply:      totalSupply,
		TotalWagered:     e.totalWagered,
		TotalTransferred: e.totalTransferred,
		AgentBalances:    balances,
		Sentiment:        sentiment,
	}
	e.history = append(e.history, snapshot)
	return snapshot
}

func (e *Economy) History() []EconomySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]EconomySnapshot{}, e.history...)
}

func (e *Economy) Latest() (EconomySnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.history) == 0 {
		return EconomySnapshot{}, false
	}
	return e.history[len(e.history)-1], true
}

func (e *Economy) TotalWagered() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalWagered
}

func (e *Economy) TotalTransferred() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalTransferred
}

func (e *Economy) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
	e.totalWagered = 0
	e.totalTransferred = 0
}

// AgentShare is one row of the dominance breakdown.
type AgentShare struct {
	AgentID    string  `json:"agentId"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Balance    int64   `json:"balance"`
}

// DominanceBreakdown lists each active agent's share of the active supply,
// largest first.
func DominanceBreakdown(agents map[string]*Agent) []AgentShare {
	var total int64
	for _, a := range agents {
		if a.Status == AgentStatusActive {
			total += a.Balance
		}
	}
	if total == 0 {
		return []AgentShare{}
	}

	out := []AgentShare{}
	for _, a := range agents {
		if a.Status != AgentStatusActive {
			continue
		}
		out = append(out, AgentShare{
			AgentID:    a.ID,
			Name:       a.Persona.Name,
			Percentage: math.Round(float64(a.Balance)/float64(total)*1000) / 10,
			Balance:    a.Balance,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].AgentID < out[j].AgentID
	})
	return out
}
