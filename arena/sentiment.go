package arena

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Scorer derives per-tick sentiment and economy metrics. The sentiment score
// is a damped running scalar owned by the scorer for the lifetime of the
// engine; it cannot be recomputed from a single snapshot and is only cleared
// by an explicit Reset.
type Scorer struct {
	mu      sync.Mutex
	cfg     Config
	score   float64
	history []SentimentMetrics
}

const neutralSentiment = 50

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg, score: neutralSentiment}
}

// Score accumulates a weighted delta from this tick's events, applies half of
// it to the running scalar (damping), clamps to [0,100], and computes the
// point-in-time descriptive stats from current balances.
func (s *Scorer) Score(tick int, events []Event, agents map[string]*Agent) SentimentMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	triggers := []string{}
	delta := 0

	for _, ev := range events {
		switch ev.Type {
		case EventPersuasionAttempt:
			delta += weightPersuasion
			triggers = append(triggers, "Persuasion event")
		case EventGameResolve:
			delta += weightGameCompleted
			if ev.Amount > s.cfg.BigWagerThreshold {
				delta += weightBigWagerWin
				triggers = append(triggers, fmt.Sprintf("Big wager resolved: %d tokens", ev.Amount))
			}
		case EventAllianceFormed:
			delta += weightAllianceFormed
			triggers = append(triggers, "Alliance formed")
		case EventAgentFallen:
			delta += weightAgentFallen
			triggers = append(triggers, fmt.Sprintf("%s eliminated", ev.AgentName))
		case EventTokenTransfer:
			delta += weightTokenTransfer
		}
	}

	s.score = clampFloat(s.score+float64(delta)*0.5, 0, 100)

	var balances []int64
	var totalBalance int64
	influence := 0
	for _, a := range agents {
		if a.Status != AgentStatusActive {
			continue
		}
		balances = append(balances, a.Balance)
		totalBalance += a.Balance
		influence += len(a.Alliances)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i] > balances[j] })

	var topTwo int64
	for i := 0; i < len(balances) && i < 2; i++ {
		topTwo += balances[i]
	}
	dominance := 0.0
	if totalBalance > 0 {
		dominance = float64(topTwo) / float64(totalBalance) * 100
	}

	demand, velocity := 0, 0
	for _, ev := range events {
		if ev.Type == EventGameStart || ev.Type == EventGameResolve {
			demand++
		}
		if ev.Type == EventTokenTransfer || ev.Type == EventGameResolve {
			velocity++
		}
	}

	metrics := SentimentMetrics{
		Tick:           tick,
		DemandIndex:    demand,
		InfluenceScore: influence,
		Velocity:       velocity,
		Dominance:      roundTenth(dominance),
		SentimentScore: roundTenth(s.score),
		Triggers:       triggers,
	}
	s.history = append(s.history, metrics)
	return metrics
}

func (s *Scorer) History() []SentimentMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentimentMetrics{}, s.history...)
}

func (s *Scorer) Latest() (SentimentMetrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return SentimentMetrics{}, false
	}
	return s.history[len(s.history)-1], true
}

// Reset clears the history and reseeds the running scalar at neutral.
func (s *Scorer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.score = neutralSentiment
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
