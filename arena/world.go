package arena

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// World owns the canonical mutable state: agents, zones, games, token supply
// and the live event buffer. It exposes atomic mutation primitives only; the
// tick loop and game resolution live elsewhere.
//
// All exported read methods return value copies. Pointer-returning helpers are
// unexported and reserved for the engine, which serializes its own access.
type World struct {
	mu sync.Mutex

	cfg Config

	tick       int
	agents     map[string]*Agent
	agentOrder []string // registration order, keeps tick iteration deterministic
	zones      map[ZoneID]*Zone
	games      []*Game
	gameSeq    int

	initialSupply int64
	totalSupply   int64

	events    []Event
	startedAt time.Time
	humanSeq  int
}

// NewWorld seeds the six personas at the starting balance, distributed
// round-robin across the four zones.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:       cfg,
		agents:    make(map[string]*Agent, len(AgentPersonas)),
		zones:     make(map[ZoneID]*Zone, len(zoneOrder)),
		startedAt: time.Now(),
	}
	for _, id := range zoneOrder {
		z := zoneCatalog[id]
		w.zones[id] = z.clone()
	}
	for i, persona := range AgentPersonas {
		zone := zoneOrder[i%len(zoneOrder)]
		agent := &Agent{
			ID:          persona.ID,
			Persona:     persona,
			Status:      AgentStatusActive,
			Balance:     cfg.StartingBalance,
			Zone:        zone,
			PeakBalance: cfg.StartingBalance,
			Alliances:   []string{},
			Followers:   []string{},
			Memory:      []DecisionTranscript{},
		}
		w.agents[persona.ID] = agent
		w.agentOrder = append(w.agentOrder, persona.ID)
		w.zones[zone].Agents = append(w.zones[zone].Agents, persona.ID)
		w.totalSupply += cfg.StartingBalance
	}
	w.initialSupply = w.totalSupply
	return w
}

func (w *World) CurrentTick() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// AdvanceTick increments the tick counter and returns the new value.
func (w *World) AdvanceTick() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tick++
	return w.tick
}

func (w *World) TotalSupply() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalSupply
}

func (w *World) InitialSupply() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.initialSupply
}

func (w *World) ActiveCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, a := range w.agents {
		if a.Status == AgentStatusActive {
			n++
		}
	}
	return n
}

// activeAgents returns live pointers in registration order. Engine use only.
func (w *World) activeAgents() []*Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Agent, 0, len(w.agentOrder))
	for _, id := range w.agentOrder {
		if a := w.agents[id]; a != nil && a.Status == AgentStatusActive {
			out = append(out, a)
		}
	}
	return out
}

func (w *World) allAgents() []*Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Agent, 0, len(w.agentOrder))
	for _, id := range w.agentOrder {
		out = append(out, w.agents[id])
	}
	return out
}

func (w *World) agent(id string) *Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.agents[id]
}

// resolveAgent finds an active agent by id, or by case-insensitive persona
// name when the reference is not a known id. Returns nil when nothing matches.
func (w *World) resolveAgent(ref string) *Agent {
	if ref == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if a := w.agents[ref]; a != nil {
		return a
	}
	lower := strings.ToLower(ref)
	for _, id := range w.agentOrder {
		a := w.agents[id]
		if a.Status == AgentStatusActive && strings.ToLower(a.Persona.Name) == lower {
			return a
		}
	}
	return nil
}

// AgentView returns a copy of one agent.
func (w *World) AgentView(id string) (Agent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[id]
	if a == nil {
		return Agent{}, false
	}
	return *a.clone(), true
}

// AgentsView returns a copied agent map safe to hand to transport layers.
func (w *World) AgentsView() map[string]*Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]*Agent, len(w.agents))
	for id, a := range w.agents {
		out[id] = a.clone()
	}
	return out
}

// AdjustBalance applies a signed delta and maintains the peak high-water mark.
func (w *World) AdjustBalance(id string, delta int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.adjustBalanceLocked(id, delta)
}

func (w *World) adjustBalanceLocked(id string, delta int64) {
	a := w.agents[id]
	if a == nil {
		return
	}
	a.Balance += delta
	if a.Balance > a.PeakBalance {
		a.PeakBalance = a.Balance
	}
}

// Transfer moves tokens atomically, clamping to the sender's balance. Returns
// the amount actually moved. Debit and credit happen under one lock; no
// negative-balance state is ever observable.
func (w *World) Transfer(fromID, toID string, amount int64) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	from := w.agents[fromID]
	to := w.agents[toID]
	if from == nil || to == nil || amount <= 0 {
		return 0
	}
	if amount > from.Balance {
		amount = from.Balance
	}
	w.adjustBalanceLocked(fromID, -amount)
	w.adjustBalanceLocked(toID, amount)
	return amount
}

// MoveAgent swaps the agent between zone rosters atomically.
func (w *World) MoveAgent(id string, to ZoneID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[id]
	if a == nil || w.zones[to] == nil || a.Zone == to {
		return
	}
	from := w.zones[a.Zone]
	roster := from.Agents[:0]
	for _, occupant := range from.Agents {
		if occupant != id {
			roster = append(roster, occupant)
		}
	}
	from.Agents = roster
	w.zones[to].Agents = append(w.zones[to].Agents, id)
	a.Zone = to
}

// ResolveZone matches a zone reference by substring against known zone ids,
// scanning in catalog order. Returns false when nothing matches.
func (w *World) ResolveZone(ref string) (ZoneID, bool) {
	lower := strings.ToLower(strings.TrimSpace(ref))
	if lower == "" {
		return "", false
	}
	for _, id := range zoneOrder {
		if strings.Contains(string(id), lower) || strings.Contains(strings.ToLower(zoneCatalog[id].Name), lower) {
			return id, true
		}
	}
	return "", false
}

func (w *World) ZoneName(id ZoneID) string {
	if z, ok := zoneCatalog[id]; ok {
		return z.Name
	}
	return string(id)
}

// MarkFallen eliminates an agent: status fallen, balance forced to zero, all
// alliance links severed bidirectionally, followers cleared.
func (w *World) MarkFallen(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[id]
	if a == nil {
		return
	}
	a.Status = AgentStatusFallen
	a.Balance = 0
	for _, allyID := range a.Alliances {
		ally := w.agents[allyID]
		if ally == nil {
			continue
		}
		kept := ally.Alliances[:0]
		for _, peer := range ally.Alliances {
			if peer != id {
				kept = append(kept, peer)
			}
		}
		ally.Alliances = kept
	}
	a.Alliances = []string{}
	a.Followers = []string{}
}

// AddAlliance links two agents symmetrically. Idempotent.
func (w *World) AddAlliance(idA, idB string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.agents[idA]
	b := w.agents[idB]
	if a == nil || b == nil || idA == idB {
		return
	}
	if !contains(a.Alliances, idB) {
		a.Alliances = append(a.Alliances, idB)
	}
	if !contains(b.Alliances, idA) {
		b.Alliances = append(b.Alliances, idA)
	}
}

// AddHuman registers a human champion, minting a starting balance into the
// total supply. Humans are skipped by the autonomous decision loop.
func (w *World) AddHuman(name, walletAddress string) Agent {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.humanSeq++
	id := fmt.Sprintf("human_%d", w.humanSeq)
	agent := &Agent{
		ID: id,
		Persona: AgentPersona{
			ID:           id,
			Name:         name,
			Title:        "Human Champion",
			Description:  "A mortal who dares to challenge the divine agents.",
			StrategyBias: "human",
			Color:        "#e8c547",
			Icon:         "user",
		},
		Status:        AgentStatusActive,
		Balance:       w.cfg.StartingBalance,
		Zone:          ZoneTempleOfGames,
		PeakBalance:   w.cfg.StartingBalance,
		Alliances:     []string{},
		Followers:     []string{},
		Memory:        []DecisionTranscript{},
		IsHuman:       true,
		WalletAddress: walletAddress,
	}
	w.agents[id] = agent
	w.agentOrder = append(w.agentOrder, id)
	w.zones[ZoneTempleOfGames].Agents = append(w.zones[ZoneTempleOfGames].Agents, id)
	w.totalSupply += w.cfg.StartingBalance
	return *agent.clone()
}

// AppendEvents pushes events into the live buffer, trimming the oldest beyond
// the configured cap. The replay archive keeps the full history; this buffer
// only feeds the live state view.
func (w *World) AppendEvents(events ...Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, events...)
	if over := len(w.events) - w.cfg.EventBufferCap; over > 0 {
		w.events = append([]Event{}, w.events[over:]...)
	}
}

// RecentEvents returns up to limit of the newest buffered events, oldest first.
func (w *World) RecentEvents(limit int) []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	if limit <= 0 || limit > len(w.events) {
		limit = len(w.events)
	}
	return append([]Event{}, w.events[len(w.events)-limit:]...)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
