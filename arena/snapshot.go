package arena

import "time"

// WorldSnapshot is a full value copy of the world at one instant. Later
// mutation of the live store is never observable through it.
type WorldSnapshot struct {
	Tick             int               `json:"tick"`
	Agents           map[string]*Agent `json:"agents"`
	Zones            map[ZoneID]*Zone  `json:"zones"`
	Games            []Game            `json:"games"`
	TotalTokenSupply int64             `json:"totalTokenSupply"`
	Events           []Event           `json:"events"`
	StartedAt        time.Time         `json:"startedAt"`
}

// Snapshot deep-copies the world state.
func (w *World) Snapshot() WorldSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := WorldSnapshot{
		Tick:             w.tick,
		Agents:           make(map[string]*Agent, len(w.agents)),
		Zones:            make(map[ZoneID]*Zone, len(w.zones)),
		Games:            make([]Game, 0, len(w.games)),
		TotalTokenSupply: w.totalSupply,
		Events:           append([]Event{}, w.events...),
		StartedAt:        w.startedAt,
	}
	for id, a := range w.agents {
		s.Agents[id] = a.clone()
	}
	for id, z := range w.zones {
		s.Zones[id] = z.clone()
	}
	for _, g := range w.games {
		s.Games = append(s.Games, g.clone())
	}
	return s
}
