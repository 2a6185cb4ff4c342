package arena

import "fmt"

// CreateGame registers a game with all wagers already attached and returns a
// copy of it. The pot is the sum of stakes.
func (w *World) CreateGame(gtype GameType, playerIDs []string, wagers []GameWager) Game {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.gameSeq++
	var pot int64
	for _, wager := range wagers {
		pot += wager.Amount
	}
	g := &Game{
		ID:            fmt.Sprintf("game_%d_t%d", w.gameSeq, w.tick),
		Type:          gtype,
		Status:        GameStatusActive,
		Players:       append([]string{}, playerIDs...),
		Wagers:        append([]GameWager{}, wagers...),
		Pot:           pot,
		CreatedAtTick: w.tick,
	}
	w.games = append(w.games, g)
	return g.clone()
}

// ResolveGame settles a game and applies its payouts to agent balances and
// win/loss counters. The active->resolved transition is one-way: resolving an
// already-resolved or unknown game id is a no-op returning nil.
//
// Resolution is deterministic given the game's wagers and current balances;
// any randomness (an opponent's unspecified move) must be injected by the
// caller before the game reaches this point.
func (w *World) ResolveGame(gameID string) *GameResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	g := w.gameLocked(gameID)
	if g == nil || g.Status != GameStatusActive {
		return nil
	}

	var result *GameResult
	switch g.Type {
	case GameTypeSacrificeDuel:
		result = w.resolveSacrificeDuelLocked(g)
	case GameTypeOraclesGambit:
		result = w.resolveOraclesGambitLocked(g)
	case GameTypeTributeWar:
		result = w.resolveTributeWarLocked(g)
	default:
		return nil
	}

	g.Status = GameStatusResolved
	g.ResolvedAtTick = w.tick
	g.WinnerID = result.WinnerID
	g.Results = result

	for agentID, amount := range result.Payouts {
		w.adjustBalanceLocked(agentID, amount)
		a := w.agents[agentID]
		if a == nil {
			continue
		}
		a.TotalGamesPlayed++
		switch {
		case amount > 0:
			a.Wins++
		case amount < 0:
			a.Losses++
		}
	}

	return result.clone()
}

// resolveSacrificeDuelLocked applies the fixed payoff table. Payouts are flat
// constants keyed by the joint move pair and do not scale with the stake.
func (w *World) resolveSacrificeDuelLocked(g *Game) *GameResult {
	if len(g.Wagers) < 2 || g.Wagers[0].Move == "" || g.Wagers[1].Move == "" {
		return &GameResult{Losers: []string{}, Payouts: map[string]int64{}, Narrative: "Duel incomplete."}
	}
	wagerA, wagerB := g.Wagers[0], g.Wagers[1]
	aSacrifice := wagerA.Move == MoveSacrifice
	bSacrifice := wagerB.Move == MoveSacrifice
	payoffs := duelPayoffTable[[2]bool{aSacrifice, bSacrifice}]

	nameA := w.agentNameLocked(wagerA.AgentID)
	nameB := w.agentNameLocked(wagerB.AgentID)

	losers := []string{}
	if payoffs.a < 0 {
		losers = append(losers, wagerA.AgentID)
	}
	if payoffs.b < 0 {
		losers = append(losers, wagerB.AgentID)
	}

	winnerID := ""
	switch {
	case payoffs.a > payoffs.b:
		winnerID = wagerA.AgentID
	case payoffs.b > payoffs.a:
		winnerID = wagerB.AgentID
	}

	return &GameResult{
		WinnerID: winnerID,
		Losers:   losers,
		Payouts: map[string]int64{
			wagerA.AgentID: payoffs.a,
			wagerB.AgentID: payoffs.b,
		},
		Narrative: duelNarrative(nameA, nameB, wagerA.Move, wagerB.Move, payoffs),
	}
}

// resolveOraclesGambitLocked computes one boolean ground truth from the active
// total balance against the initial supply, then pays every matching bet its
// full stake and charges every mismatch its stake. Winner is the matching
// bettor with the largest stake, first max on ties.
func (w *World) resolveOraclesGambitLocked(g *Game) *GameResult {
	var totalBalance int64
	for _, a := range w.agents {
		if a.Status == AgentStatusActive {
			totalBalance += a.Balance
		}
	}
	growth := totalBalance >= w.initialSupply

	payouts := make(map[string]int64, len(g.Wagers))
	losers := []string{}
	winnerID := ""
	var maxPayout int64
	correct := 0

	for _, wager := range g.Wagers {
		betOnGrowth := wager.Move == MoveBetYes
		if betOnGrowth == growth {
			payouts[wager.AgentID] = wager.Amount
			correct++
			if wager.Amount > maxPayout {
				maxPayout = wager.Amount
				winnerID = wager.AgentID
			}
		} else {
			payouts[wager.AgentID] = -wager.Amount
			losers = append(losers, wager.AgentID)
		}
	}

	verdict := "contracted"
	if growth {
		verdict = "grown"
	}
	return &GameResult{
		WinnerID:  winnerID,
		Losers:    losers,
		Payouts:   payouts,
		Narrative: fmt.Sprintf("The Oracle reveals: the arena's economy has %s. %d agent(s) predicted correctly.", verdict, correct),
	}
}

// resolveTributeWarLocked pays the single largest stake its full stake as
// profit; everyone else loses theirs. Ties at the maximum break by list order.
func (w *World) resolveTributeWarLocked(g *Game) *GameResult {
	if len(g.Wagers) == 0 {
		return &GameResult{Losers: []string{}, Payouts: map[string]int64{}, Narrative: "The war chest stands empty."}
	}

	winnerID := g.Wagers[0].AgentID
	maxStake := g.Wagers[0].Amount
	for _, wager := range g.Wagers[1:] {
		if wager.Amount > maxStake {
			maxStake = wager.Amount
			winnerID = wager.AgentID
		}
	}

	payouts := make(map[string]int64, len(g.Wagers))
	losers := []string{}
	for _, wager := range g.Wagers {
		if wager.AgentID == winnerID {
			payouts[wager.AgentID] = wager.Amount
		} else {
			payouts[wager.AgentID] = -wager.Amount
			losers = append(losers, wager.AgentID)
		}
	}

	return &GameResult{
		WinnerID:  winnerID,
		Losers:    losers,
		Payouts:   payouts,
		Narrative: fmt.Sprintf("%s dominates the Tribute War with the largest offering, claiming the war chest.", w.agentNameLocked(winnerID)),
	}
}

func duelNarrative(nameA, nameB string, moveA, moveB GameMove, payoffs duelPayoff) string {
	switch {
	case moveA == MoveSacrifice && moveB == MoveSacrifice:
		return fmt.Sprintf("%s and %s both chose to sacrifice, a rare moment of mutual trust. Both gain %d tokens.", nameA, nameB, payoffs.a)
	case moveA == MoveSacrifice && moveB != MoveSacrifice:
		return fmt.Sprintf("%s sacrificed in good faith, but %s betrayed the pact and hoarded. %s gains %d tokens while %s loses %d.", nameA, nameB, nameB, payoffs.b, nameA, -payoffs.a)
	case moveA != MoveSacrifice && moveB == MoveSacrifice:
		return fmt.Sprintf("%s exploited %s's trust by hoarding while %s sacrificed. %s gains %d tokens.", nameA, nameB, nameB, nameA, payoffs.a)
	default:
		return fmt.Sprintf("Both %s and %s chose to hoard. Mutual distrust costs them each %d tokens.", nameA, nameB, -payoffs.a)
	}
}

func (w *World) gameLocked(id string) *Game {
	for _, g := range w.games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (w *World) agentNameLocked(id string) string {
	if a := w.agents[id]; a != nil {
		return a.Persona.Name
	}
	if id == "" {
		return "Unknown"
	}
	return id
}

// AgentName resolves an agent id to its persona name for event narration.
func (w *World) AgentName(id string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.agentNameLocked(id)
}

// GameView returns a copy of one game.
func (w *World) GameView(id string) (Game, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	g := w.gameLocked(id)
	if g == nil {
		return Game{}, false
	}
	return g.clone(), true
}

// ActiveGames returns copies of all games still awaiting resolution.
func (w *World) ActiveGames() []Game {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := []Game{}
	for _, g := range w.games {
		if g.Status == GameStatusActive {
			out = append(out, g.clone())
		}
	}
	return out
}

// RecentGames returns copies of the newest games, oldest first.
func (w *World) RecentGames(limit int) []Game {
	w.mu.Lock()
	defer w.mu.Unlock()
	if limit <= 0 || limit > len(w.games) {
		limit = len(w.games)
	}
	out := make([]Game, 0, limit)
	for _, g := range w.games[len(w.games)-limit:] {
		out = append(out, g.clone())
	}
	return out
}

// AddWager appends a wager to an active game, clamping the stake to the
// agent's balance. Used by the human wager path.
func (w *World) AddWager(gameID, agentID string, amount int64, move GameMove) (Game, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	g := w.gameLocked(gameID)
	if g == nil {
		return Game{}, ErrGameNotFound
	}
	if g.Status != GameStatusActive {
		return Game{}, ErrGameNotActive
	}
	a := w.agents[agentID]
	if a == nil {
		return Game{}, ErrAgentNotFound
	}
	if amount > a.Balance {
		amount = a.Balance
	}
	g.Wagers = append(g.Wagers, GameWager{AgentID: agentID, Amount: amount, Move: move})
	g.Pot += amount
	if !contains(g.Players, agentID) {
		g.Players = append(g.Players, agentID)
	}
	return g.clone(), nil
}
