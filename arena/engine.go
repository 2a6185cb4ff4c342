package arena

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"arena-lite/txlog"
)

// Engine drives the simulation. One Advance call is one tick: every active
// agent decides and acts, stale games resolve, bankrupt agents fall, and the
// completed tick is archived for replay. Advance, ForceGame and Reset are
// serialized by the engine mutex; concurrent callers queue rather than
// interleave ticks.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	world     *World
	decider   *Decider
	scorer    *Scorer
	economy   *Economy
	archive   *SnapshotLog
	txs       *txlog.Log
	publisher ReceiptPublisher
	provider  DecisionProvider
	rng       *rand.Rand

	lastTickDuration time.Duration
}

func NewEngine(cfg Config, provider DecisionProvider, publisher ReceiptPublisher) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	world := NewWorld(cfg)
	return &Engine{
		cfg:       cfg,
		world:     world,
		decider:   NewDecider(world, provider, cfg.ProviderTimeout),
		scorer:    NewScorer(cfg),
		economy:   NewEconomy(),
		archive:   NewSnapshotLog(),
		txs:       txlog.New(),
		publisher: publisher,
		provider:  provider,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Advance runs one tick. It never fails: a dead provider, an unparseable
// decision or a failed receipt publish degrades that one agent's turn, not
// the tick. The returned outcome is all value copies.
func (e *Engine) Advance(ctx context.Context, mode Mode, forced ForcedEvent) TickOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	tick := e.world.AdvanceTick()

	var tickEvents []Event
	var tickWagered, tickTransferred int64

	if forced != ForcedNone {
		tickEvents = append(tickEvents, e.applyForced(forced, tick)...)
	}

	var demoEvents []ScriptEvent
	if mode == ModeDemo {
		demoEvents = DemoEventsForTick(tick)
	}

	for _, agent := range e.world.activeAgents() {
		if agent.IsHuman {
			continue // humans act through the wager endpoint
		}

		decision := e.decider.Decide(ctx, agent, mode, scriptHintFor(demoEvents, agent.ID))

		switch decision.Action {
		case ActionChallenge:
			wagered, events := e.applyChallenge(ctx, mode, tick, agent, decision)
			tickWagered += wagered
			tickEvents = append(tickEvents, events...)

		case ActionTransfer:
			transferred, events := e.applyTransfer(ctx, mode, tick, agent, decision)
			tickTransferred += transferred
			tickEvents = append(tickEvents, events...)

		case ActionMove:
			zone, ok := e.world.ResolveZone(decision.Target)
			if !ok {
				zone = zoneOrder[e.rng.Intn(len(zoneOrder))]
			}
			if zone != agent.Zone {
				e.world.MoveAgent(agent.ID, zone)
				ev := newEvent(EventZoneMove, tick, agent.ID, agent.Persona.Name,
					fmt.Sprintf("%s moves to %s", agent.Persona.Name, e.world.ZoneName(zone)))
				tickEvents = append(tickEvents, ev)
			}

		default:
			ev := newEvent(EventAgentDecision, tick, agent.ID, agent.Persona.Name,
				fmt.Sprintf("%s observes the arena. %q", agent.Persona.Name, decision.Transcript.Reasoning))
			tickEvents = append(tickEvents, ev)
		}
	}

	// Games left unresolved by their creating tick settle now.
	for _, g := range e.world.ActiveGames() {
		if g.CreatedAtTick >= tick {
			continue
		}
		result := e.world.ResolveGame(g.ID)
		if result == nil {
			continue
		}
		name := "Draw"
		if result.WinnerID != "" {
			name = e.world.AgentName(result.WinnerID)
		}
		ev := newEvent(EventGameResolve, tick, result.WinnerID, name, result.Narrative)
		ev.GameID = g.ID
		ev.Amount = g.Pot
		tickEvents = append(tickEvents, ev)
	}

	// Bankruptcy sweep: anyone at or below zero falls, exactly once.
	for _, a := range e.world.allAgents() {
		if a.Status != AgentStatusActive || a.Balance > 0 {
			continue
		}
		e.world.MarkFallen(a.ID)
		ev := newEvent(EventAgentFallen, tick, a.ID, a.Persona.Name,
			fmt.Sprintf("%s has fallen from the arena after losing all tokens.", a.Persona.Name))
		tickEvents = append(tickEvents, ev)
	}

	e.world.AppendEvents(tickEvents...)

	agents := e.world.AgentsView()
	sentiment := e.scorer.Score(tick, tickEvents, agents)
	economy := e.economy.Record(tick, agents, sentiment, tickWagered, tickTransferred)

	e.archive.Record(TickSnapshot{
		Tick:      tick,
		World:     e.world.Snapshot(),
		Events:    append([]Event{}, tickEvents...),
		Economy:   economy,
		Timestamp: time.Now(),
	})

	// The completion marker goes to the caller only; it is not part of the
	// tick's recorded history.
	tickEvents = append(tickEvents, newEvent(EventTickComplete, tick, "", "",
		fmt.Sprintf("Tick %d complete. %d agents active.", tick, e.world.ActiveCount())))

	e.lastTickDuration = time.Since(start)

	return TickOutcome{
		Tick:    tick,
		Events:  tickEvents,
		Agents:  agents,
		Games:   e.world.RecentGames(e.cfg.RecentGamesLimit),
		Economy: economy,
	}
}

func (e *Engine) applyChallenge(ctx context.Context, mode Mode, tick int, agent *Agent, decision Decision) (int64, []Event) {
	target := e.world.resolveAgent(decision.Target)
	if target == nil {
		for _, other := range e.world.activeAgents() {
			if other.ID != agent.ID {
				target = other
				break
			}
		}
	}
	if target == nil || target.ID == agent.ID || target.Status != AgentStatusActive {
		return 0, nil
	}

	amount := decision.Amount
	if amount <= 0 {
		amount = 30
	}
	if amount > agent.Balance {
		amount = agent.Balance
	}
	gtype := decision.GameType
	if gtype == "" {
		gtype = GameTypeSacrificeDuel
	}
	move := decision.Move
	if move == "" {
		move = MoveSacrifice
	}
	opponentMove := MoveHoard
	if e.rng.Intn(2) == 0 {
		opponentMove = MoveSacrifice
	}

	game := e.world.CreateGame(gtype, []string{agent.ID, target.ID}, []GameWager{
		{AgentID: agent.ID, Amount: amount, Move: move},
		{AgentID: target.ID, Amount: amount, Move: opponentMove},
	})

	startEv := newEvent(EventGameStart, tick, agent.ID, agent.Persona.Name,
		fmt.Sprintf("%s challenges %s to a %s (%d tokens wagered)",
			agent.Persona.Name, target.Persona.Name, strings.ReplaceAll(string(gtype), "_", " "), amount))
	startEv.GameID = game.ID
	events := []Event{startEv}

	result := e.world.ResolveGame(game.ID)
	if result != nil {
		txHash, block := e.publishReceipt(ctx, mode, txlog.TypeWager, agent.Persona.Name, target.Persona.Name, game.Pot, tick)

		winnerID, winnerName := agent.ID, agent.Persona.Name
		if result.WinnerID != "" {
			winnerID = result.WinnerID
			winnerName = e.world.AgentName(result.WinnerID)
		}
		resolveEv := newEvent(EventGameResolve, tick, winnerID, winnerName, result.Narrative)
		resolveEv.GameID = game.ID
		resolveEv.Amount = game.Pot
		resolveEv.TxHash = txHash
		events = append(events, resolveEv)

		e.txs.Append(txlog.Record{
			TxHash:      txHash,
			Type:        txlog.TypeWager,
			FromAgent:   agent.Persona.Name,
			ToAgent:     target.Persona.Name,
			Amount:      game.Pot,
			Tick:        tick,
			Timestamp:   time.Now(),
			BlockNumber: block,
		})
	}

	return amount * 2, events
}

func (e *Engine) applyTransfer(ctx context.Context, mode Mode, tick int, agent *Agent, decision Decision) (int64, []Event) {
	target := e.world.resolveAgent(decision.Target)
	if target == nil || target.ID == agent.ID || decision.Amount <= 0 {
		return 0, nil
	}

	moved := e.world.Transfer(agent.ID, target.ID, decision.Amount)
	if moved <= 0 {
		return 0, nil
	}

	txHash, block := e.publishReceipt(ctx, mode, txlog.TypeTransfer, agent.Persona.Name, target.Persona.Name, moved, tick)

	ev := newEvent(EventTokenTransfer, tick, agent.ID, agent.Persona.Name,
		fmt.Sprintf("%s transfers %d tokens to %s", agent.Persona.Name, moved, target.Persona.Name))
	ev.TargetID = target.ID
	ev.TargetName = target.Persona.Name
	ev.Amount = moved
	ev.TxHash = txHash

	e.txs.Append(txlog.Record{
		TxHash:      txHash,
		Type:        txlog.TypeTransfer,
		FromAgent:   agent.Persona.Name,
		ToAgent:     target.Persona.Name,
		Amount:      moved,
		Tick:        tick,
		Timestamp:   time.Now(),
		BlockNumber: block,
	})

	return moved, []Event{ev}
}

// applyForced pairs two random non-human active agents for a persuasion or
// alliance beat and records a matching transcript for the initiator.
func (e *Engine) applyForced(kind ForcedEvent, tick int) []Event {
	var candidates []*Agent
	for _, a := range e.world.activeAgents() {
		if !a.IsHuman {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) < 2 {
		return nil
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	a, b := candidates[0], candidates[1]

	var ev Event
	switch kind {
	case ForcedAlliance:
		e.world.AddAlliance(a.ID, b.ID)
		ev = newEvent(EventAllianceFormed, tick, a.ID, a.Persona.Name,
			fmt.Sprintf("%s and %s form a strategic alliance.", a.Persona.Name, b.Persona.Name))
	case ForcedPersuasion:
		ev = newEvent(EventPersuasionAttempt, tick, a.ID, a.Persona.Name,
			fmt.Sprintf("%s attempts to persuade %s to join their cause.", a.Persona.Name, b.Persona.Name))
	default:
		return nil
	}
	ev.TargetID = b.ID
	ev.TargetName = b.Persona.Name
	e.decider.Forced(kind, a, b)
	return []Event{ev}
}

// ForceGame stages an immediate game between two random agents without
// advancing the tick. Moves are random on both sides.
func (e *Engine) ForceGame(ctx context.Context, gtype GameType, mode Mode) TickOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gtype == "" {
		gtype = GameTypeSacrificeDuel
	}
	tick := e.world.CurrentTick()

	var candidates []*Agent
	for _, a := range e.world.activeAgents() {
		if !a.IsHuman {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) < 2 {
		return TickOutcome{
			Tick:   tick,
			Events: []Event{},
			Agents: e.world.AgentsView(),
			Games:  []Game{},
			Economy: EconomySnapshot{
				Tick:          tick,
				AgentBalances: map[string]int64{},
				Sentiment:     SentimentMetrics{Tick: tick, SentimentScore: neutralSentiment, Triggers: []string{}},
			},
		}
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	a, b := candidates[0], candidates[1]

	const wager = int64(50)
	game := e.world.CreateGame(gtype, []string{a.ID, b.ID}, []GameWager{
		{AgentID: a.ID, Amount: wager, Move: e.randomDuelMove()},
		{AgentID: b.ID, Amount: wager, Move: e.randomDuelMove()},
	})

	startEv := newEvent(EventGameStart, tick, a.ID, a.Persona.Name,
		fmt.Sprintf("[FORCED] %s vs %s in %s (%d tokens each)",
			a.Persona.Name, b.Persona.Name, strings.ReplaceAll(string(gtype), "_", " "), wager))
	startEv.GameID = game.ID
	events := []Event{startEv}

	result := e.world.ResolveGame(game.ID)
	if result != nil {
		txHash, block := e.publishReceipt(ctx, mode, txlog.TypeWager, a.Persona.Name, b.Persona.Name, game.Pot, tick)

		name := "Draw"
		if result.WinnerID != "" {
			name = e.world.AgentName(result.WinnerID)
		}
		resolveEv := newEvent(EventGameResolve, tick, result.WinnerID, name, result.Narrative)
		resolveEv.GameID = game.ID
		resolveEv.Amount = game.Pot
		resolveEv.TxHash = txHash
		events = append(events, resolveEv)

		e.txs.Append(txlog.Record{
			TxHash:      txHash,
			Type:        txlog.TypeWager,
			FromAgent:   a.Persona.Name,
			ToAgent:     b.Persona.Name,
			Amount:      game.Pot,
			Tick:        tick,
			Timestamp:   time.Now(),
			BlockNumber: block,
		})
	}

	e.world.AppendEvents(events...)

	agents := e.world.AgentsView()
	sentiment := e.scorer.Score(tick, events, agents)
	economy := e.economy.Record(tick, agents, sentiment, wager*2, 0)

	resolved, _ := e.world.GameView(game.ID)
	return TickOutcome{Tick: tick, Events: events, Agents: agents, Games: []Game{resolved}, Economy: economy}
}

// ForceTransfer gifts tokens between two random agents without advancing the
// tick. Candidates need a balance above 50; the amount is the smaller of 50
// and a tenth of the sender's balance.
func (e *Engine) ForceTransfer(ctx context.Context, mode Mode) (txlog.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var candidates []*Agent
	for _, a := range e.world.activeAgents() {
		if !a.IsHuman && a.Balance > 50 {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) < 2 {
		return txlog.Record{}, ErrNotEnoughAgents
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	from, to := candidates[0], candidates[1]

	amount := from.Balance / 10
	if amount > 50 {
		amount = 50
	}
	tick := e.world.CurrentTick()
	moved := e.world.Transfer(from.ID, to.ID, amount)

	txHash, block := e.publishReceipt(ctx, mode, txlog.TypeTransfer, from.Persona.Name, to.Persona.Name, moved, tick)

	ev := newEvent(EventTokenTransfer, tick, from.ID, from.Persona.Name,
		fmt.Sprintf("[FORCED] %s transfers %d tokens to %s", from.Persona.Name, moved, to.Persona.Name))
	ev.TargetID = to.ID
	ev.TargetName = to.Persona.Name
	ev.Amount = moved
	ev.TxHash = txHash
	e.world.AppendEvents(ev)

	record := txlog.Record{
		TxHash:      txHash,
		Type:        txlog.TypeTransfer,
		FromAgent:   from.Persona.Name,
		ToAgent:     to.Persona.Name,
		Amount:      moved,
		Tick:        tick,
		Timestamp:   time.Now(),
		BlockNumber: block,
	}
	e.txs.Append(record)
	return record, nil
}

func (e *Engine) randomDuelMove() GameMove {
	if e.rng.Intn(2) == 0 {
		return MoveSacrifice
	}
	return MoveHoard
}

// publishReceipt asks the external ledger to acknowledge an economic action.
// Live mode only; any failure falls back to a locally generated pseudo-hash.
func (e *Engine) publishReceipt(ctx context.Context, mode Mode, t txlog.Type, from, to string, amount int64, tick int) (string, int64) {
	txHash := pseudoTxHash(e.rng)
	var block int64
	if mode != ModeLive {
		return txHash, block
	}
	receipt, err := e.publisher.Publish(ctx, ReceiptRequest{Type: t, FromAgent: from, ToAgent: to, Amount: amount, Tick: tick})
	if err != nil {
		log.Printf("[Engine] receipt publish failed (%s, %d tokens): %v", t, amount, err)
		return txHash, block
	}
	if receipt != nil && receipt.TxHash != "" {
		txHash = receipt.TxHash
		block = receipt.BlockNumber
	}
	return txHash, block
}

// JoinHuman registers a human champion and announces the arrival.
func (e *Engine) JoinHuman(name, walletAddress string) (Agent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return Agent{}, InvalidStateError("human name required")
	}
	if walletAddress == "" {
		walletAddress = "0x0000"
	}
	agent := e.world.AddHuman(name, walletAddress)

	ev := newEvent(EventHumanJoined, e.world.CurrentTick(), agent.ID, name,
		fmt.Sprintf("%s has entered the Divine Arena as a human champion!", name))
	e.world.AppendEvents(ev)
	return agent, nil
}

// HumanWager places a human agent's wager on an active game. The game settles
// immediately once every attached wager carries a move; otherwise it stays
// active for the end-of-tick sweep.
func (e *Engine) HumanWager(agentID, gameID string, amount int64, move GameMove) (Game, *GameResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	agent, ok := e.world.AgentView(agentID)
	if !ok {
		return Game{}, nil, ErrAgentNotFound
	}
	if !agent.IsHuman {
		return Game{}, nil, ErrNotHuman
	}

	game, err := e.world.AddWager(gameID, agentID, amount, move)
	if err != nil {
		return Game{}, nil, err
	}

	tick := e.world.CurrentTick()
	ev := newEvent(EventHumanWager, tick, agentID, agent.Persona.Name,
		fmt.Sprintf("%s wagers %d tokens on %s", agent.Persona.Name, amount, strings.ReplaceAll(string(game.Type), "_", " ")))
	ev.GameID = game.ID
	ev.Amount = amount
	e.world.AppendEvents(ev)

	for _, wager := range game.Wagers {
		if wager.Move == "" {
			return game, nil, nil
		}
	}
	result := e.world.ResolveGame(gameID)
	game, _ = e.world.GameView(gameID)
	return game, result, nil
}

// Reset rebuilds the world from scratch and clears every accumulator. The
// archive and transaction log objects survive so handlers holding references
// keep working.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.world = NewWorld(e.cfg)
	e.decider = NewDecider(e.world, e.provider, e.cfg.ProviderTimeout)
	e.scorer.Reset()
	e.economy.Reset()
	e.archive.Clear()
	e.txs.Clear()
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) CurrentTick() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.CurrentTick()
}

// StateSnapshot deep-copies the live world for the read API.
func (e *Engine) StateSnapshot() WorldSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Snapshot()
}

func (e *Engine) Agents() map[string]*Agent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.AgentsView()
}

func (e *Engine) Agent(id string) (Agent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.AgentView(id)
}

func (e *Engine) AgentStats(id string) (AgentStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.AgentStatsView(id)
}

// Leaderboard returns all agents sorted richest first.
func (e *Engine) Leaderboard() []Agent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.RankedAgents()
}

func (e *Engine) ActiveGames() []Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.ActiveGames()
}

func (e *Engine) RecentGames(limit int) []Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.RecentGames(limit)
}

func (e *Engine) RecentEvents(limit int) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.RecentEvents(limit)
}

func (e *Engine) EconomyHistory() []EconomySnapshot { return e.economy.History() }

func (e *Engine) SentimentHistory() []SentimentMetrics { return e.scorer.History() }

// Dominance returns each active agent's share of the active supply.
func (e *Engine) Dominance() []AgentShare {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DominanceBreakdown(e.world.AgentsView())
}

// Archive exposes the replay log. The same object survives Reset.
func (e *Engine) Archive() *SnapshotLog { return e.archive }

// Transactions exposes the transaction log. The same object survives Reset.
func (e *Engine) Transactions() *txlog.Log { return e.txs }

func (e *Engine) LastTickDuration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTickDuration
}

func newEvent(t EventType, tick int, agentID, agentName, message string) Event {
	return Event{
		ID:        "evt_" + uuid.NewString(),
		Type:      t,
		Tick:      tick,
		AgentID:   agentID,
		AgentName: agentName,
		Message:   message,
		Timestamp: time.Now(),
	}
}
