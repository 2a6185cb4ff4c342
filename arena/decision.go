package arena

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DecisionRequest is the input to the external decision provider: the agent's
// static persona prompt plus a free-text world context ending in the
// enumerated-action instruction.
type DecisionRequest struct {
	AgentID      string
	SystemPrompt string
	Context      string
}

// DecisionProvider is the consumed side of the external oracle boundary. It
// returns raw text; the orchestrator owns all parsing and every failure mode.
type DecisionProvider interface {
	Decide(ctx context.Context, req DecisionRequest) (string, error)
}

// Decision is an interpreted provider response, ready for the tick loop.
type Decision struct {
	Action     Action
	Target     string // agent reference for challenge/transfer, zone for move
	GameType   GameType
	Move       GameMove
	Amount     int64
	Transcript DecisionTranscript
}

const actionInstruction = `Based on your persona and the current world state, decide your next action. Choose ONE of:
1. CHALLENGE <agent_name> <game_type> <wager_amount> - Challenge another agent to a game
2. MOVE <zone_name> - Move to a different zone
3. TRANSFER <agent_name> <amount> - Send tokens to another agent
4. OBSERVE - Watch and gather information

Respond in this exact JSON format:
{
  "action": "challenge|move|transfer|observe",
  "target": "agent_name or zone_name",
  "game_type": "sacrifice_duel|oracles_gambit|tribute_war",
  "amount": number,
  "move": "sacrifice|hoard|bet_yes|bet_no|contribute",
  "reasoning": "2-3 sentences explaining your strategic thinking",
  "risk": "low|medium|high",
  "expected_outcome": "what you expect to happen"
}`

// Decider turns one agent's turn into a Decision: scripted hints verbatim in
// demo mode, the external provider in live mode, and a safe observe fallback
// whenever either path yields nothing usable. Every decision, fallback or not,
// lands in the agent's bounded transcript memory before being returned.
type Decider struct {
	world    *World
	provider DecisionProvider
	timeout  time.Duration
}

func NewDecider(world *World, provider DecisionProvider, timeout time.Duration) *Decider {
	return &Decider{world: world, provider: provider, timeout: timeout}
}

func (d *Decider) Decide(ctx context.Context, agent *Agent, mode Mode, hint *ScriptHint) Decision {
	tick := d.world.CurrentTick()

	if mode == ModeDemo {
		if hint != nil {
			transcript := DecisionTranscript{
				AgentID:         agent.ID,
				AgentName:       agent.Persona.Name,
				Tick:            tick,
				GameContext:     orDefault(hint.Transcript.GameContext, "Free action"),
				Decision:        orDefault(hint.Transcript.Decision, "observe"),
				Reasoning:       orDefault(hint.Transcript.Reasoning, fmt.Sprintf("%s carefully observes the arena.", agent.Persona.Name)),
				Risk:            hint.Transcript.Risk,
				ExpectedOutcome: orDefault(hint.Transcript.ExpectedOutcome, "Information gathering"),
				Timestamp:       time.Now(),
			}
			if transcript.Risk == "" {
				transcript.Risk = RiskLow
			}
			d.world.appendMemory(agent.ID, transcript)
			return Decision{Action: hint.Action, Transcript: transcript}
		}
		return d.fallback(agent, tick, fmt.Sprintf("%s pauses to assess the situation.", agent.Persona.Name))
	}

	if d.provider == nil {
		return d.fallback(agent, tick, fmt.Sprintf("%s pauses to assess the situation.", agent.Persona.Name))
	}

	req := DecisionRequest{
		AgentID:      agent.ID,
		SystemPrompt: agent.Persona.SystemPrompt,
		Context:      d.world.AgentContext(agent.ID) + "\n" + actionInstruction,
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	raw, err := d.provider.Decide(callCtx, req)
	if err != nil {
		log.Printf("[Decider] provider error for %s: %v", agent.ID, err)
		return d.fallback(agent, tick, fmt.Sprintf("%s pauses to assess the situation.", agent.Persona.Name))
	}

	payload, err := extractPayload(raw)
	if err != nil {
		log.Printf("[Decider] unusable response for %s: %v", agent.ID, err)
		return d.fallback(agent, tick, fmt.Sprintf("%s contemplates their next move.", agent.Persona.Name))
	}

	gameContext := "Free action"
	if payload.GameType != "" {
		gameContext = fmt.Sprintf("%s vs %s", payload.GameType, orDefault(payload.Target, "unknown"))
	}
	transcript := DecisionTranscript{
		AgentID:         agent.ID,
		AgentName:       agent.Persona.Name,
		Tick:            tick,
		GameContext:     gameContext,
		Decision:        payload.Action,
		Reasoning:       orDefault(payload.Reasoning, "No reasoning provided."),
		Risk:            RiskLevel(orDefault(payload.Risk, string(RiskMedium))),
		ExpectedOutcome: orDefault(payload.ExpectedOutcome, "Unknown"),
		Timestamp:       time.Now(),
	}
	d.world.appendMemory(agent.ID, transcript)

	return Decision{
		Action:     Action(payload.Action),
		Target:     payload.Target,
		GameType:   GameType(payload.GameType),
		Move:       GameMove(payload.Move),
		Amount:     int64(payload.Amount),
		Transcript: transcript,
	}
}

// fallback authors an observe transcript from a persona-flavored template.
// The tick must always make forward progress, so no decision path errors out.
func (d *Decider) fallback(agent *Agent, tick int, reasoning string) Decision {
	transcript := DecisionTranscript{
		AgentID:         agent.ID,
		AgentName:       agent.Persona.Name,
		Tick:            tick,
		GameContext:     "Free action",
		Decision:        string(ActionObserve),
		Reasoning:       reasoning,
		Risk:            RiskLow,
		ExpectedOutcome: "Gather information",
		Timestamp:       time.Now(),
	}
	d.world.appendMemory(agent.ID, transcript)
	return Decision{Action: ActionObserve, Transcript: transcript}
}

// Forced records a scripted transcript for a forced persuasion or alliance
// event, keeping narrative continuity for the two agents it touches.
func (d *Decider) Forced(kind ForcedEvent, agent, target *Agent) Decision {
	tick := d.world.CurrentTick()

	decisionWord := "persuade"
	reasoning := fmt.Sprintf("%s attempts to sway %s through eloquent rhetoric and promises of shared prosperity.", agent.Persona.Name, target.Persona.Name)
	risk := RiskMedium
	if kind == ForcedAlliance {
		decisionWord = "form_alliance"
		reasoning = fmt.Sprintf("%s extends an olive branch to %s, proposing a strategic alliance for mutual protection.", agent.Persona.Name, target.Persona.Name)
		risk = RiskLow
	}

	transcript := DecisionTranscript{
		AgentID:         agent.ID,
		AgentName:       agent.Persona.Name,
		Tick:            tick,
		GameContext:     fmt.Sprintf("%s targeting %s", kind, target.Persona.Name),
		Decision:        decisionWord,
		Reasoning:       reasoning,
		Risk:            risk,
		ExpectedOutcome: fmt.Sprintf("Strengthen relationship with %s", target.Persona.Name),
		Timestamp:       time.Now(),
	}
	d.world.appendMemory(agent.ID, transcript)
	return Decision{Action: ActionObserve, Target: target.ID, Transcript: transcript}
}
