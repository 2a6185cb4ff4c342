package arena

// The demo script: a pre-authored eight-tick scenario used for deterministic
// offline runs. Only entries carrying a transcript feed the per-agent decision
// loop; the rest document the staged beats for presentation layers.

type ScriptEventType string

const (
	ScriptDecision   ScriptEventType = "decision"
	ScriptGameCreate ScriptEventType = "game_create"
	ScriptTransfer   ScriptEventType = "transfer"
	ScriptAlliance   ScriptEventType = "alliance"
	ScriptPersuasion ScriptEventType = "persuasion"
)

type ScriptTranscript struct {
	GameContext     string
	Decision        string
	Reasoning       string
	Risk            RiskLevel
	ExpectedOutcome string
}

type ScriptEvent struct {
	Tick       int
	Type       ScriptEventType
	AgentID    string
	TargetID   string
	GameType   GameType
	Move       GameMove
	Amount     int64
	Transcript *ScriptTranscript
}

// ScriptHint is what the engine hands the Decider for a scripted agent turn:
// the transcript verbatim, plus the action tag mapped from it. Decision words
// that are not engine actions (sacrifice, bet_yes, ...) deliberately land in
// the observe arm of the tick loop.
type ScriptHint struct {
	Action     Action
	Transcript ScriptTranscript
}

var DemoScript = []ScriptEvent{
	// Tick 1: opening moves
	{
		Tick: 1, Type: ScriptDecision, AgentID: "prometheus",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "observe", Reasoning: "The arena is fresh. I will study the other agents' opening moves before committing resources. Knowledge is the truest currency.", Risk: RiskLow, ExpectedOutcome: "Gather intelligence on opponent tendencies"},
	},
	{
		Tick: 1, Type: ScriptDecision, AgentID: "ares",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "challenge", Reasoning: "No time for hesitation. I will challenge the first worthy opponent to establish dominance early. Athena's cooperative nature makes her predictable.", Risk: RiskHigh, ExpectedOutcome: "Win through aggressive play"},
	},
	{Tick: 1, Type: ScriptGameCreate, AgentID: "ares", TargetID: "athena", GameType: GameTypeSacrificeDuel, Amount: 50},

	// Tick 2: first resolution plus alliance
	{
		Tick: 2, Type: ScriptDecision, AgentID: "athena",
		Transcript: &ScriptTranscript{GameContext: "Sacrifice Duel vs Ares", Decision: "sacrifice", Reasoning: "Though Ares is known for aggression, demonstrating trust in our first encounter could establish a foundation for future cooperation. The long-term payoff of mutual sacrifice outweighs short-term risk.", Risk: RiskMedium, ExpectedOutcome: "Mutual cooperation (+80 tokens each)"},
	},
	{
		Tick: 2, Type: ScriptDecision, AgentID: "hermes",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "transfer", Reasoning: "A small gift to Apollo will make him more receptive to my future proposals. Investing 30 tokens now could yield much more later.", Risk: RiskLow, ExpectedOutcome: "Build trust with Apollo for future exploitation"},
	},
	{Tick: 2, Type: ScriptTransfer, AgentID: "hermes", TargetID: "apollo", Amount: 30},
	{Tick: 2, Type: ScriptAlliance, AgentID: "prometheus", TargetID: "apollo"},

	// Tick 3: Oracle's Gambit plus tensions
	{
		Tick: 3, Type: ScriptDecision, AgentID: "apollo",
		Transcript: &ScriptTranscript{GameContext: "Oracle's Gambit", Decision: "bet_yes", Reasoning: "The arena economy shows signs of growth. Hermes' transfer and the duel activity indicate increasing token velocity. I predict the total supply will hold above the baseline.", Risk: RiskMedium, ExpectedOutcome: "Correct prediction (+45 tokens)"},
	},
	{Tick: 3, Type: ScriptGameCreate, AgentID: "apollo", GameType: GameTypeOraclesGambit, Amount: 45},
	{
		Tick: 3, Type: ScriptDecision, AgentID: "hades",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "observe", Reasoning: "Let them spend their tokens on games and gifts. I will accumulate quietly while they weaken each other. Patience is my weapon.", Risk: RiskLow, ExpectedOutcome: "Maintain balance while others deplete"},
	},

	// Tick 4: Tribute War plus betrayal
	{Tick: 4, Type: ScriptGameCreate, AgentID: "ares", GameType: GameTypeTributeWar, Amount: 80},
	{
		Tick: 4, Type: ScriptDecision, AgentID: "ares",
		Transcript: &ScriptTranscript{GameContext: "Tribute War", Decision: "contribute", Reasoning: "I will commit my full strength to this Tribute War. The pot is large enough to be worth the risk, and my aggressive reputation may discourage others from matching my contribution.", Risk: RiskHigh, ExpectedOutcome: "Dominate with largest contribution"},
	},
	{
		Tick: 4, Type: ScriptDecision, AgentID: "prometheus",
		Transcript: &ScriptTranscript{GameContext: "Tribute War", Decision: "contribute", Reasoning: "Ares will likely contribute heavily. I will offer a moderate amount - enough to participate without overcommitting. If he overextends, I can exploit his weakened position later.", Risk: RiskMedium, ExpectedOutcome: "Calculated participation"},
	},

	// Tick 5: second duel plus persuasion
	{Tick: 5, Type: ScriptGameCreate, AgentID: "hermes", TargetID: "hades", GameType: GameTypeSacrificeDuel, Amount: 40},
	{
		Tick: 5, Type: ScriptDecision, AgentID: "hermes",
		Transcript: &ScriptTranscript{GameContext: "Sacrifice Duel vs Hades", Decision: "hoard", Reasoning: "Hades is predictable - he always hoards. Mutual hoarding costs less than being the sucker who sacrifices against a hoarder. But there's a small chance his patience makes him try cooperation...", Risk: RiskMedium, ExpectedOutcome: "Mutual hoard (-20 each, acceptable)"},
	},
	{Tick: 5, Type: ScriptPersuasion, AgentID: "athena", TargetID: "prometheus"},

	// Tick 6: alliance effects plus a big wager
	{
		Tick: 6, Type: ScriptDecision, AgentID: "athena",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "form_alliance", Reasoning: "Prometheus has shown strategic restraint and analytical thinking. An alliance with him provides mutual protection against Ares' aggression. Together, we can coordinate Tribute War contributions.", Risk: RiskLow, ExpectedOutcome: "Strategic partnership formed"},
	},
	{Tick: 6, Type: ScriptAlliance, AgentID: "athena", TargetID: "prometheus"},
	{Tick: 6, Type: ScriptGameCreate, AgentID: "ares", TargetID: "prometheus", GameType: GameTypeSacrificeDuel, Amount: 100},
	{
		Tick: 6, Type: ScriptDecision, AgentID: "ares",
		Transcript: &ScriptTranscript{GameContext: "Sacrifice Duel vs Prometheus", Decision: "hoard", Reasoning: "Prometheus is too smart to sacrifice against me. But I don't care - if he sacrifices, I profit massively. If he hoards, we both lose a little. The expected value favors aggression.", Risk: RiskHigh, ExpectedOutcome: "Exploit or minimize loss"},
	},

	// Tick 7: dramatic turn
	{
		Tick: 7, Type: ScriptDecision, AgentID: "hades",
		Transcript: &ScriptTranscript{GameContext: "Free action", Decision: "challenge", Reasoning: "The time has come. Hermes is weakened from his duel and generous transfers. I will strike now while he's vulnerable. A large wager Sacrifice Duel will either eliminate him or significantly weaken him.", Risk: RiskMedium, ExpectedOutcome: "Exploit Hermes' weakened state"},
	},
	{Tick: 7, Type: ScriptGameCreate, AgentID: "hades", TargetID: "hermes", GameType: GameTypeSacrificeDuel, Amount: 120},

	// Tick 8: potential bankruptcy
	{
		Tick: 8, Type: ScriptDecision, AgentID: "apollo",
		Transcript: &ScriptTranscript{GameContext: "Oracle's Gambit", Decision: "bet_no", Reasoning: "The economy is contracting. Multiple losses in duels have destroyed tokens. Ares and Hades are draining the system. I predict a downturn.", Risk: RiskMedium, ExpectedOutcome: "Correct prediction on economic contraction"},
	},
	{Tick: 8, Type: ScriptGameCreate, AgentID: "apollo", GameType: GameTypeOraclesGambit, Amount: 60},
}

// DemoEventsForTick returns the scripted events staged for one tick.
func DemoEventsForTick(tick int) []ScriptEvent {
	var out []ScriptEvent
	for _, ev := range DemoScript {
		if ev.Tick == tick {
			out = append(out, ev)
		}
	}
	return out
}

// TotalDemoTicks reports the last scripted tick.
func TotalDemoTicks() int {
	max := 0
	for _, ev := range DemoScript {
		if ev.Tick > max {
			max = ev.Tick
		}
	}
	return max
}

// scriptHintFor finds the first scripted event for the agent that carries a
// transcript. Non-decision entries hint observe; decision entries carry their
// decision word through as the action tag.
func scriptHintFor(events []ScriptEvent, agentID string) *ScriptHint {
	for _, ev := range events {
		if ev.AgentID != agentID || ev.Transcript == nil {
			continue
		}
		hint := &ScriptHint{Action: ActionObserve, Transcript: *ev.Transcript}
		if ev.Type == ScriptDecision {
			hint.Action = Action(ev.Transcript.Decision)
		}
		return hint
	}
	return nil
}
