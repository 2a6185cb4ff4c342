package arena

import "time"

// AgentStatus 智能体状态
type AgentStatus string

const (
	AgentStatusActive AgentStatus = "active"
	AgentStatusFallen AgentStatus = "fallen"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type ZoneID string

const (
	ZoneTempleOfGames   ZoneID = "temple_of_games"
	ZoneMarketSquare    ZoneID = "market_square"
	ZoneOraclesSanctum  ZoneID = "oracles_sanctum"
	ZoneTrainingGrounds ZoneID = "training_grounds"
)

type GameType string

const (
	GameTypeSacrificeDuel GameType = "sacrifice_duel"
	GameTypeOraclesGambit GameType = "oracles_gambit"
	GameTypeTributeWar    GameType = "tribute_war"
)

var GameTypeDictionary = map[GameType]string{
	GameTypeSacrificeDuel: "Sacrifice Duel",
	GameTypeOraclesGambit: "Oracle's Gambit",
	GameTypeTributeWar:    "Tribute War",
}

type GameStatus string

const (
	GameStatusPending  GameStatus = "pending"
	GameStatusActive   GameStatus = "active"
	GameStatusResolved GameStatus = "resolved"
)

type GameMove string

const (
	MoveSacrifice  GameMove = "sacrifice"
	MoveHoard      GameMove = "hoard"
	MoveBetYes     GameMove = "bet_yes"
	MoveBetNo      GameMove = "bet_no"
	MoveContribute GameMove = "contribute"
)

// AgentPersona is static flavor data; it never changes after world init.
type AgentPersona struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StrategyBias string `json:"strategyBias"`
	SystemPrompt string `json:"systemPrompt"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
}

// DecisionTranscript is one entry in an agent's bounded memory.
type DecisionTranscript struct {
	AgentID         string    `json:"agentId"`
	AgentName       string    `json:"agentName"`
	Tick            int       `json:"tick"`
	GameContext     string    `json:"gameContext"`
	Decision        string    `json:"decision"`
	Reasoning       string    `json:"reasoning"`
	Risk            RiskLevel `json:"risk"`
	ExpectedOutcome string    `json:"expectedOutcome"`
	ActualOutcome   string    `json:"actualOutcome,omitempty"`
	TokenDelta      int64     `json:"tokenDelta,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type Agent struct {
	ID               string               `json:"id"`
	Persona          AgentPersona         `json:"persona"`
	Status           AgentStatus          `json:"status"`
	Balance          int64                `json:"balance"`
	Zone             ZoneID               `json:"zone"`
	Wins             int                  `json:"wins"`
	Losses           int                  `json:"losses"`
	TotalGamesPlayed int                  `json:"totalGamesPlayed"`
	PeakBalance      int64                `json:"peakBalance"`
	Alliances        []string             `json:"alliances"`
	Followers        []string             `json:"followers"`
	Memory           []DecisionTranscript `json:"memory"`
	IsHuman          bool                 `json:"isHuman,omitempty"`
	WalletAddress    string               `json:"walletAddress,omitempty"`
}

func (a *Agent) clone() *Agent {
	if a == nil {
		return nil
	}
	c := *a
	c.Alliances = append([]string{}, a.Alliances...)
	c.Followers = append([]string{}, a.Followers...)
	c.Memory = append([]DecisionTranscript{}, a.Memory...)
	return &c
}

type GameWager struct {
	AgentID string   `json:"agentId"`
	Amount  int64    `json:"amount"`
	Move    GameMove `json:"move,omitempty"`
}

type GameResult struct {
	// WinnerID is empty on a draw.
	WinnerID  string           `json:"winnerId"`
	Losers    []string         `json:"losers"`
	Payouts   map[string]int64 `json:"payouts"`
	Narrative string           `json:"narrative"`
}

func (r *GameResult) clone() *GameResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Losers = append([]string{}, r.Losers...)
	c.Payouts = make(map[string]int64, len(r.Payouts))
	for id, amt := range r.Payouts {
		c.Payouts[id] = amt
	}
	return &c
}

type Game struct {
	ID             string      `json:"id"`
	Type           GameType    `json:"type"`
	Status         GameStatus  `json:"status"`
	Players        []string    `json:"players"`
	Wagers         []GameWager `json:"wagers"`
	Pot            int64       `json:"pot"`
	WinnerID       string      `json:"winnerId,omitempty"`
	Results        *GameResult `json:"results,omitempty"`
	CreatedAtTick  int         `json:"createdAtTick"`
	ResolvedAtTick int         `json:"resolvedAtTick,omitempty"`
	TxHash         string      `json:"txHash,omitempty"`
}

func (g *Game) clone() Game {
	c := *g
	c.Players = append([]string{}, g.Players...)
	c.Wagers = append([]GameWager{}, g.Wagers...)
	c.Results = g.Results.clone()
	return c
}

type Zone struct {
	ID          ZoneID     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GameTypes   []GameType `json:"gameTypes"`
	Agents      []string   `json:"agents"`
}

func (z *Zone) clone() *Zone {
	c := *z
	c.GameTypes = append([]GameType{}, z.GameTypes...)
	c.Agents = append([]string{}, z.Agents...)
	return &c
}

type EventType string

const (
	EventAgentDecision     EventType = "agent_decision"
	EventGameStart         EventType = "game_start"
	EventGameResolve       EventType = "game_resolve"
	EventTokenTransfer     EventType = "token_transfer"
	EventZoneMove          EventType = "zone_move"
	EventTickComplete      EventType = "tick_complete"
	EventAgentFallen       EventType = "agent_fallen"
	EventAllianceFormed    EventType = "alliance_formed"
	EventAllianceDissolved EventType = "alliance_dissolved"
	EventPersuasionAttempt EventType = "persuasion_attempt"
	EventHumanJoined       EventType = "human_joined"
	EventHumanWager        EventType = "human_wager"
)

// Event is an immutable fact recorded during a tick.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Tick       int       `json:"tick"`
	AgentID    string    `json:"agentId,omitempty"`
	AgentName  string    `json:"agentName,omitempty"`
	TargetID   string    `json:"targetId,omitempty"`
	TargetName string    `json:"targetName,omitempty"`
	GameID     string    `json:"gameId,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	TxHash     string    `json:"txHash,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type SentimentMetrics struct {
	Tick           int      `json:"tick"`
	DemandIndex    int      `json:"demandIndex"`
	InfluenceScore int      `json:"influenceScore"`
	Velocity       int      `json:"velocity"`
	Dominance      float64  `json:"dominance"`
	SentimentScore float64  `json:"sentimentScore"`
	Triggers       []string `json:"triggers"`
}

type EconomySnapshot struct {
	Tick             int              `json:"tick"`
	TotalSupply      int64            `json:"totalSupply"`
	TotalWagered     int64            `json:"totalWagered"`
	TotalTransferred int64            `json:"totalTransferred"`
	AgentBalances    map[string]int64 `json:"agentBalances"`
	Sentiment        SentimentMetrics `json:"sentiment"`
}

// TickOutcome is what Advance returns to the transport layer. Everything in it
// is a value copy; mutating it never touches the live world.
type TickOutcome struct {
	Tick    int               `json:"tick"`
	Events  []Event           `json:"events"`
	Agents  map[string]*Agent `json:"agents"`
	Games   []Game            `json:"games"`
	Economy EconomySnapshot   `json:"economy"`
}

type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

type ForcedEvent string

const (
	ForcedNone       ForcedEvent = ""
	ForcedPersuasion ForcedEvent = "persuasion"
	ForcedAlliance   ForcedEvent = "alliance"
)
