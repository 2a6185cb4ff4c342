package arena

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Action tags the engine knows how to apply. Anything else degrades to observe.
type Action string

const (
	ActionChallenge Action = "challenge"
	ActionMove      Action = "move"
	ActionTransfer  Action = "transfer"
	ActionObserve   Action = "observe"
)

// decisionSchema is deliberately permissive: only the action tag is required
// and unknown fields pass through untouched. Anything that fails it falls back
// to an observe decision rather than failing the tick.
var decisionSchema = jsonschema.MustCompileString("decision.json", `{
	"type": "object",
	"required": ["action"],
	"properties": {
		"action": {"type": "string", "enum": ["challenge", "move", "transfer", "observe"]},
		"target": {"type": "string"},
		"game_type": {"type": "string", "enum": ["sacrifice_duel", "oracles_gambit", "tribute_war"]},
		"amount": {"type": "number", "minimum": 0},
		"move": {"type": "string"},
		"reasoning": {"type": "string"},
		"risk": {"type": "string", "enum": ["low", "medium", "high"]},
		"expected_outcome": {"type": "string"}
	}
}`)

// decisionPayload is the fixed-shape structured response expected from the
// decision provider.
type decisionPayload struct {
	Action          string  `json:"action"`
	Target          string  `json:"target"`
	GameType        string  `json:"game_type"`
	Amount          float64 `json:"amount"`
	Move            string  `json:"move"`
	Reasoning       string  `json:"reasoning"`
	Risk            string  `json:"risk"`
	ExpectedOutcome string  `json:"expected_outcome"`
}

// extractPayload pulls the first well-formed JSON object out of free text.
// Providers wrap payloads in prose or code fences often enough that this
// cannot assume the response is bare JSON.
func extractPayload(text string) (decisionPayload, error) {
	var payload decisionPayload

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return payload, fmt.Errorf("no JSON object in response")
	}
	raw := text[start : end+1]

	var generic any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return payload, fmt.Errorf("decode decision payload: %w", err)
	}
	if err := decisionSchema.Validate(generic); err != nil {
		return payload, fmt.Errorf("validate decision payload: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, fmt.Errorf("decode decision payload: %w", err)
	}
	return payload, nil
}
