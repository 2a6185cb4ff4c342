package arena

import (
	"strings"
	"testing"
)

func TestExtractPayloadFromBareJSON(t *testing.T) {
	payload, err := extractPayload(`{"action":"challenge","target":"Athena","game_type":"sacrifice_duel","amount":75,"move":"hoard","reasoning":"strike now","risk":"high","expected_outcome":"win big"}`)
	if err != nil {
		t.Fatalf("extractPayload: %v", err)
	}
	if payload.Action != "challenge" || payload.Target != "Athena" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Amount != 75 || payload.Move != "hoard" || payload.Risk != "high" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestExtractPayloadFromProseWrappedJSON(t *testing.T) {
	raw := "Here is my decision:\n```json\n" +
		`{"action":"transfer","target":"apollo","amount":30,"reasoning":"building trust"}` +
		"\n```\nI hope this serves me well."
	payload, err := extractPayload(raw)
	if err != nil {
		t.Fatalf("extractPayload: %v", err)
	}
	if payload.Action != "transfer" || payload.Target != "apollo" || payload.Amount != 30 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestExtractPayloadRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"no json here at all",
		"{not valid json}",
		`{"target":"athena"}`,               // action missing
		`{"action":"conquer"}`,              // action outside the enum
		`{"action":"move","risk":"wild"}`,   // risk outside the enum
		`{"action":"challenge","amount":-5}`, // negative amount
	}
	for _, raw := range cases {
		if _, err := extractPayload(raw); err == nil {
			t.Fatalf("extractPayload(%q) succeeded, want error", raw)
		}
	}
}

func TestExtractPayloadToleratesUnknownFields(t *testing.T) {
	payload, err := extractPayload(`{"action":"observe","mood":"contemplative","confidence":0.8}`)
	if err != nil {
		t.Fatalf("extractPayload: %v", err)
	}
	if payload.Action != "observe" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestExtractPayloadUsesOutermostBraces(t *testing.T) {
	raw := `prefix {"action":"observe","reasoning":"the {arena} is quiet"} suffix`
	payload, err := extractPayload(raw)
	if err != nil {
		t.Fatalf("extractPayload: %v", err)
	}
	if !strings.Contains(payload.Reasoning, "{arena}") {
		t.Fatalf("reasoning = %q", payload.Reasoning)
	}
}
