package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arena-lite/arena"

	"arena-lite/apps/server/internal/gateway"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := arena.DefaultConfig()
	cfg.Seed = 1
	engine, err := arena.NewEngine(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	gw := gateway.New(engine, arena.ModeDemo)
	h := NewHTTPHandler(engine, gw, nil, "", arena.ModeDemo, "demo")

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.HandleFunc("/health", h.HandleHealth)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", path, resp.StatusCode, wantStatus)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
	return body
}

func postJSON(t *testing.T, srv *httptest.Server, path string, payload any, wantStatus int) map[string]any {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: status %d, want %d", path, resp.StatusCode, wantStatus)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("POST %s: decode: %v", path, err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	body := getJSON(t, srv, "/health", http.StatusOK)
	if body["status"] != "ok" || body["oracle"] != "demo" {
		t.Fatalf("health = %v", body)
	}
}

func TestTickAdvancesSimulation(t *testing.T) {
	srv := newTestServer(t)

	body := postJSON(t, srv, "/api/tick", map[string]any{}, http.StatusOK)
	if body["tick"].(float64) != 1 {
		t.Fatalf("tick = %v", body["tick"])
	}
	events, ok := body["events"].([]any)
	if !ok || len(events) == 0 {
		t.Fatalf("outcome carried no events: %v", body["events"])
	}

	state := getJSON(t, srv, "/api/arena", http.StatusOK)
	if state["tick"].(float64) != 1 {
		t.Fatalf("arena tick = %v", state["tick"])
	}
	agents, ok := state["agents"].(map[string]any)
	if !ok || len(agents) != 6 {
		t.Fatalf("arena agents = %v", state["agents"])
	}
}

func TestLeaderboard(t *testing.T) {
	srv := newTestServer(t)
	body := getJSON(t, srv, "/api/leaderboard", http.StatusOK)
	standings, ok := body["standings"].([]any)
	if !ok || len(standings) != 6 {
		t.Fatalf("standings = %v", body["standings"])
	}
}

func TestReplayQueries(t *testing.T) {
	srv := newTestServer(t)
	postJSON(t, srv, "/api/tick", map[string]any{}, http.StatusOK)

	body := getJSON(t, srv, "/api/replay?tick=1", http.StatusOK)
	if _, ok := body["worldState"]; !ok {
		t.Fatalf("replay body = %v", body)
	}

	getJSON(t, srv, "/api/replay?tick=99", http.StatusNotFound)
	getJSON(t, srv, "/api/replay?tick=abc", http.StatusBadRequest)

	timeline := getJSON(t, srv, "/api/replay", http.StatusOK)
	if timeline["totalTicks"].(float64) != 1 {
		t.Fatalf("timeline = %v", timeline)
	}
}

func TestForcedTransfer(t *testing.T) {
	srv := newTestServer(t)
	body := postJSON(t, srv, "/api/tokens/transfer", map[string]any{"forced": true}, http.StatusOK)
	if body["amount"].(float64) != 50 {
		t.Fatalf("amount = %v", body["amount"])
	}
	if body["from"] == body["to"] {
		t.Fatalf("self transfer: %v", body)
	}

	postJSON(t, srv, "/api/tokens/transfer", map[string]any{"forced": false}, http.StatusBadRequest)
}

func TestHumanJoinAndWagerErrors(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv, "/api/human/join", map[string]any{"name": "  "}, http.StatusBadRequest)

	body := postJSON(t, srv, "/api/human/join", map[string]any{"name": "Mortal"}, http.StatusOK)
	agent := body["agent"].(map[string]any)
	if agent["id"] != "human_1" || agent["walletAddress"] != "0x0000" {
		t.Fatalf("agent = %v", agent)
	}

	body = postJSON(t, srv, "/api/human/wager", map[string]any{
		"agentId": "ares", "gameId": "game_1_t0", "amount": 50, "move": "sacrifice",
	}, http.StatusBadRequest)
	if body["error"] != "human agent not found" {
		t.Fatalf("error = %v", body["error"])
	}

	body = postJSON(t, srv, "/api/human/wager", map[string]any{
		"agentId": "human_1", "gameId": "missing", "amount": 50, "move": "sacrifice",
	}, http.StatusBadRequest)
	if body["error"] != "game not found or not active" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestChainStatus(t *testing.T) {
	srv := newTestServer(t)
	postJSON(t, srv, "/api/tick", map[string]any{}, http.StatusOK)

	body := getJSON(t, srv, "/api/chain", http.StatusOK)
	if body["network"] != "Monad Testnet" || body["chainId"].(float64) != 10143 {
		t.Fatalf("chain = %v", body)
	}
	txs, ok := body["recentTransactions"].([]any)
	if !ok || len(txs) == 0 {
		t.Fatalf("no transactions recorded: %v", body["recentTransactions"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/api/tick")
	if err != nil {
		t.Fatalf("GET /api/tick: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
