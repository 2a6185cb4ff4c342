// Package api exposes the arena over HTTP: simulation control, world reads,
// replay queries, token metrics, the transaction ledger and the human entry
// points.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"arena-lite/arena"
	"arena-lite/replay"

	"arena-lite/apps/server/internal/chain"
	"arena-lite/apps/server/internal/gateway"
)

type HTTPHandler struct {
	engine      *arena.Engine
	gw          *gateway.Gateway
	publisher   arena.ReceiptPublisher
	explorerURL string
	defaultMode arena.Mode
	oracleMode  string
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(engine *arena.Engine, gw *gateway.Gateway, publisher arena.ReceiptPublisher, explorerURL string, defaultMode arena.Mode, oracleMode string) *HTTPHandler {
	return &HTTPHandler{
		engine:      engine,
		gw:          gw,
		publisher:   publisher,
		explorerURL: explorerURL,
		defaultMode: defaultMode,
		oracleMode:  oracleMode,
	}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/tick", h.handleTick)
	mux.HandleFunc("/api/arena", h.handleArena)
	mux.HandleFunc("/api/arena/games", h.handleGames)
	mux.HandleFunc("/api/agents", h.handleAgents)
	mux.HandleFunc("/api/agents/stats", h.handleAgentStats)
	mux.HandleFunc("/api/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/api/replay", h.handleReplay)
	mux.HandleFunc("/api/tokens", h.handleTokens)
	mux.HandleFunc("/api/tokens/transfer", h.handleTransfer)
	mux.HandleFunc("/api/chain", h.handleChain)
	mux.HandleFunc("/api/human/join", h.handleHumanJoin)
	mux.HandleFunc("/api/human/wager", h.handleHumanWager)
}

type tickRequest struct {
	Mode      arena.Mode     `json:"mode"`
	Event     string         `json:"event"`
	ForceGame bool           `json:"forceGame"`
	GameType  arena.GameType `json:"gameType"`
}

func (h *HTTPHandler) handleTick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req tickRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means defaults
	mode := req.Mode
	if mode == "" {
		mode = h.defaultMode
	}

	var outcome arena.TickOutcome
	if req.ForceGame {
		outcome = h.engine.ForceGame(r.Context(), req.GameType, mode)
	} else {
		outcome = h.engine.Advance(r.Context(), mode, arena.ForcedEvent(req.Event))
	}

	h.gw.BroadcastOutcome(outcome)
	writeJSON(w, http.StatusOK, outcome)
}

type arenaActionRequest struct {
	Action string `json:"action"`
}

func (h *HTTPHandler) handleArena(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s := h.engine.StateSnapshot()
		events := s.Events
		if len(events) > 50 {
			events = events[len(events)-50:]
		}
		games := s.Games
		if len(games) > 20 {
			games = games[len(games)-20:]
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"tick":             s.Tick,
			"zones":            s.Zones,
			"agents":           s.Agents,
			"games":            games,
			"events":           events,
			"totalTokenSupply": s.TotalTokenSupply,
			"startedAt":        s.StartedAt,
		})

	case http.MethodPost:
		var req arenaActionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Action != "reset" {
			writeError(w, http.StatusBadRequest, "unknown action")
			return
		}
		h.engine.Reset()
		s := h.engine.StateSnapshot()
		h.gw.BroadcastEnvelope("arena_state", s)
		writeJSON(w, http.StatusOK, map[string]any{
			"tick":    s.Tick,
			"agents":  s.Agents,
			"zones":   s.Zones,
			"message": "Arena reset successfully",
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type forceGameRequest struct {
	Mode arena.Mode     `json:"mode"`
	Type arena.GameType `json:"type"`
}

func (h *HTTPHandler) handleGames(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"active": h.engine.ActiveGames(),
			"recent": h.engine.RecentGames(20),
		})

	case http.MethodPost:
		var req forceGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mode := req.Mode
		if mode == "" {
			mode = h.defaultMode
		}
		outcome := h.engine.ForceGame(r.Context(), req.Type, mode)
		h.gw.BroadcastOutcome(outcome)
		writeJSON(w, http.StatusOK, outcome)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HTTPHandler) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": h.engine.Agents(),
		"tick":   h.engine.CurrentTick(),
	})
}

func (h *HTTPHandler) handleAgentStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	stats, ok := h.engine.AgentStats(id)
	if !ok {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}
	agent, _ := h.engine.Agent(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"agent": agent,
		"stats": stats,
	})
}

func (h *HTTPHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"standings": h.engine.Leaderboard(),
		"tick":      h.engine.CurrentTick(),
	})
}

func (h *HTTPHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("tick"))
	if raw != "" {
		tick, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tick")
			return
		}
		snapshot, ok := replay.StateAtTick(h.engine.Archive(), tick)
		if !ok {
			writeError(w, http.StatusNotFound, "tick not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"worldState": snapshot.World,
			"events":     snapshot.Events,
			"economy":    snapshot.Economy,
		})
		return
	}

	writeJSON(w, http.StatusOK, replay.BuildTimeline(h.engine.Archive()))
}

func (h *HTTPHandler) handleTokens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	economyHistory := h.engine.EconomyHistory()
	sentimentHistory := h.engine.SentimentHistory()
	var latestEconomy any
	if len(economyHistory) > 0 {
		latestEconomy = economyHistory[len(economyHistory)-1]
	}
	var latestSentiment any
	if len(sentimentHistory) > 0 {
		latestSentiment = sentimentHistory[len(sentimentHistory)-1]
	}

	s := h.engine.StateSnapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"tick":             s.Tick,
		"totalSupply":      s.TotalTokenSupply,
		"totalWagered":     h.engine.Transactions().TotalWagered(),
		"totalTransferred": totalTransferred(h.engine),
		"dominance":        h.engine.Dominance(),
		"sentimentHistory": sentimentHistory,
		"economyHistory":   economyHistory,
		"latestSentiment":  latestSentiment,
		"latestEconomy":    latestEconomy,
	})
}

type transferRequest struct {
	Forced bool       `json:"forced"`
	Mode   arena.Mode `json:"mode"`
}

func (h *HTTPHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Forced {
		writeError(w, http.StatusBadRequest, "non-forced transfers not yet implemented")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = h.defaultMode
	}

	record, err := h.engine.ForceTransfer(r.Context(), mode)
	if err != nil {
		if errors.Is(err, arena.ErrNotEnoughAgents) {
			writeError(w, http.StatusBadRequest, "not enough agents with sufficient balance")
			return
		}
		writeError(w, http.StatusInternalServerError, "transfer failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":   record.FromAgent,
		"to":     record.ToAgent,
		"amount": record.Amount,
		"txHash": record.TxHash,
	})
}

func (h *HTTPHandler) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	info := chain.Describe(h.publisher, h.explorerURL)

	type txView struct {
		TxHash      string `json:"txHash"`
		Type        string `json:"type"`
		FromAgent   string `json:"fromAgent,omitempty"`
		ToAgent     string `json:"toAgent,omitempty"`
		Amount      int64  `json:"amount"`
		Tick        int    `json:"tick"`
		BlockNumber int64  `json:"blockNumber,omitempty"`
		ExplorerURL string `json:"explorerUrl,omitempty"`
	}
	txs := h.engine.Transactions().Recent(20)
	views := make([]txView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, txView{
			TxHash:      tx.TxHash,
			Type:        string(tx.Type),
			FromAgent:   tx.FromAgent,
			ToAgent:     tx.ToAgent,
			Amount:      tx.Amount,
			Tick:        tx.Tick,
			BlockNumber: tx.BlockNumber,
			ExplorerURL: chain.ExplorerTxURL(info.ExplorerURL, tx.TxHash),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"network":            info.Network,
		"chainId":            info.ChainID,
		"explorerUrl":        info.ExplorerURL,
		"serverWallet":       info.ServerWallet,
		"walletExplorerUrl":  info.WalletExplorerURL,
		"recentTransactions": views,
		"totalWagered":       h.engine.Transactions().TotalWagered(),
		"totalTransactions":  h.engine.Transactions().Count(),
	})
}

type humanJoinRequest struct {
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}

func (h *HTTPHandler) handleHumanJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req humanJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	agent, err := h.engine.JoinHuman(req.Name, req.WalletAddress)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.gw.BroadcastEnvelope("human_joined", agent)
	writeJSON(w, http.StatusOK, map[string]any{
		"agent": agent,
		"tick":  h.engine.CurrentTick(),
	})
}

type humanWagerRequest struct {
	AgentID string         `json:"agentId"`
	GameID  string         `json:"gameId"`
	Amount  int64          `json:"amount"`
	Move    arena.GameMove `json:"move"`
}

func (h *HTTPHandler) handleHumanWager(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req humanWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, result, err := h.engine.HumanWager(req.AgentID, req.GameID, req.Amount, req.Move)
	switch {
	case errors.Is(err, arena.ErrAgentNotFound), errors.Is(err, arena.ErrNotHuman):
		writeError(w, http.StatusBadRequest, "human agent not found")
		return
	case errors.Is(err, arena.ErrGameNotFound), errors.Is(err, arena.ErrGameNotActive):
		writeError(w, http.StatusBadRequest, "game not found or not active")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to place wager")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"game":     game,
		"result":   result,
		"resolved": result != nil,
	})
}

// HandleHealth reports tick speed, spectator count and provider mode.
func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"tick":       h.engine.CurrentTick(),
		"tickSpeed":  h.engine.LastTickDuration().Milliseconds(),
		"spectators": h.gw.ConnectionCount(),
		"oracle":     h.oracleMode,
		"mode":       h.defaultMode,
	})
}

func totalTransferred(e *arena.Engine) int64 {
	history := e.EconomyHistory()
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1].TotalTransferred
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
