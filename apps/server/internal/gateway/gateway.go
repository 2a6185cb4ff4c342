package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"arena-lite/arena"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time
}

// Gateway manages WebSocket connections and fans tick outcomes out to every
// spectator. Clients may also drive the simulation with JSON commands.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64

	engine      *arena.Engine
	defaultMode arena.Mode
}

// New creates a new Gateway instance
func New(engine *arena.Engine, defaultMode arena.Mode) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		engine:      engine,
		defaultMode: defaultMode,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	connID := fmt.Sprintf("conn_%d", g.nextConnID)
	c := &Connection{
		ID:       connID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}
	g.connections[connID] = c
	total := len(g.connections)
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s, total: %d", connID, total)

	go c.readPump()
	go c.writePump()

	// New spectators get the current state immediately.
	c.sendEnvelope("arena_state", g.engine.StateSnapshot())
}

// Envelope is the JSON frame every message travels in.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type clientCommand struct {
	Type     string         `json:"type"`
	Mode     arena.Mode     `json:"mode,omitempty"`
	Event    string         `json:"event,omitempty"`
	GameType arena.GameType `json:"gameType,omitempty"`
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		log.Printf("[Gateway] Failed to unmarshal: %v", err)
		c.sendError("invalid message format")
		return
	}

	mode := cmd.Mode
	if mode == "" {
		mode = c.Gateway.defaultMode
	}

	switch cmd.Type {
	case "tick":
		outcome := c.Gateway.engine.Advance(context.Background(), mode, arena.ForcedEvent(cmd.Event))
		c.Gateway.BroadcastOutcome(outcome)
	case "force_game":
		outcome := c.Gateway.engine.ForceGame(context.Background(), cmd.GameType, mode)
		c.Gateway.BroadcastOutcome(outcome)
	case "reset":
		c.Gateway.engine.Reset()
		c.Gateway.BroadcastEnvelope("arena_state", c.Gateway.engine.StateSnapshot())
	case "state":
		c.sendEnvelope("arena_state", c.Gateway.engine.StateSnapshot())
	default:
		log.Printf("[Gateway] Unknown command type: %q", cmd.Type)
		c.sendError("unknown command type")
	}
}

func (c *Connection) sendEnvelope(msgType string, payload any) {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		log.Printf("[Gateway] Failed to marshal %s: %v", msgType, err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop if buffer full
	}
}

func (c *Connection) sendError(msg string) {
	c.sendEnvelope("error", map[string]string{"message": msg})
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}

// BroadcastOutcome pushes a completed tick to every spectator.
func (g *Gateway) BroadcastOutcome(outcome arena.TickOutcome) {
	g.BroadcastEnvelope("tick_outcome", outcome)
}

// BroadcastEnvelope sends a typed payload to all connections.
func (g *Gateway) BroadcastEnvelope(msgType string, payload any) {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		log.Printf("[Gateway] Failed to marshal %s: %v", msgType, err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.connections {
		select {
		case c.Send <- data:
		default:
			// Drop message if buffer full
		}
	}
}

// ConnectionCount reports the number of attached spectators.
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Data: raw})
}
