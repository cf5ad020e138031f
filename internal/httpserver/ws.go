// internal/httpserver/ws.go
//
// Live game feed: GET /game/{id}/ws?token=... upgrades to a websocket that
// receives a {"type":"state"} message after every change to that game, and a
// {"type":"ping"} when the line has been idle.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsClient struct {
	gameID string
	conn   *websocket.Conn
	send   chan []byte
}

// queue hands data to the writer without blocking; slow clients drop messages.
func (c *wsClient) queue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// Hub fans out game states to the websocket clients watching each game.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*wsClient]struct{})}
}

func (h *Hub) Register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.gameID]
	if !ok {
		set = make(map[*wsClient]struct{})
		h.clients[c.gameID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.gameID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.gameID)
	}
}

// Publish sends st to every client of gameID.
func (h *Hub) Publish(gameID string, st gameState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[gameID]
	if len(set) == 0 {
		return
	}
	payload, err := json.Marshal(st)
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("encode ws state")
		return
	}
	data, _ := json.Marshal(wsMessage{Type: "state", Payload: payload})
	for c := range set {
		c.queue(data)
	}
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
			_ = c.conn.Close()
		}
		delete(h.clients, id)
	}
}

// handleGameWS authorizes the token, upgrades, sends the current state and
// then streams updates until the peer goes away.
func (s *Server) handleGameWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.authorizeGame(w, r, id) {
		return
	}
	unlock := s.lockGame(id)
	g, err := s.games.Get(r.Context(), id)
	var initial gameState
	if err == nil {
		initial = stateOf(g)
	}
	unlock()
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("gameId", id).Msg("ws upgrade")
		return
	}
	client := &wsClient{gameID: id, conn: conn, send: make(chan []byte, 16)}
	s.hub.Register(client)

	if payload, err := json.Marshal(initial); err == nil {
		data, _ := json.Marshal(wsMessage{Type: "state", Payload: payload})
		client.queue(data)
	}

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			log.Debug().Err(err).Str("gameId", id).Msg("ws write")
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Unregister(client)
			return
		}
	}
}

// writeWSWithHeartbeat drains send onto conn and pings after idle periods.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
