package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// operatorConn is one operator's websocket session. All frames, events
// and pings alike, go out through the send channel so only the writePump
// goroutine ever writes to the connection.
type operatorConn struct {
	operatorID string
	agencyID   string
	conn       *websocket.Conn
	send       chan []byte
}

// Hub tracks the open websocket connection per operator. An operator
// reconnecting replaces the old connection.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*operatorConn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*operatorConn)}
}

// ServeOperator registers the connection, starts its write pump and
// blocks reading until the connection drops.
func (h *Hub) ServeOperator(operatorID, agencyID string, conn *websocket.Conn) {
	c := &operatorConn{
		operatorID: operatorID,
		agencyID:   agencyID,
		conn:       conn,
		send:       make(chan []byte, 64),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *operatorConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.conns[c.operatorID]; exists && old != nil {
		close(old.send)
	}
	h.conns[c.operatorID] = c
}

func (h *Hub) unregister(c *operatorConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.conns[c.operatorID]; exists && existing == c {
		delete(h.conns, c.operatorID)
		close(c.send)
	}
}

// Broadcast queues the event for every operator session of the agency
// and reports how many sessions it reached. A session whose send buffer
// is full is skipped; delivery never blocks the engine operation.
func (h *Hub) Broadcast(agencyID string, evt Event) int {
	data, err := json.Marshal(evt)
	if err != nil {
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, c := range h.conns {
		if c.agencyID != agencyID {
			continue
		}
		select {
		case c.send <- data:
			sent++
		default:
			// client too slow, skip
		}
	}
	return sent
}

// The feed is one-way; the read loop only notices pongs and closure.
func (h *Hub) readPump(c *operatorConn) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *operatorConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for opID, c := range h.conns {
		close(c.send)
		delete(h.conns, opID)
	}
}
