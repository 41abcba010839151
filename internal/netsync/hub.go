package netsync

import (
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PeerInfo is one row of the relay roster.
type PeerInfo struct {
	Client string    `json:"client"`
	Snakes []string  `json:"snakes"`
	Since  time.Time `json:"since"`
}

type member struct {
	*link
	id     string
	snakes []string
	since  time.Time
}

// Hub is the relay: it forwards every snapshot to all other participants
// and announces arrivals and departures.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	members map[string]*member
	closed  bool
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		members: make(map[string]*member),
	}
}

// Router returns the relay's HTTP routes:
//
//	GET /ws       websocket upgrade
//	GET /peers    JSON roster
//	GET /healthz  liveness
func (h *Hub) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/ws", h.serveWS)
	r.GET("/peers", func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Peers())
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "peers": h.Count()})
	})
	return r
}

func (h *Hub) serveWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", c.ClientIP(), "err", err)
		return
	}

	m := &member{link: newLink(conn), id: uuid.NewString(), since: time.Now()}
	roster, ok := h.join(m)
	if !ok {
		m.close()
		return
	}
	go m.writePump()
	m.queue(mustEncode(Message{Type: MsgWelcome, Client: m.id, Snakes: roster}))
	h.log.Info("participant connected", "client", m.id, "remote", c.ClientIP())

	err = m.readPump(func(data []byte) { h.handle(m, data) })
	if err != nil {
		h.log.Warn("participant read failed", "client", m.id, "err", err)
	}
	h.leave(m)
}

// join registers m and returns the snakes already in the session.
func (h *Hub) join(m *member) ([]string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	var roster []string
	for _, o := range h.members {
		roster = append(roster, o.snakes...)
	}
	sort.Strings(roster)
	h.members[m.id] = m
	return roster, true
}

func (h *Hub) leave(m *member) {
	h.mu.Lock()
	_, ok := h.members[m.id]
	delete(h.members, m.id)
	snakes := m.snakes
	h.mu.Unlock()
	if !ok {
		return
	}
	h.broadcast(m.id, mustEncode(Message{Type: MsgBye, Client: m.id, Snakes: snakes}))
	h.log.Info("participant disconnected", "client", m.id, "snakes", snakes)
}

func (h *Hub) handle(m *member, data []byte) {
	msg, err := Decode(data)
	if err != nil {
		h.log.Warn("dropping message", "client", m.id, "err", err)
		return
	}
	msg.Client = m.id

	switch msg.Type {
	case MsgHello:
		h.mu.Lock()
		m.snakes = append([]string(nil), msg.Snakes...)
		h.mu.Unlock()
		h.log.Info("participant hello", "client", m.id, "snakes", msg.Snakes)
		h.broadcast(m.id, mustEncode(msg))
	case MsgSnapshot:
		h.broadcast(m.id, mustEncode(msg))
	case MsgBye:
		m.close()
	default:
		h.log.Debug("ignoring message", "client", m.id, "type", msg.Type)
	}
}

// broadcast queues data for every participant except from.
func (h *Hub) broadcast(from string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, m := range h.members {
		if id == from {
			continue
		}
		if err := m.queue(data); err != nil {
			h.log.Warn("dropping message for participant", "client", id, "err", err)
		}
	}
}

// Peers returns the roster ordered by connection time.
func (h *Hub) Peers() []PeerInfo {
	h.mu.RLock()
	out := make([]PeerInfo, 0, len(h.members))
	for _, m := range h.members {
		out = append(out, PeerInfo{
			Client: m.id,
			Snakes: append([]string{}, m.snakes...),
			Since:  m.since,
		})
	}
	h.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Since.Equal(out[j].Since) {
			return out[i].Since.Before(out[j].Since)
		}
		return out[i].Client < out[j].Client
	})
	return out
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

// Close disconnects every participant and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	members := make([]*member, 0, len(h.members))
	for _, m := range h.members {
		members = append(members, m)
	}
	h.mu.Unlock()
	for _, m := range members {
		m.close()
	}
}
