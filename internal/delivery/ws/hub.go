package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultWriteWait = 5 * time.Second

// Hub groups websocket connections into rooms keyed by username.
// Writes are serialized by Broadcast, the only sender.
type Hub struct {
	mu        sync.RWMutex
	rooms     map[string]map[*websocket.Conn]bool
	writeWait time.Duration
	log       *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	log.Infof("[hub] init")
	return &Hub{
		rooms:     make(map[string]map[*websocket.Conn]bool),
		writeWait: defaultWriteWait,
		log:       log,
	}
}

func (h *Hub) Register(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
		h.log.Debugf("[hub] create room=%s", roomID)
	}

	h.rooms[roomID][conn] = true
	h.log.Infof("[hub] register room=%s conns=%d", roomID, len(h.rooms[roomID]))
}

func (h *Hub) Unregister(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}

	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
		h.log.Infof("[hub] unregister room=%s conns=%d", roomID, len(conns))
	}

	if len(conns) == 0 {
		delete(h.rooms, roomID)
		h.log.Debugf("[hub] delete room=%s", roomID)
	}
}

func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// SendToRoom writes msg to every connection of the room. The lock is not
// held while writing; a connection that misses the write deadline is dropped.
func (h *Hub) SendToRoom(roomID string, msg []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[roomID]))
	for conn := range h.rooms[roomID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		h.log.Debugf("[hub][SEND-SKIP] room=%s reason=no_active_connections", roomID)
		return
	}

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warnf("[hub][SEND-ERR] room=%s err=%v", roomID, err)
			h.Unregister(roomID, conn)
		}
	}
	h.log.Debugf("[hub][SEND] room=%s conns=%d bytes=%d", roomID, len(conns), len(msg))
}

// Broadcast forwards saved events to the room of their username until ctx
// is done or events is closed.
func (h *Hub) Broadcast(ctx context.Context, events <-chan ports.SavedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.log.Errorf("[hub][SEND-ERR] marshal: %v", err)
				continue
			}
			h.SendToRoom(ev.Username, payload)
		}
	}
}

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
