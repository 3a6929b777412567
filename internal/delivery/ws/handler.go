package ws

import (
	"net/http"
)

// WSHandler subscribes the connection to the saved-reel feed of roomID.
// Client messages are read and discarded until the peer disconnects.
func WSHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomID")
		if roomID == "" {
			http.Error(w, "missing roomID", http.StatusBadRequest)
			return
		}

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warnf("[WS] upgrade failed room=%s err=%v", roomID, err)
			return
		}

		hub.Register(roomID, conn)
		defer hub.Unregister(roomID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.log.Debugf("[WS] disconnect room=%s", roomID)
				return
			}
		}
	}
}
