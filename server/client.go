package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The HTTP API already allows any origin; the socket follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection bound to a sheet room.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	sheetID string
	user    string
}

// ServeWS upgrades an HTTP request into a room client. The sheet id comes
// from the "sheet" query parameter; user identity must already be
// validated by the caller.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, user string) {
	sheetID := r.URL.Query().Get("sheet")
	if sheetID == "" {
		http.Error(w, "sheet id required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "error", err)
		return
	}
	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		sheetID: sheetID,
		user:    user,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump forwards inbound messages to the hub, stamping the sender.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read", "error", err)
			}
			return
		}
		msg.SheetID = c.sheetID
		msg.User = c.user
		c.hub.broadcast <- &msg
	}
}

// writePump drains the send channel to the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
