// Package server exposes the grid engine over HTTP and websockets: token
// auth, sheet CRUD, and a per-sheet room hub that turns edit messages into
// commands executed through each sheet's undo history before broadcasting
// the updated state.
package server

import (
	"encoding/json"
	"log/slog"

	"github.com/deep-bhut-zeuslearning/excel/command"
	"github.com/deep-bhut-zeuslearning/excel/grid"
	"github.com/deep-bhut-zeuslearning/excel/sheet"
)

// Message is the envelope exchanged over the websocket.
type Message struct {
	Type    string          `json:"type"`
	SheetID string          `json:"sheet_id"`
	Payload json.RawMessage `json:"payload"`
	User    string          `json:"user,omitempty"`
}

// Websocket message types.
const (
	msgInit         = "INIT"
	msgSetCell      = "SET_CELL"
	msgSetStyle     = "SET_STYLE"
	msgFillRange    = "FILL_RANGE"
	msgClearRange   = "CLEAR_RANGE"
	msgResizeRow    = "RESIZE_ROW"
	msgResizeCol    = "RESIZE_COL"
	msgInsertRow    = "INSERT_ROW"
	msgDeleteRow    = "DELETE_ROW"
	msgInsertCol    = "INSERT_COL"
	msgDeleteCol    = "DELETE_COL"
	msgUndo         = "UNDO"
	msgRedo         = "REDO"
	msgSheetUpdated = "SHEET_UPDATED"
)

// Hub maintains the set of active clients grouped into per-sheet rooms and
// applies inbound edit messages before broadcasting the result.
type Hub struct {
	rooms map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	sheets *sheet.Manager
}

// NewHub creates a hub over the given sheet manager.
func NewHub(sheets *sheet.Manager) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sheets:     sheets,
	}
}

// Run processes registration and edit messages until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.rooms[client.sheetID] == nil {
				h.rooms[client.sheetID] = make(map[*Client]bool)
			}
			h.rooms[client.sheetID][client] = true
			slog.Info("client registered", "sheet", client.sheetID, "user", client.user)

			if s := h.sheets.Get(client.sheetID); s != nil {
				if payload, err := json.Marshal(s); err == nil {
					client.send <- msgToBytes(&Message{Type: msgInit, SheetID: s.ID, Payload: payload, User: "system"})
				}
			}

		case client := <-h.unregister:
			if clients, ok := h.rooms[client.sheetID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.sheetID)
					}
					slog.Info("client unregistered", "sheet", client.sheetID, "user", client.user)
				}
			}

		case message := <-h.broadcast:
			h.handle(message)
		}
	}
}

// handle applies one edit message and broadcasts the updated sheet to the
// room, or a rejection back to nobody (rejections are only logged; the
// fail-soft core gives the UI nothing to roll back).
func (h *Hub) handle(msg *Message) {
	s := h.sheets.Get(msg.SheetID)
	if s == nil {
		slog.Warn("message for unknown sheet", "sheet", msg.SheetID, "type", msg.Type)
		return
	}

	if !h.apply(s, msg) {
		slog.Warn("edit rejected", "sheet", msg.SheetID, "type", msg.Type, "user", msg.User)
		return
	}

	h.sheets.Save(s)
	payload, err := json.Marshal(s)
	if err != nil {
		slog.Error("encode sheet for broadcast", "sheet", s.ID, "error", err)
		return
	}
	h.broadcastToRoom(msg.SheetID, &Message{
		Type:    msgSheetUpdated,
		SheetID: msg.SheetID,
		Payload: payload,
		User:    msg.User,
	})
}

// apply translates a message into a command executed through the sheet's
// history. Unknown message types are rejected.
func (h *Hub) apply(s *sheet.Sheet, msg *Message) bool {
	switch msg.Type {
	case msgSetCell:
		var p struct {
			Row   int    `json:"row"`
			Col   int    `json:"col"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.SetValue{Store: s.Store, Row: p.Row, Col: p.Col, Value: p.Value})

	case msgSetStyle:
		var p struct {
			Row   int        `json:"row"`
			Col   int        `json:"col"`
			Style grid.Style `json:"style"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.SetStyle{Store: s.Store, Row: p.Row, Col: p.Col, Style: p.Style})

	case msgFillRange:
		var p struct {
			R0    int    `json:"r0"`
			C0    int    `json:"c0"`
			R1    int    `json:"r1"`
			C1    int    `json:"c1"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.SetRange{Store: s.Store, R0: p.R0, C0: p.C0, R1: p.R1, C1: p.C1, Value: p.Value})

	case msgClearRange:
		var p struct {
			R0 int `json:"r0"`
			C0 int `json:"c0"`
			R1 int `json:"r1"`
			C1 int `json:"c1"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.ClearRange{Store: s.Store, R0: p.R0, C0: p.C0, R1: p.R1, C1: p.C1})

	case msgResizeRow:
		var p struct {
			Row    int `json:"row"`
			Height int `json:"height"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(command.NewResizeRow(s.Store, p.Row, p.Height))

	case msgResizeCol:
		var p struct {
			Col   int `json:"col"`
			Width int `json:"width"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(command.NewResizeColumn(s.Store, p.Col, p.Width))

	case msgInsertRow:
		var p struct {
			Row int `json:"row"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.InsertRow{Store: s.Store, Index: p.Row})

	case msgDeleteRow:
		var p struct {
			Row int `json:"row"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.DeleteRow{Store: s.Store, Index: p.Row})

	case msgInsertCol:
		var p struct {
			Col int `json:"col"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.InsertColumn{Store: s.Store, Index: p.Col})

	case msgDeleteCol:
		var p struct {
			Col int `json:"col"`
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false
		}
		return s.Apply(&command.DeleteColumn{Store: s.Store, Index: p.Col})

	case msgUndo:
		return s.Undo()

	case msgRedo:
		return s.Redo()

	default:
		return false
	}
}

func (h *Hub) broadcastToRoom(sheetID string, msg *Message) {
	clients, ok := h.rooms[sheetID]
	if !ok {
		return
	}
	data := msgToBytes(msg)
	for client := range clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(clients, client)
		}
	}
}

func msgToBytes(msg *Message) []byte {
	b, _ := json.Marshal(msg)
	return b
}
