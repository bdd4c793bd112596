package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans table change events out to subscribers. Subscriptions are
// table-scoped: a client listening on "playlists" only sees playlist
// changes.
type Hub struct {
	Tables map[string]map[*websocket.Conn]*Client
	Mutex  sync.RWMutex
}

var H = Hub{
	Tables: make(map[string]map[*websocket.Conn]*Client),
}

// TableChange is the payload sent on every insert/update/delete the service
// performs. Clients reload the affected projection; there is no merge logic.
type TableChange struct {
	Table string `json:"table"`
	Event string `json:"event"`
}

const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

func (h *Hub) Register(table string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Tables[table]; !ok {
		h.Tables[table] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Tables[table][conn] = client

	go h.writePump(client)
}

func (h *Hub) Unregister(table string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Tables[table]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Tables, table)
		}
	}
}

// Broadcast sends data to every subscriber of the table. Slow clients are
// skipped rather than blocking the caller.
func (h *Hub) Broadcast(table string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Tables[table] {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// BroadcastTableChange notifies subscribers that rows in a table changed.
func BroadcastTableChange(table, event string) {
	data, err := json.Marshal(TableChange{Table: table, Event: event})
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(table, data)
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
