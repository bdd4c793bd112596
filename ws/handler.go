package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten in production
	},
}

// Tables clients may subscribe to.
var subscribableTables = map[string]bool{
	"subjects":   true,
	"chapters":   true,
	"playlists":  true,
	"notes":      true,
	"developers": true,
}

func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("WebSocket send error:", err)
	}
}

// HandleTableWebSocket subscribes a client to one table's change stream.
func HandleTableWebSocket(c *gin.Context) {
	table := c.Param("table")
	if !subscribableTables[table] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}

	H.Register(table, conn)
	defer H.Unregister(table, conn)

	log.Printf("table WS connected: table=%s\n", table)
	sendJSON(conn, gin.H{"type": "connected", "table": table})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("table WS disconnected: table=%s\n", table)
}
