package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"roster-app-go/roster"
)

const writeWait = 10 * time.Second

// RosterSocket mounts the roster screen for as long as a WebSocket stays open
type RosterSocket struct {
	Roster   *roster.Screen
	upgrader websocket.Upgrader
}

// NewRosterSocket creates a new RosterSocket
func NewRosterSocket(screen *roster.Screen) *RosterSocket {
	return &RosterSocket{Roster: screen}
}

// Serve handles GET /ws/roster. Every state change is pushed as a roster.Snapshot.
func (h *RosterSocket) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade failed:", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	m := h.Roster.Mount(c.Request.Context(), func(s roster.State) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(roster.SnapshotOf(s)); err != nil {
			log.Printf("Error pushing roster state: %v", err)
		}
	})
	defer m.Unmount()
	log.Printf("Roster mount %s opened", m.ID)

	// Nothing is expected from the client; the loop only detects when it leaves
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	log.Printf("Roster mount %s closed", m.ID)
}
