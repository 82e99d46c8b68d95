package websocket

import (
	"log"
	"sync"

	"fitcats/models"

	"github.com/gorilla/websocket"
)

// StepClient represents a client connected for live step and rank updates.
type StepClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (c *StepClient) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

var (
	stepClients = make(map[*StepClient]bool)
	stepMutex   sync.RWMutex
)

// RegisterStepClient registers a client for step updates
func RegisterStepClient(client *StepClient) {
	stepMutex.Lock()
	defer stepMutex.Unlock()
	stepClients[client] = true
	log.Printf("Step client registered. Total clients: %d", len(stepClients))
}

// UnregisterStepClient removes a client from step updates
func UnregisterStepClient(client *StepClient) {
	stepMutex.Lock()
	defer stepMutex.Unlock()
	delete(stepClients, client)
	client.Conn.Close()
	log.Printf("Step client unregistered. Total clients: %d", len(stepClients))
}

// BroadcastStepEvent pushes a step or rank-change event to every connected
// client. A client whose write fails is dropped from the hub.
func BroadcastStepEvent(event models.StepEvent) {
	stepMutex.RLock()
	defer stepMutex.RUnlock()

	for client := range stepClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting step event to client: %v", err)
			go UnregisterStepClient(client)
		}
	}
}

// StepClientsCount returns the number of connected step clients.
func StepClientsCount() int {
	stepMutex.RLock()
	defer stepMutex.RUnlock()
	return len(stepClients)
}
