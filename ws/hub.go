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

// Hub fans inquiry events out to connected dashboards: per-inquiry
// subscribers (the submitting farmer watching one inquiry) and global
// subscribers (staff dashboards watching the whole list).
type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // keyed by inquiry id
	GlobalClients map[*websocket.Conn]*Client
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

type InquiryStatusUpdate struct {
	InquiryID       string `json:"inquiry_id"`
	Status          string `json:"status"`
	ManagerResponse string `json:"manager_response,omitempty"`
}

func (h *Hub) Register(inquiryID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[inquiryID]; !ok {
		h.Clients[inquiryID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[inquiryID][conn] = client

	go h.readPump(inquiryID, conn)
	go h.writePump(client)
}

func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.GlobalClients[conn] = client

	go h.readGlobalPump(conn)
	go h.writePump(client)
}

func (h *Hub) Unregister(inquiryID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[inquiryID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, inquiryID)
		}
	}
}

func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// Broadcast to everyone watching one inquiry. Slow clients are skipped
// rather than blocking the sender.
func (h *Hub) Broadcast(inquiryID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[inquiryID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendInquiryStatusUpdate pushes a status change to the inquiry's watchers.
func SendInquiryStatusUpdate(inquiryID, status, managerResponse string) {
	update := InquiryStatusUpdate{
		InquiryID:       inquiryID,
		Status:          status,
		ManagerResponse: managerResponse,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(inquiryID, data)
}

// BroadcastInquiryListChanged signals staff dashboards to refetch the list.
func BroadcastInquiryListChanged() {
	H.BroadcastGlobal([]byte(`{"type": "inquiry_list_changed"}`))
}

func (h *Hub) readPump(inquiryID string, conn *websocket.Conn) {
	defer h.Unregister(inquiryID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) readGlobalPump(conn *websocket.Conn) {
	defer h.UnregisterGlobal(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
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

// GetStats reports connection counts for the health endpoint.
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	perInquiry := 0
	for _, clients := range h.Clients {
		perInquiry += len(clients)
	}
	return map[string]int{
		"inquiry_connections": perInquiry,
		"global_connections":  len(h.GlobalClients),
	}
}
