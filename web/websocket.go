package web

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// WSMessage WebSocket 推送消息
type WSMessage struct {
	Type       string      `json:"type"` // settlement / leaderboard
	EventID    string      `json:"event_id,omitempty"`
	Winner     string      `json:"winner,omitempty"`
	Team1Score *int        `json:"team1_score,omitempty"`
	Team2Score *int        `json:"team2_score,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Client WebSocket 客户端
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub WebSocket Hub，向所有在线客户端推送结算和榜单更新
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *WSMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub 创建新的Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *WSMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run 运行Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Client registered. Total clients: %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("Client unregistered. Total clients: %d", len(h.clients))

		case message := <-h.broadcast:
			data := h.marshalMessage(message)
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					h.mu.RUnlock()
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()
					h.mu.RLock()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast 广播消息（实现services.Broadcaster接口）
func (h *Hub) Broadcast(message interface{}) {
	if wsMsg, ok := message.(*WSMessage); ok {
		h.broadcast <- wsMsg
		return
	}

	if msgMap, ok := message.(map[string]interface{}); ok {
		wsMsg := &WSMessage{}

		if v, ok := msgMap["type"].(string); ok {
			wsMsg.Type = v
		}
		if v, ok := msgMap["event_id"].(string); ok {
			wsMsg.EventID = v
		}
		if v, ok := msgMap["winner"].(string); ok {
			wsMsg.Winner = v
		}
		if v, ok := msgMap["team1_score"].(int); ok {
			wsMsg.Team1Score = &v
		}
		if v, ok := msgMap["team2_score"].(int); ok {
			wsMsg.Team2Score = &v
		}
		if v, ok := msgMap["data"]; ok {
			wsMsg.Data = v
		}

		h.broadcast <- wsMsg
	}
}

// marshalMessage 序列化消息
func (h *Hub) marshalMessage(message *WSMessage) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return []byte("{}")
	}
	return data
}

// readPump 读取客户端消息，只用于探测断线
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump 向客户端写入消息
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
