package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 50 * time.Second
	sendBufferSize = 16
)

// Event — сообщение, рассылаемое подписчикам ленты победителей
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub раздает события о новых победителях всем подключенным клиентам.
// Доступ к карте клиентов сериализован через каналы: Run — единственная
// горутина, которая её трогает.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку событий
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[Hub] Клиент подключен, всего: %d", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[Hub] Клиент отключен, всего: %d", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный клиент отключается, чтобы не блокировать рассылку
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastWinner рассылает событие о новом победителе
func (h *Hub) BroadcastWinner(data interface{}) {
	payload, err := json.Marshal(Event{Type: "winner_declared", Data: data})
	if err != nil {
		log.Printf("[Hub] Ошибка сериализации события: %v", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		log.Printf("[Hub] Буфер рассылки переполнен, событие отброшено")
	}
}

// Client — одно websocket-подключение
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient регистрирует подключение в хабе и запускает его write pump
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	hub.register <- client
	go client.writePump()
	go client.readPump()
	return client
}

// writePump пишет события и пинги в соединение
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump вычитывает входящие фреймы, чтобы обрабатывать close и pong
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
