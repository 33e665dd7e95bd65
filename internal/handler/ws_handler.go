package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/yourusername/contest-api/internal/websocket"
)

// WSHandler подключает клиентов к живой ленте победителей
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
}

// NewWSHandler создает новый websocket-обработчик
func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Лента публичная, same-origin не требуется
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe апгрейдит соединение и подписывает клиента на события
// GET /ws/winners
func (h *WSHandler) Subscribe(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения: %v", err)
		return
	}
	websocket.NewClient(h.hub, conn)
}
