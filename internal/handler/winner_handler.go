package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/service"
)

// WinnerHandler отдает публичную ленту недавних победителей
type WinnerHandler struct {
	winnerService *service.WinnerService
}

// NewWinnerHandler создает новый обработчик ленты победителей
func NewWinnerHandler(winnerService *service.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// GetRecentWinners возвращает последних победителей
// GET /winners
func (h *WinnerHandler) GetRecentWinners(c *gin.Context) {
	winners, err := h.winnerService.GetRecentWinners()
	if err != nil {
		log.Printf("[WinnerHandler] Ошибка получения ленты победителей: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, winners)
}
