package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/pkg/auth"
)

// AuthHandler выпускает короткоживущие сессионные токены
type AuthHandler struct {
	jwtService *auth.JWTService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// IssueTokenRequest представляет запрос на выпуск токена
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken обменивает подтвержденную личность на сессионный токен
// POST /jwt
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.jwtService.GenerateToken(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Printf("[AuthHandler] Ошибка выпуска токена для %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
