package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// PaymentHandler обрабатывает создание сессий оплаты и их фиксацию
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler создает новый обработчик платежей
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateCheckoutRequest представляет запрос на создание сессии оплаты
type CreateCheckoutRequest struct {
	ContestID string `json:"contestId" binding:"required"`
}

// CreateCheckout создает сессию оплаты участия и возвращает redirect URL
// POST /create-checkout-session
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.paymentService.CreateCheckout(c.Request.Context(), req.ContestID, c.MustGet("email").(string))
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Settle фиксирует завершенную оплату участия
// PATCH /payment-success?session_id=
func (h *PaymentHandler) Settle(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id query parameter is required"})
		return
	}

	result, err := h.paymentService.Settle(c.Request.Context(), sessionID)
	if err != nil {
		h.handlePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handlePaymentError обрабатывает ошибки от сервиса платежей и отправляет соответствующий HTTP ответ
func (h *PaymentHandler) handlePaymentError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PaymentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
