package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/handler/dto"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// ContestHandler обрабатывает запросы, связанные с конкурсами
type ContestHandler struct {
	contestService *service.ContestService
}

// NewContestHandler создает новый обработчик конкурсов
func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: contestService}
}

// CreateContestRequest представляет запрос на создание конкурса
type CreateContestRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	ContestType string    `json:"contestType" binding:"omitempty,max=100"`
	ImageURL    string    `json:"imageURL" binding:"omitempty,max=255"`
	EntryPrice  float64   `json:"entryPrice" binding:"gte=0"`
	PrizeMoney  float64   `json:"prizeMoney" binding:"gte=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// Create создает конкурс в статусе pending
// POST /contests
func (h *ContestHandler) Create(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorEmail := c.MustGet("email").(string)
	contest, err := h.contestService.Create(creatorEmail, service.CreateContestInput{
		Name:        req.Name,
		Description: req.Description,
		ContestType: req.ContestType,
		ImageURL:    req.ImageURL,
		EntryPrice:  req.EntryPrice,
		PrizeMoney:  req.PrizeMoney,
		Deadline:    req.Deadline,
	})
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContestResponse(contest))
}

// EditContestRequest представляет частичное обновление конкурса
type EditContestRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ContestType *string    `json:"contestType" binding:"omitempty,max=100"`
	ImageURL    *string    `json:"imageURL" binding:"omitempty,max=255"`
	EntryPrice  *float64   `json:"entryPrice" binding:"omitempty,gte=0"`
	PrizeMoney  *float64   `json:"prizeMoney" binding:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline"`
}

// Edit обновляет поля конкурса (владелец или админ)
// PATCH /contests/:id
func (h *ContestHandler) Edit(c *gin.Context) {
	contestID := c.MustGet("contestID").(string)

	var req EditContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contest, err := h.contestService.Edit(
		contestID,
		c.MustGet("email").(string),
		c.MustGet("role").(string),
		service.EditContestInput{
			Name:        req.Name,
			Description: req.Description,
			ContestType: req.ContestType,
			ImageURL:    req.ImageURL,
			EntryPrice:  req.EntryPrice,
			PrizeMoney:  req.PrizeMoney,
			Deadline:    req.Deadline,
		},
	)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContestResponse(contest))
}

// SetStatusRequest представляет запрос на смену статуса модерации
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus переводит конкурс в новый статус (только админ)
// PATCH /contests/:id/status
func (h *ContestHandler) SetStatus(c *gin.Context) {
	contestID := c.MustGet("contestID").(string)

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contestService.SetStatus(contestID, req.Status); err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// Delete удаляет конкурс (владелец или админ); повторное удаление — no-op
// DELETE /contests/:id
func (h *ContestHandler) Delete(c *gin.Context) {
	contestID := c.MustGet("contestID").(string)

	err := h.contestService.Delete(contestID, c.MustGet("email").(string), c.MustGet("role").(string))
	if err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contest deleted"})
}

// ListAll возвращает все конкурсы, новые первыми
// GET /contests
func (h *ContestHandler) ListAll(c *gin.Context) {
	contests, err := h.contestService.ListAll()
	if err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListContestResponse(contests))
}

// ListApproved возвращает одобренные конкурсы с фильтром по типу конкурса
// GET /contests/approved?search=&limit=
func (h *ContestHandler) ListApproved(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	contests, err := h.contestService.ListApproved(c.Query("search"), limit)
	if err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListContestResponse(contests))
}

// FindBySearch ищет конкурсы по ID или email создателя
// GET /contests/:search
func (h *ContestHandler) FindBySearch(c *gin.Context) {
	contests, err := h.contestService.FindBySearch(c.Param("search"))
	if err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListContestResponse(contests))
}

// FindByWinner возвращает конкурсы, выигранные пользователем
// GET /contests/winner/:userId
func (h *ContestHandler) FindByWinner(c *gin.Context) {
	contests, err := h.contestService.FindByWinner(c.Param("userId"))
	if err != nil {
		h.handleContestError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListContestResponse(contests))
}

// handleContestError обрабатывает ошибки от сервиса конкурсов и отправляет соответствующий HTTP ответ
func (h *ContestHandler) handleContestError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ContestHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
