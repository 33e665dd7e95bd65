package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/handler/dto"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"omitempty,max=100"`
	PhotoURL    string `json:"photoURL" binding:"omitempty,max=255"`
}

// Register регистрирует пользователя; повторная регистрация email — 409
// POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(service.RegisterUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// List возвращает пользователей, отсортированных по числу побед
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListUserResponse(users))
}

// GetProfile возвращает профиль пользователя по email
// GET /users/:key
func (h *UserHandler) GetProfile(c *gin.Context) {
	email := c.Param("key")

	user, err := h.userService.GetByEmail(email)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetRole возвращает роль пользователя; для неизвестного email — "user"
// GET /users/:key/role
func (h *UserHandler) GetRole(c *gin.Context) {
	email := c.Param("key")

	role, err := h.userService.GetRole(email)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateProfileRequest представляет частичное обновление профиля
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	PhotoURL    *string `json:"photoURL" binding:"omitempty,max=255"`
}

// UpdateProfile обновляет собственный профиль пользователя
// PATCH /users/:key
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	email := c.Param("key")
	requesterEmail := c.MustGet("email").(string)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(email, requesterEmail, service.ProfileUpdateInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateRoleRequest представляет запрос на смену роли
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole меняет роль пользователя (только админ)
// PATCH /users/:key/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id := c.Param("key")
	if !entity.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateRole(id, req.Role); err != nil {
		h.handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// handleUserError обрабатывает ошибки от сервиса пользователей и отправляет соответствующий HTTP ответ
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in UserHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
