package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// RegisterUserInput описывает регистрируемого пользователя
type RegisterUserInput struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// ProfileUpdateInput описывает частичное обновление профиля.
// nil-поля не меняются.
type ProfileUpdateInput struct {
	DisplayName *string
	Bio         *string
	PhotoURL    *string
}

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register создает пользователя с ролью user. Email — уникальный ключ:
// повторная регистрация возвращает ErrConflict.
func (s *UserService) Register(input RegisterUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}

	user := &entity.User{
		Email:       email,
		Role:        entity.RoleUser,
		DisplayName: input.DisplayName,
		PhotoURL:    input.PhotoURL,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrConflict, email)
		}
		return nil, err
	}

	log.Printf("[UserService] Зарегистрирован пользователь %s", email)
	return user, nil
}

// List возвращает пользователей, отсортированных по числу побед
func (s *UserService) List() ([]entity.User, error) {
	return s.userRepo.List()
}

// GetByEmail возвращает профиль пользователя
func (s *UserService) GetByEmail(email string) (*entity.User, error) {
	return s.userRepo.GetByEmail(email)
}

// GetRole возвращает роль пользователя; для незарегистрированного
// email отдается роль user
func (s *UserService) GetRole(email string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return entity.RoleUser, nil
		}
		return "", err
	}
	return user.Role, nil
}

// UpdateProfile обновляет поля собственного профиля пользователя
func (s *UserService) UpdateProfile(email, requesterEmail string, input ProfileUpdateInput) (*entity.User, error) {
	if email != requesterEmail {
		return nil, apperrors.ErrForbidden
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.PhotoURL != nil {
		updates["photo_url"] = *input.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(email, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByEmail(email)
}

// UpdateRole меняет роль пользователя (только админ, проверяется в middleware)
func (s *UserService) UpdateRole(id, role string) error {
	if !entity.IsValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	return s.userRepo.UpdateRole(id, role)
}
