package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpdateProfile точечно обновляет поля профиля по email без full Save
	UpdateProfile(email string, updates map[string]interface{}) error
	UpdateRole(id string, role string) error
	// List возвращает всех пользователей, отсортированных по total_wins по убыванию
	List() ([]entity.User, error)
}
