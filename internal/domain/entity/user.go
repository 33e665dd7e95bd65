package entity

import (
	"time"

	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// User представляет пользователя в системе.
// Создается один раз при первой регистрации email; счетчики
// total_participations / total_wins мутируются только воркфлоу
// расчета платежа и объявления победителя соответственно.
type User struct {
	ID                  string `gorm:"primaryKey;size:24" json:"id"`
	Email               string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Role                string `gorm:"size:20;not null;default:'user'" json:"role"` // user, creator, admin
	DisplayName         string `gorm:"size:100;not null;default:''" json:"displayName"`
	Bio                 string `gorm:"size:500;not null;default:''" json:"bio"`
	PhotoURL            string `gorm:"size:255;not null;default:''" json:"photoURL"`
	TotalParticipations int64  `gorm:"not null;default:0" json:"totalParticipations"`
	TotalWins           int64  `gorm:"not null;default:0;index:idx_users_total_wins" json:"totalWins"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate присваивает id, если он не задан явно
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// IsValidRole проверяет, что строка является допустимой ролью
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleCreator, RoleAdmin:
		return true
	}
	return false
}
