package entity

import (
	"time"

	"gorm.io/gorm"
)

// Статусы контеста. Новый контест всегда создается в статусе pending
// и становится публично видимым только после перевода админом в approved.
const (
	ContestStatusPending  = "pending"
	ContestStatusApproved = "approved"
	ContestStatusRejected = "rejected"
	ContestStatusClosed   = "closed"
)

// Contest представляет опубликованный создателем конкурс.
// participants_count мутируется только воркфлоу расчета платежа,
// winner_* поля — только объявлением победителя. Консистентность этих
// полей с записями participations/winner_entries поддерживается
// процедурно (транзакциями воркфлоу), а не внешними ключами.
type Contest struct {
	ID                string    `gorm:"primaryKey;size:24" json:"id"`
	CreatorEmail      string    `gorm:"size:100;not null;index" json:"creatorEmail"`
	Name              string    `gorm:"size:200;not null" json:"name"`
	Description       string    `gorm:"size:2000;not null;default:''" json:"description"`
	ContestType       string    `gorm:"size:100;not null;index" json:"contestType"`
	ImageURL          string    `gorm:"size:255;not null;default:''" json:"imageURL"`
	EntryPrice        float64   `gorm:"not null;default:0" json:"entryPrice"`
	PrizeMoney        float64   `gorm:"not null;default:0" json:"prizeMoney"`
	Deadline          time.Time `json:"deadline"`
	Status            string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ParticipantsCount int64     `gorm:"not null;default:0" json:"participantsCount"`
	WinnerID          string    `gorm:"size:24;not null;default:'';index" json:"winnerId,omitempty"`
	WinnerName        string    `gorm:"size:100;not null;default:''" json:"winnerName,omitempty"`
	WinnerPhoto       string    `gorm:"size:255;not null;default:''" json:"winnerPhoto,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Contest) TableName() string {
	return "contests"
}

// BeforeCreate присваивает id и начальный статус
func (c *Contest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.Status == "" {
		c.Status = ContestStatusPending
	}
	return nil
}

// HasWinner возвращает true, если у контеста уже объявлен победитель
func (c *Contest) HasWinner() bool {
	return c.WinnerID != ""
}

// IsValidContestStatus проверяет значение статуса контеста
func IsValidContestStatus(status string) bool {
	switch status {
	case ContestStatusPending, ContestStatusApproved, ContestStatusRejected, ContestStatusClosed:
		return true
	}
	return false
}
