package entity

import (
	"time"

	"gorm.io/gorm"
)

// WinnerEntry — append-only проекция для публичной ленты победителей.
// Добавляется в той же транзакции, что и объявление победителя;
// total_wins пользователя всегда равен числу его записей здесь.
type WinnerEntry struct {
	ID          string  `gorm:"primaryKey;size:24" json:"id"`
	ContestID   string  `gorm:"size:24;not null;index" json:"contestId"`
	WinnerID    string  `gorm:"size:24;not null;index" json:"winnerId"`
	WinnerName  string  `gorm:"size:100;not null;default:''" json:"winnerName"`
	WinnerPhoto string  `gorm:"size:255;not null;default:''" json:"winnerPhoto"`
	ContestName string  `gorm:"size:200;not null" json:"contestName"`
	ContestType string  `gorm:"size:100;not null;default:''" json:"contestType"`
	PrizeMoney  float64 `gorm:"not null;default:0" json:"prizeMoney"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (WinnerEntry) TableName() string {
	return "winner_entries"
}

// BeforeCreate присваивает id, если он не задан явно
func (w *WinnerEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = NewID()
	}
	return nil
}
