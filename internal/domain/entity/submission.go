package entity

import (
	"time"

	"gorm.io/gorm"
)

// Значение is_winner для победившей заявки. Пустая строка — заявка
// еще не победила. Других значений нет.
const SubmissionWinner = "winner"

// Submission представляет работу участника в контесте.
// Уникальность "один пользователь — одна заявка на контест" на записи
// не навязывается: клиент обязан предварительно проверять ее через
// HasSubmitted (см. SubmissionRepository).
type Submission struct {
	ID          string `gorm:"primaryKey;size:24" json:"id"`
	ContestID   string `gorm:"size:24;not null;index" json:"contestId"`
	ContestName string `gorm:"size:200;not null;default:''" json:"contestName"`
	UserID      string `gorm:"size:24;not null;index" json:"userId"`
	UserEmail   string `gorm:"size:100;not null" json:"userEmail"`
	UserName    string `gorm:"size:100;not null;default:''" json:"userName"`
	UserPhoto   string `gorm:"size:255;not null;default:''" json:"userPhoto"`
	TaskURL     string `gorm:"size:500;not null;default:''" json:"taskUrl"`
	Description string `gorm:"size:2000;not null;default:''" json:"description"`
	IsWinner    string `gorm:"size:20;not null;default:''" json:"isWinner,omitempty"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

// TableName определяет имя таблицы для GORM
func (Submission) TableName() string {
	return "submissions"
}

// BeforeCreate присваивает id, если он не задан явно
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// IsDeclaredWinner возвращает true, если заявка уже отмечена победителем
func (s *Submission) IsDeclaredWinner() bool {
	return s.IsWinner == SubmissionWinner
}
