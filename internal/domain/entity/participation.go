package entity

import (
	"time"

	"gorm.io/gorm"
)

// Participation — долговременная запись о том, что пользователь оплатил
// вход в контест. Создается строго один раз на успешную транзакцию шлюза
// (уникальный индекс по transaction_id) и далее не изменяется.
type Participation struct {
	ID            string    `gorm:"primaryKey;size:24" json:"id"`
	UserID        string    `gorm:"size:24;not null;index" json:"userId"`
	UserEmail     string    `gorm:"size:100;not null;index" json:"userEmail"`
	ContestID     string    `gorm:"size:24;not null;index" json:"contestId"`
	EntryPrice    float64   `gorm:"not null" json:"entryPrice"`
	PrizeMoney    float64   `gorm:"not null" json:"prizeMoney"`
	Deadline      time.Time `json:"deadline"`
	TransactionID string    `gorm:"size:255;not null;uniqueIndex" json:"transactionId"`
	PaymentStatus string    `gorm:"size:20;not null" json:"paymentStatus"`

	ParticipatedAt time.Time `gorm:"autoCreateTime" json:"participatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Participation) TableName() string {
	return "participations"
}

// BeforeCreate присваивает id, если он не задан явно
func (p *Participation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
