package entity

import (
	"time"

	"gorm.io/gorm"
)

// Payment — запись леджера об успешном платеже за вход в контест.
// transaction_id — идентификатор payment intent у платежного шлюза,
// естественный ключ идемпотентности расчета: уникальный индекс по нему
// гарантирует не более одной записи на внешнюю транзакцию даже при
// гонке двух одновременных вызовов расчета. Запись иммутабельна.
type Payment struct {
	ID            string    `gorm:"primaryKey;size:24" json:"id"`
	UserID        string    `gorm:"size:24;not null;index" json:"userId"`
	UserEmail     string    `gorm:"size:100;not null" json:"userEmail"`
	ContestID     string    `gorm:"size:24;not null;index" json:"contestId"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"size:10;not null" json:"currency"`
	TransactionID string    `gorm:"size:255;not null;uniqueIndex" json:"transactionId"`
	PaymentStatus string    `gorm:"size:20;not null" json:"paymentStatus"`
	PaidAt        time.Time `json:"paidAt"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate присваивает id, если он не задан явно
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
