package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// PaymentRepository определяет методы для работы с платежами
type PaymentRepository interface {
	// GetByTransactionID ищет платёж по идентификатору транзакции шлюза
	GetByTransactionID(transactionID string) (*entity.Payment, error)
	// ApplySettlement атомарно (в одной транзакции) фиксирует оплату участия:
	// вставляет платёж, вставляет участие, увеличивает participants_count
	// конкурса и total_participations пользователя. Unique index на
	// transaction_id делает операцию идемпотентной: повторный вызов с тем же
	// transaction_id возвращает errors.ErrConflict, ничего не изменив.
	ApplySettlement(payment *entity.Payment, participation *entity.Participation) error
}
