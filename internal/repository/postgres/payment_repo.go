package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// PaymentRepo реализует repository.PaymentRepository
type PaymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepo создает новый репозиторий платежей
func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// GetByTransactionID возвращает платёж по идентификатору транзакции шлюза
func (r *PaymentRepo) GetByTransactionID(transactionID string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// ApplySettlement фиксирует оплату участия одной транзакцией:
// платёж, участие, participants_count конкурса +1, total_participations
// пользователя +1. Гонку двух конкурентных вызовов с одним transaction_id
// разрешает unique index на payments.transaction_id: проигравшая вставка
// получает 23505, вся её транзакция откатывается, наружу уходит ErrConflict.
func (r *PaymentRepo) ApplySettlement(payment *entity.Payment, participation *entity.Participation) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		if err := tx.Create(participation).Error; err != nil {
			return fmt.Errorf("insert participation: %w", err)
		}

		result := tx.Model(&entity.Contest{}).
			Where("id = ?", payment.ContestID).
			Update("participants_count", gorm.Expr("participants_count + ?", 1))
		if result.Error != nil {
			return fmt.Errorf("increment participants_count: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("contest %s: %w", payment.ContestID, apperrors.ErrNotFound)
		}

		result = tx.Model(&entity.User{}).
			Where("id = ?", payment.UserID).
			Update("total_participations", gorm.Expr("total_participations + ?", 1))
		if result.Error != nil {
			return fmt.Errorf("increment total_participations: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", payment.UserID, apperrors.ErrNotFound)
		}

		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("[PaymentRepo] Повторная фиксация транзакции %s, изменения отменены", payment.TransactionID)
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}
