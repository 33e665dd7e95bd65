package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// SettlementResult — итог фиксации оплаты
type SettlementResult struct {
	Success bool `json:"success"`
	// AlreadyProcessed: транзакция уже была зафиксирована ранее;
	// повторный вызов — успешный no-op
	AlreadyProcessed bool   `json:"alreadyProcessed"`
	TransactionID    string `json:"transactionId,omitempty"`
	// PaymentStatus — статус шлюза, когда оплата не подтверждена
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// PaymentService управляет созданием сессий оплаты и их фиксацией
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	contestRepo repository.ContestRepository
	userRepo    repository.UserRepository
	gateway     CheckoutGateway
}

// NewPaymentService создает новый сервис платежей
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contestRepo repository.ContestRepository,
	userRepo repository.UserRepository,
	gateway CheckoutGateway,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		contestRepo: contestRepo,
		userRepo:    userRepo,
		gateway:     gateway,
	}
}

// CreateCheckout создает сессию оплаты участия и возвращает redirect URL
func (s *PaymentService) CreateCheckout(ctx context.Context, contestID, userEmail string) (string, error) {
	if !entity.IsValidID(contestID) {
		return "", fmt.Errorf("%w: invalid contest id", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		return "", err
	}

	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return "", err
	}
	if contest.Status != entity.ContestStatusApproved {
		return "", fmt.Errorf("%w: contest is not open for participation", apperrors.ErrConflict)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CreateCheckoutParams{
		ContestID:        contest.ID,
		ContestName:      contest.Name,
		ParticipantEmail: user.Email,
		ParticipantID:    user.ID,
		EntryPrice:       contest.EntryPrice,
		Currency:         "usd",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// Settle превращает завершенную оплату в долговременное состояние платформы:
// платёж, участие и инкременты счетчиков конкурса и пользователя — ровно
// один раз на транзакцию шлюза.
//
// Ключ идемпотентности — payment intent шлюза, а не sessionID: одна
// логическая оплата может запрашиваться разными sessionID при повторных
// редиректах, но транзакция под ними одна.
//
// Участник тоже берётся из metadata сессии, а не из предъявителя токена:
// сессия создавалась под конкретного пользователя, и фиксация чужого
// session_id не должна записать участие на вызывающего.
func (s *PaymentService) Settle(ctx context.Context, sessionID string) (*SettlementResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session_id is required", apperrors.ErrValidation)
	}

	// Единственный источник правды о движении денег — запись шлюза;
	// присланному клиентом sessionID не доверяем ни сумму, ни статус
	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session: %w", err)
	}

	transactionID := session.PaymentIntentID
	if transactionID != "" {
		existing, err := s.paymentRepo.GetByTransactionID(transactionID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			log.Printf("[PaymentService] Транзакция %s уже зафиксирована, повторный вызов пропущен", transactionID)
			return &SettlementResult{Success: true, AlreadyProcessed: true, TransactionID: transactionID}, nil
		}
	}

	if !session.IsPaid() {
		return &SettlementResult{Success: false, PaymentStatus: session.PaymentStatus}, nil
	}
	if transactionID == "" {
		return nil, fmt.Errorf("gateway reported paid session %s without payment intent", session.ID)
	}

	contestID := session.Metadata["contest_id"]
	contest, err := s.contestRepo.GetByID(contestID)
	if err != nil {
		return nil, fmt.Errorf("load contest %s: %w", contestID, err)
	}

	participantID := session.Metadata["user_id"]
	if participantID == "" {
		return nil, fmt.Errorf("gateway session %s carries no participant metadata", session.ID)
	}
	user, err := s.userRepo.GetByID(participantID)
	if err != nil {
		return nil, fmt.Errorf("load participant %s: %w", participantID, err)
	}

	now := time.Now()
	payment := &entity.Payment{
		UserID:        user.ID,
		UserEmail:     user.Email,
		ContestID:     contest.ID,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      strings.ToUpper(session.Currency),
		TransactionID: transactionID,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        now,
	}
	participation := &entity.Participation{
		UserID:        user.ID,
		UserEmail:     user.Email,
		ContestID:     contest.ID,
		EntryPrice:    contest.EntryPrice,
		PrizeMoney:    contest.PrizeMoney,
		Deadline:      contest.Deadline,
		TransactionID: transactionID,
		PaymentStatus: session.PaymentStatus,
	}

	if err := s.paymentRepo.ApplySettlement(payment, participation); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Конкурентный дубликат проиграл гонку за unique index —
			// для вызывающего это тот же успешный no-op
			return &SettlementResult{Success: true, AlreadyProcessed: true, TransactionID: transactionID}, nil
		}
		return nil, err
	}

	log.Printf("[PaymentService] Оплата участия зафиксирована: транзакция %s, конкурс %s, пользователь %s",
		transactionID, contest.ID, user.Email)

	return &SettlementResult{Success: true, TransactionID: transactionID}, nil
}
