package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// CreateContestInput описывает создаваемый конкурс
type CreateContestInput struct {
	Name        string
	Description string
	ContestType string
	ImageURL    string
	EntryPrice  float64
	PrizeMoney  float64
	Deadline    time.Time
}

// EditContestInput описывает частичное обновление конкурса.
// nil-поля не меняются.
type EditContestInput struct {
	Name        *string
	Description *string
	ContestType *string
	ImageURL    *string
	EntryPrice  *float64
	PrizeMoney  *float64
	Deadline    *time.Time
}

// ContestService управляет жизненным циклом конкурсов
type ContestService struct {
	contestRepo repository.ContestRepository
}

// NewContestService создает новый сервис конкурсов
func NewContestService(contestRepo repository.ContestRepository) *ContestService {
	return &ContestService{contestRepo: contestRepo}
}

// Create создает конкурс в статусе pending от имени создателя
func (s *ContestService) Create(creatorEmail string, input CreateContestInput) (*entity.Contest, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: contest name is required", apperrors.ErrValidation)
	}
	if input.EntryPrice < 0 || input.PrizeMoney < 0 {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}

	contest := &entity.Contest{
		CreatorEmail: creatorEmail,
		Name:         input.Name,
		Description:  input.Description,
		ContestType:  input.ContestType,
		ImageURL:     input.ImageURL,
		EntryPrice:   input.EntryPrice,
		PrizeMoney:   input.PrizeMoney,
		Deadline:     input.Deadline,
		Status:       entity.ContestStatusPending,
	}
	if err := s.contestRepo.Create(contest); err != nil {
		return nil, err
	}

	log.Printf("[ContestService] Конкурс %s создан пользователем %s, ожидает модерации", contest.ID, creatorEmail)
	return contest, nil
}

// Edit частично обновляет поля конкурса. Разрешено владельцу или админу.
func (s *ContestService) Edit(id, requesterEmail, requesterRole string, input EditContestInput) (*entity.Contest, error) {
	contest, err := s.contestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contest.CreatorEmail != requesterEmail && requesterRole != entity.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: contest name cannot be empty", apperrors.ErrValidation)
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ContestType != nil {
		updates["contest_type"] = *input.ContestType
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.EntryPrice != nil {
		if *input.EntryPrice < 0 {
			return nil, fmt.Errorf("%w: entry price cannot be negative", apperrors.ErrValidation)
		}
		updates["entry_price"] = *input.EntryPrice
	}
	if input.PrizeMoney != nil {
		if *input.PrizeMoney < 0 {
			return nil, fmt.Errorf("%w: prize money cannot be negative", apperrors.ErrValidation)
		}
		updates["prize_money"] = *input.PrizeMoney
	}
	if input.Deadline != nil {
		updates["deadline"] = *input.Deadline
	}

	if len(updates) > 0 {
		if err := s.contestRepo.UpdateFields(id, updates); err != nil {
			return nil, err
		}
	}
	return s.contestRepo.GetByID(id)
}

// SetStatus переводит конкурс в новый статус модерации
func (s *ContestService) SetStatus(id, status string) error {
	if !entity.IsValidContestStatus(status) {
		return fmt.Errorf("%w: unknown contest status %q", apperrors.ErrValidation, status)
	}
	return s.contestRepo.UpdateStatus(id, status)
}

// Delete удаляет конкурс. Разрешено владельцу или админу; повторное
// удаление — успешный no-op.
func (s *ContestService) Delete(id, requesterEmail, requesterRole string) error {
	contest, err := s.contestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Уже удален
			return nil
		}
		return err
	}
	if contest.CreatorEmail != requesterEmail && requesterRole != entity.RoleAdmin {
		return apperrors.ErrForbidden
	}

	affected, err := s.contestRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected > 0 {
		log.Printf("[ContestService] Конкурс %s удален пользователем %s", id, requesterEmail)
	}
	return nil
}

// ListAll возвращает все конкурсы, новые первыми
func (s *ContestService) ListAll() ([]entity.Contest, error) {
	return s.contestRepo.ListAll()
}

// ListApproved возвращает одобренные конкурсы с фильтром по подстроке
// типа конкурса; limit > 0 ограничивает размер выборки
func (s *ContestService) ListApproved(search string, limit int) ([]entity.Contest, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", apperrors.ErrValidation)
	}
	return s.contestRepo.ListApproved(search, limit)
}

// FindBySearch ищет конкурсы по 24-символьному hex ID или по email создателя.
// Отсутствие конкурса с валидным ID — не ошибка, а пустая выборка.
func (s *ContestService) FindBySearch(search string) ([]entity.Contest, error) {
	if search == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrValidation)
	}

	if entity.IsValidID(search) {
		contest, err := s.contestRepo.GetByID(search)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []entity.Contest{}, nil
			}
			return nil, err
		}
		return []entity.Contest{*contest}, nil
	}
	return s.contestRepo.ListByCreator(search)
}

// FindByWinner возвращает конкурсы, выигранные пользователем
func (s *ContestService) FindByWinner(winnerID string) ([]entity.Contest, error) {
	if !entity.IsValidID(winnerID) {
		return nil, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation)
	}
	return s.contestRepo.ListByWinner(winnerID)
}
