package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// ContestRepository определяет методы для работы с конкурсами
type ContestRepository interface {
	Create(contest *entity.Contest) error
	GetByID(id string) (*entity.Contest, error)
	// UpdateFields точечно обновляет поля конкурса без full Save
	UpdateFields(id string, updates map[string]interface{}) error
	UpdateStatus(id string, status string) error
	// Delete удаляет конкурс и возвращает число затронутых строк (0 — конкурса не было)
	Delete(id string) (int64, error)
	// ListAll возвращает все конкурсы, новые первыми
	ListAll() ([]entity.Contest, error)
	// ListApproved возвращает approved-конкурсы; search фильтрует по подстроке
	// типа конкурса без учета регистра, limit > 0 ограничивает выборку
	ListApproved(search string, limit int) ([]entity.Contest, error)
	ListByCreator(creatorEmail string) ([]entity.Contest, error)
	ListByWinner(winnerID string) ([]entity.Contest, error)
}
