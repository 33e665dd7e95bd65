package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// WinnerRepository определяет методы для работы с лентой победителей
type WinnerRepository interface {
	// ListRecent возвращает последние limit записей, новые первыми
	ListRecent(limit int) ([]entity.WinnerEntry, error)
}
