package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// WinnerRepo реализует repository.WinnerRepository
type WinnerRepo struct {
	db *gorm.DB
}

// NewWinnerRepo создает новый репозиторий ленты победителей
func NewWinnerRepo(db *gorm.DB) *WinnerRepo {
	return &WinnerRepo{db: db}
}

// ListRecent возвращает последние limit записей, новые первыми
func (r *WinnerRepo) ListRecent(limit int) ([]entity.WinnerEntry, error) {
	var entries []entity.WinnerEntry
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
