package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ContestRepo реализует repository.ContestRepository
type ContestRepo struct {
	db *gorm.DB
}

// NewContestRepo создает новый репозиторий конкурсов
func NewContestRepo(db *gorm.DB) *ContestRepo {
	return &ContestRepo{db: db}
}

// Create создает новый конкурс
func (r *ContestRepo) Create(contest *entity.Contest) error {
	return r.db.Create(contest).Error
}

// GetByID возвращает конкурс по ID
func (r *ContestRepo) GetByID(id string) (*entity.Contest, error) {
	var contest entity.Contest
	err := r.db.Where("id = ?", id).First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// UpdateFields точечно обновляет поля конкурса без полного Save.
// Счетчик участников и поля победителя меняются только своими
// транзакциями (ApplySettlement, PromoteWinner), не отсюда.
func (r *ContestRepo) UpdateFields(id string, updates map[string]interface{}) error {
	delete(updates, "participants_count")
	delete(updates, "winner_id")
	delete(updates, "winner_name")
	delete(updates, "winner_photo")

	updates["updated_at"] = time.Now()

	result := r.db.Model(&entity.Contest{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus обновляет статус конкурса
func (r *ContestRepo) UpdateStatus(id string, status string) error {
	result := r.db.Model(&entity.Contest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет конкурс и возвращает число затронутых строк
func (r *ContestRepo) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&entity.Contest{})
	return result.RowsAffected, result.Error
}

// ListAll возвращает все конкурсы, новые первыми
func (r *ContestRepo) ListAll() ([]entity.Contest, error) {
	var contests []entity.Contest
	err := r.db.Order("created_at DESC").Find(&contests).Error
	return contests, err
}

// ListApproved возвращает approved-конкурсы, отсортированные по числу
// участников по убыванию; search фильтрует по подстроке типа конкурса
// без учета регистра, limit > 0 ограничивает размер выборки
func (r *ContestRepo) ListApproved(search string, limit int) ([]entity.Contest, error) {
	var contests []entity.Contest
	query := r.db.Where("status = ?", entity.ContestStatusApproved)
	if search != "" {
		query = query.Where("contest_type ILIKE ?", "%"+search+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("participants_count DESC, created_at DESC").Find(&contests).Error
	return contests, err
}

// ListByCreator возвращает конкурсы, созданные пользователем
func (r *ContestRepo) ListByCreator(creatorEmail string) ([]entity.Contest, error) {
	var contests []entity.Contest
	err := r.db.Where("creator_email = ?", creatorEmail).
		Order("created_at DESC").
		Find(&contests).Error
	return contests, err
}

// ListByWinner возвращает конкурсы, выигранные пользователем
func (r *ContestRepo) ListByWinner(winnerID string) ([]entity.Contest, error) {
	var contests []entity.Contest
	err := r.db.Where("winner_id = ?", winnerID).
		Order("created_at DESC").
		Find(&contests).Error
	return contests, err
}
