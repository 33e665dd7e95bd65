package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// SubmissionRepo реализует repository.SubmissionRepository
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo создает новый репозиторий конкурсных работ
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Create создает новую работу
func (r *SubmissionRepo) Create(submission *entity.Submission) error {
	return r.db.Create(submission).Error
}

// GetByID возвращает работу по ID
func (r *SubmissionRepo) GetByID(id string) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.db.Where("id = ?", id).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// ListByContest возвращает работы конкурса, новые первыми
func (r *SubmissionRepo) ListByContest(contestID string) ([]entity.Submission, error) {
	var submissions []entity.Submission
	err := r.db.Where("contest_id = ?", contestID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// FindByUserAndContest возвращает работу пользователя в конкурсе
func (r *SubmissionRepo) FindByUserAndContest(userID, contestID string) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.db.Where("user_id = ? AND contest_id = ?", userID, contestID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// PromoteWinner объявляет работу победителем одной транзакцией:
// is_winner работы, winner_* конкурса, total_wins пользователя +1,
// запись в ленту победителей. Guard-условия is_winner = '' и
// winner_id = '' делают повторное объявление невозможным: ноль
// затронутых строк откатывает транзакцию с ErrConflict.
func (r *SubmissionRepo) PromoteWinner(submission *entity.Submission, contest *entity.Contest, entry *entity.WinnerEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Submission{}).
			Where("id = ? AND is_winner = ''", submission.ID).
			Update("is_winner", entity.SubmissionWinner)
		if result.Error != nil {
			return fmt.Errorf("mark submission winner: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("submission %s already declared: %w", submission.ID, apperrors.ErrConflict)
		}

		result = tx.Model(&entity.Contest{}).
			Where("id = ? AND winner_id = ''", contest.ID).
			Updates(map[string]interface{}{
				"winner_id":    submission.UserID,
				"winner_name":  submission.UserName,
				"winner_photo": submission.UserPhoto,
				"status":       entity.ContestStatusClosed,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("set contest winner: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("contest %s already has a winner: %w", contest.ID, apperrors.ErrConflict)
		}

		result = tx.Model(&entity.User{}).
			Where("id = ?", submission.UserID).
			Update("total_wins", gorm.Expr("total_wins + ?", 1))
		if result.Error != nil {
			return fmt.Errorf("increment total_wins: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", submission.UserID, apperrors.ErrNotFound)
		}

		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("insert winner entry: %w", err)
		}

		return nil
	})
}
