package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// SubmissionRepository определяет методы для работы с конкурсными работами
type SubmissionRepository interface {
	Create(submission *entity.Submission) error
	GetByID(id string) (*entity.Submission, error)
	ListByContest(contestID string) ([]entity.Submission, error)
	FindByUserAndContest(userID, contestID string) (*entity.Submission, error)
	// PromoteWinner атомарно (в одной транзакции) помечает работу победителем,
	// записывает победителя в конкурс, увеличивает total_wins пользователя
	// и добавляет запись в ленту победителей. Guard-условия is_winner = ''
	// и winner_id = '' защищают от повторного объявления: при нуле затронутых
	// строк транзакция откатывается с errors.ErrConflict.
	PromoteWinner(submission *entity.Submission, contest *entity.Contest, entry *entity.WinnerEntry) error
}
