package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/websocket"
)

// SubmitInput описывает подаваемую конкурсную работу
type SubmitInput struct {
	ContestID   string
	TaskURL     string
	Description string
}

// WinnerDeclaration — итог объявления победителя
type WinnerDeclaration struct {
	Submission *entity.Submission `json:"submission"`
	// AlreadyDeclared: эта работа уже была объявлена победителем ранее;
	// повторный вызов — успешный no-op
	AlreadyDeclared bool `json:"alreadyDeclared"`
}

// SubmissionService управляет жизненным циклом конкурсных работ
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
	userRepo       repository.UserRepository
	cacheRepo      repository.CacheRepository
	emailService   EmailService
	hub            *websocket.Hub
}

// NewSubmissionService создает новый сервис конкурсных работ
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	emailService EmailService,
	hub *websocket.Hub,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
		userRepo:       userRepo,
		cacheRepo:      cacheRepo,
		emailService:   emailService,
		hub:            hub,
	}
}

// Submit создает работу от имени аутентифицированного пользователя.
// Конкурс должен существовать и быть одобрен.
func (s *SubmissionService) Submit(userEmail string, input SubmitInput) (*entity.Submission, error) {
	if !entity.IsValidID(input.ContestID) {
		return nil, fmt.Errorf("%w: invalid contest id", apperrors.ErrValidation)
	}
	if input.TaskURL == "" {
		return nil, fmt.Errorf("%w: task url is required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		return nil, err
	}

	contest, err := s.contestRepo.GetByID(input.ContestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != entity.ContestStatusApproved {
		return nil, fmt.Errorf("%w: contest is not open for submissions", apperrors.ErrConflict)
	}

	submission := &entity.Submission{
		ContestID:   contest.ID,
		ContestName: contest.Name,
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.DisplayName,
		UserPhoto:   user.PhotoURL,
		TaskURL:     input.TaskURL,
		Description: input.Description,
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// HasSubmitted проверяет, подал ли пользователь работу в конкурс
func (s *SubmissionService) HasSubmitted(userID, contestID string) (bool, error) {
	if !entity.IsValidID(userID) || !entity.IsValidID(contestID) {
		return false, fmt.Errorf("%w: invalid user or contest id", apperrors.ErrValidation)
	}
	_, err := s.submissionRepo.FindByUserAndContest(userID, contestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByContest возвращает работы конкурса
func (s *SubmissionService) ListByContest(contestID string) ([]entity.Submission, error) {
	if !entity.IsValidID(contestID) {
		return nil, fmt.Errorf("%w: invalid contest id", apperrors.ErrValidation)
	}
	return s.submissionRepo.ListByContest(contestID)
}

// DeclareWinner объявляет работу победителем её конкурса. Разрешено
// создателю конкурса или админу. Вся валидация выполняется до первой
// записи; сами четыре мутации применяются одной транзакцией в
// PromoteWinner. Повторное объявление той же работы — успешный no-op,
// попытка объявить вторую работу в закрытом конкурсе — конфликт.
func (s *SubmissionService) DeclareWinner(ctx context.Context, submissionID, requesterEmail, requesterRole string) (*WinnerDeclaration, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}

	contest, err := s.contestRepo.GetByID(submission.ContestID)
	if err != nil {
		return nil, fmt.Errorf("load contest %s: %w", submission.ContestID, err)
	}
	if contest.CreatorEmail != requesterEmail && requesterRole != entity.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if submission.IsDeclaredWinner() {
		return &WinnerDeclaration{Submission: submission, AlreadyDeclared: true}, nil
	}
	if contest.HasWinner() {
		return nil, fmt.Errorf("%w: contest %s already has a winner", apperrors.ErrConflict, contest.ID)
	}

	if _, err := s.userRepo.GetByID(submission.UserID); err != nil {
		return nil, fmt.Errorf("load winner user %s: %w", submission.UserID, err)
	}

	entry := &entity.WinnerEntry{
		ID:          entity.NewID(),
		ContestID:   contest.ID,
		WinnerID:    submission.UserID,
		WinnerName:  submission.UserName,
		WinnerPhoto: submission.UserPhoto,
		ContestName: contest.Name,
		ContestType: contest.ContestType,
		PrizeMoney:  contest.PrizeMoney,
	}

	if err := s.submissionRepo.PromoteWinner(submission, contest, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Конкурентное объявление выиграло гонку; если победила эта же
			// работа, для вызывающего результат тот же
			current, readErr := s.submissionRepo.GetByID(submissionID)
			if readErr == nil && current.IsDeclaredWinner() {
				return &WinnerDeclaration{Submission: current, AlreadyDeclared: true}, nil
			}
		}
		return nil, err
	}
	submission.IsWinner = entity.SubmissionWinner

	log.Printf("[SubmissionService] Победитель конкурса %s объявлен: работа %s, пользователь %s",
		contest.ID, submission.ID, submission.UserEmail)

	s.afterWinnerDeclared(submission, contest, entry)

	return &WinnerDeclaration{Submission: submission}, nil
}

// afterWinnerDeclared выполняет побочные эффекты объявления: сброс кеша
// ленты, письмо победителю, событие в websocket-ленту. Все они
// best-effort и не влияют на итог самой операции.
func (s *SubmissionService) afterWinnerDeclared(submission *entity.Submission, contest *entity.Contest, entry *entity.WinnerEntry) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(recentWinnersCacheKey); err != nil {
			log.Printf("[SubmissionService] Не удалось сбросить кеш ленты победителей: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastWinner(entry)
	}

	if s.emailService != nil {
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.emailService.SendWinnerCongratulations(sendCtx, submission.UserEmail, contest.Name, contest.PrizeMoney, entry.ID); err != nil {
				log.Printf("[SubmissionService] Не удалось отправить письмо победителю %s: %v", submission.UserEmail, err)
			}
		}()
	}
}
