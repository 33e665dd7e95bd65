package service

import (
	"errors"
	"log"
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

const (
	recentWinnersCacheKey = "winners:recent"
	recentWinnersCacheTTL = 30 * time.Second
	recentWinnersLimit    = 3
)

// WinnerService отдает публичную ленту недавних победителей
type WinnerService struct {
	winnerRepo repository.WinnerRepository
	cacheRepo  repository.CacheRepository
}

// NewWinnerService создает новый сервис ленты победителей
func NewWinnerService(winnerRepo repository.WinnerRepository, cacheRepo repository.CacheRepository) *WinnerService {
	return &WinnerService{
		winnerRepo: winnerRepo,
		cacheRepo:  cacheRepo,
	}
}

// GetRecentWinners возвращает последних победителей, новые первыми.
// Результат кешируется на короткий срок; кеш сбрасывается при каждом
// объявлении победителя.
func (s *WinnerService) GetRecentWinners() ([]entity.WinnerEntry, error) {
	if s.cacheRepo != nil {
		var cached []entity.WinnerEntry
		err := s.cacheRepo.GetJSON(recentWinnersCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[WinnerService] Ошибка чтения кеша ленты победителей: %v", err)
		}
	}

	entries, err := s.winnerRepo.ListRecent(recentWinnersLimit)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(recentWinnersCacheKey, entries, recentWinnersCacheTTL); err != nil {
			log.Printf("[WinnerService] Ошибка записи кеша ленты победителей: %v", err)
		}
	}
	return entries, nil
}
