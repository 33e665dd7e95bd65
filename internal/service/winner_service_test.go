package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ============================================================================
// Моки для WinnerService
// ============================================================================

// MockWinnerRepoForWinnerService реализует repository.WinnerRepository
type MockWinnerRepoForWinnerService struct {
	mock.Mock
}

func (m *MockWinnerRepoForWinnerService) ListRecent(limit int) ([]entity.WinnerEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WinnerEntry), args.Error(1)
}

// MockCacheRepoForWinnerService реализует repository.CacheRepository
type MockCacheRepoForWinnerService struct {
	mock.Mock
}

func (m *MockCacheRepoForWinnerService) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepoForWinnerService) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepoForWinnerService) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	if args.Error(0) == nil {
		// Подкладываем закешированное значение в dest, как это делает CacheRepo
		data, _ := json.Marshal(args.Get(1))
		_ = json.Unmarshal(data, dest)
	}
	return args.Error(0)
}

// ============================================================================
// Тесты для WinnerService
// ============================================================================

func TestWinnerService_GetRecentWinners_CacheMiss(t *testing.T) {
	// Arrange
	mockWinnerRepo := new(MockWinnerRepoForWinnerService)
	mockCacheRepo := new(MockCacheRepoForWinnerService)

	entries := []entity.WinnerEntry{
		{ID: "64f1a2b3c4d5e6f708192aaa", WinnerName: "Alice"},
		{ID: "64f1a2b3c4d5e6f708192bbb", WinnerName: "Bob"},
	}

	mockCacheRepo.On("GetJSON", recentWinnersCacheKey, mock.Anything).
		Return(apperrors.ErrNotFound, nil)
	mockWinnerRepo.On("ListRecent", recentWinnersLimit).Return(entries, nil)
	mockCacheRepo.On("SetJSON", recentWinnersCacheKey, entries, recentWinnersCacheTTL).Return(nil)

	svc := NewWinnerService(mockWinnerRepo, mockCacheRepo)

	// Act
	winners, err := svc.GetRecentWinners()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entries, winners)
	mockWinnerRepo.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}

func TestWinnerService_GetRecentWinners_CacheHit(t *testing.T) {
	// Попадание в кеш не трогает хранилище
	mockWinnerRepo := new(MockWinnerRepoForWinnerService)
	mockCacheRepo := new(MockCacheRepoForWinnerService)

	cached := []entity.WinnerEntry{{ID: "64f1a2b3c4d5e6f708192aaa", WinnerName: "Alice"}}
	mockCacheRepo.On("GetJSON", recentWinnersCacheKey, mock.Anything).Return(nil, cached)

	svc := NewWinnerService(mockWinnerRepo, mockCacheRepo)

	winners, err := svc.GetRecentWinners()

	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Alice", winners[0].WinnerName)
	mockWinnerRepo.AssertNotCalled(t, "ListRecent", mock.Anything)
}

func TestWinnerService_GetRecentWinners_NoCache(t *testing.T) {
	// Сервис работает и без кеша
	mockWinnerRepo := new(MockWinnerRepoForWinnerService)
	mockWinnerRepo.On("ListRecent", recentWinnersLimit).Return([]entity.WinnerEntry{}, nil)

	svc := NewWinnerService(mockWinnerRepo, nil)

	winners, err := svc.GetRecentWinners()

	require.NoError(t, err)
	assert.Empty(t, winners)
}
