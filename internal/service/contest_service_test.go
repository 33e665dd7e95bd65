package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ============================================================================
// Моки для ContestService
// ============================================================================

// MockContestRepoForContestService реализует repository.ContestRepository
type MockContestRepoForContestService struct {
	mock.Mock
}

func (m *MockContestRepoForContestService) Create(contest *entity.Contest) error {
	args := m.Called(contest)
	return args.Error(0)
}

func (m *MockContestRepoForContestService) GetByID(id string) (*entity.Contest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contest), args.Error(1)
}

func (m *MockContestRepoForContestService) UpdateFields(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockContestRepoForContestService) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockContestRepoForContestService) Delete(id string) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContestRepoForContestService) ListAll() ([]entity.Contest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contest), args.Error(1)
}

func (m *MockContestRepoForContestService) ListApproved(search string, limit int) ([]entity.Contest, error) {
	args := m.Called(search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contest), args.Error(1)
}

func (m *MockContestRepoForContestService) ListByCreator(creatorEmail string) ([]entity.Contest, error) {
	args := m.Called(creatorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contest), args.Error(1)
}

func (m *MockContestRepoForContestService) ListByWinner(winnerID string) ([]entity.Contest, error) {
	args := m.Called(winnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contest), args.Error(1)
}

const ctstID = "64f1a2b3c4d5e6f708192c4d"

// ============================================================================
// Тесты для ContestService
// ============================================================================

func TestContestService_Create_DefaultsToPending(t *testing.T) {
	// Arrange
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("Create", mock.Anything).Return(nil)

	svc := NewContestService(mockContestRepo)

	// Act
	contest, err := svc.Create("creator@x.com", CreateContestInput{
		Name:        "Logo contest",
		ContestType: "art",
		EntryPrice:  10,
		PrizeMoney:  100,
		Deadline:    time.Now().Add(72 * time.Hour),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.ContestStatusPending, contest.Status)
	assert.Equal(t, "creator@x.com", contest.CreatorEmail)
	assert.EqualValues(t, 0, contest.ParticipantsCount)
	mockContestRepo.AssertExpectations(t)
}

func TestContestService_Create_RejectsNegativePrice(t *testing.T) {
	svc := NewContestService(new(MockContestRepoForContestService))

	_, err := svc.Create("creator@x.com", CreateContestInput{Name: "Logo contest", EntryPrice: -1})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestContestService_FindBySearch_ByID(t *testing.T) {
	// 24-символьный hex трактуется как поиск по ID
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("GetByID", ctstID).Return(&entity.Contest{ID: ctstID}, nil)

	svc := NewContestService(mockContestRepo)

	contests, err := svc.FindBySearch(ctstID)

	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, ctstID, contests[0].ID)
	mockContestRepo.AssertNotCalled(t, "ListByCreator", mock.Anything)
}

func TestContestService_FindBySearch_ByCreatorEmail(t *testing.T) {
	// Любая другая строка трактуется как email создателя
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("ListByCreator", "creator@x.com").
		Return([]entity.Contest{{ID: ctstID, CreatorEmail: "creator@x.com"}}, nil)

	svc := NewContestService(mockContestRepo)

	contests, err := svc.FindBySearch("creator@x.com")

	require.NoError(t, err)
	require.Len(t, contests, 1)
	mockContestRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestContestService_FindBySearch_MissingIDYieldsEmpty(t *testing.T) {
	// Валидный, но несуществующий ID — пустая выборка, не ошибка
	mockContestRepo := new(MockContestRepoForContestService)
	missingID := "aaaaaaaaaaaaaaaaaaaaaaaa"
	mockContestRepo.On("GetByID", missingID).Return(nil, apperrors.ErrNotFound)

	svc := NewContestService(mockContestRepo)

	contests, err := svc.FindBySearch(missingID)

	require.NoError(t, err)
	assert.Empty(t, contests)
	mockContestRepo.AssertNotCalled(t, "ListByCreator", mock.Anything)
}

func TestContestService_ListApproved_ForwardsTypeFilterAndLimit(t *testing.T) {
	// Подстрока фильтрует по типу конкурса, limit доходит до хранилища
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("ListApproved", "art", 5).
		Return([]entity.Contest{{ID: ctstID, ContestType: "Art", Status: entity.ContestStatusApproved}}, nil)

	svc := NewContestService(mockContestRepo)

	contests, err := svc.ListApproved("art", 5)

	require.NoError(t, err)
	require.Len(t, contests, 1)
	mockContestRepo.AssertExpectations(t)
}

func TestContestService_ListApproved_RejectsNegativeLimit(t *testing.T) {
	mockContestRepo := new(MockContestRepoForContestService)

	svc := NewContestService(mockContestRepo)

	_, err := svc.ListApproved("", -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockContestRepo.AssertNotCalled(t, "ListApproved", mock.Anything, mock.Anything)
}

func TestContestService_Delete_IdempotentWhenMissing(t *testing.T) {
	// Удаление несуществующего конкурса — успешный no-op
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("GetByID", ctstID).Return(nil, apperrors.ErrNotFound)

	svc := NewContestService(mockContestRepo)

	err := svc.Delete(ctstID, "creator@x.com", entity.RoleCreator)

	require.NoError(t, err)
	mockContestRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestContestService_Delete_ForbiddenForStranger(t *testing.T) {
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("GetByID", ctstID).
		Return(&entity.Contest{ID: ctstID, CreatorEmail: "creator@x.com"}, nil)

	svc := NewContestService(mockContestRepo)

	err := svc.Delete(ctstID, "other@x.com", entity.RoleCreator)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockContestRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestContestService_Edit_AdminBypassesOwnership(t *testing.T) {
	mockContestRepo := new(MockContestRepoForContestService)
	contest := &entity.Contest{ID: ctstID, CreatorEmail: "creator@x.com", Name: "Old name"}

	mockContestRepo.On("GetByID", ctstID).Return(contest, nil)
	mockContestRepo.On("UpdateFields", ctstID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["name"] == "New name"
	})).Return(nil)

	svc := NewContestService(mockContestRepo)

	name := "New name"
	_, err := svc.Edit(ctstID, "admin@x.com", entity.RoleAdmin, EditContestInput{Name: &name})

	require.NoError(t, err)
	mockContestRepo.AssertExpectations(t)
}

func TestContestService_Edit_ForbiddenForStranger(t *testing.T) {
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("GetByID", ctstID).
		Return(&entity.Contest{ID: ctstID, CreatorEmail: "creator@x.com"}, nil)

	svc := NewContestService(mockContestRepo)

	name := "New name"
	_, err := svc.Edit(ctstID, "other@x.com", entity.RoleCreator, EditContestInput{Name: &name})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockContestRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestContestService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewContestService(new(MockContestRepoForContestService))

	err := svc.SetStatus(ctstID, "archived")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestContestService_SetStatus_Approves(t *testing.T) {
	mockContestRepo := new(MockContestRepoForContestService)
	mockContestRepo.On("UpdateStatus", ctstID, entity.ContestStatusApproved).Return(nil)

	svc := NewContestService(mockContestRepo)

	err := svc.SetStatus(ctstID, entity.ContestStatusApproved)

	require.NoError(t, err)
	mockContestRepo.AssertExpectations(t)
}
