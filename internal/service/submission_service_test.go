package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ============================================================================
// Моки для SubmissionService
// ============================================================================

// MockSubmissionRepoForSubmissionService реализует repository.SubmissionRepository
type MockSubmissionRepoForSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionRepoForSubmissionService) Create(submission *entity.Submission) error {
	args := m.Called(submission)
	return args.Error(0)
}

func (m *MockSubmissionRepoForSubmissionService) GetByID(id string) (*entity.Submission, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepoForSubmissionService) ListByContest(contestID string) ([]entity.Submission, error) {
	args := m.Called(contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepoForSubmissionService) FindByUserAndContest(userID, contestID string) (*entity.Submission, error) {
	args := m.Called(userID, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepoForSubmissionService) PromoteWinner(submission *entity.Submission, contest *entity.Contest, entry *entity.WinnerEntry) error {
	args := m.Called(submission, contest, entry)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные фикстуры
// ============================================================================

const (
	subID     = "64f1a2b3c4d5e6f708192aaa"
	subUserID = "64f1a2b3c4d5e6f708192bbb"
	subCtstID = "64f1a2b3c4d5e6f708192ccc"
)

func testSubmission() *entity.Submission {
	return &entity.Submission{
		ID:        subID,
		ContestID: subCtstID,
		UserID:    subUserID,
		UserEmail: "alice@x.com",
		UserName:  "Alice",
		TaskURL:   "https://example.com/work",
	}
}

func testSubmissionContest() *entity.Contest {
	return &entity.Contest{
		ID:           subCtstID,
		CreatorEmail: "creator@x.com",
		Name:         "Logo contest",
		ContestType:  "art",
		PrizeMoney:   100,
		Status:       entity.ContestStatusApproved,
	}
}

func newSubmissionServiceForTest(
	submissionRepo *MockSubmissionRepoForSubmissionService,
	contestRepo *MockContestRepoForPaymentService,
	userRepo *MockUserRepoForPaymentService,
) *SubmissionService {
	// Кеш, почта и websocket-хаб в этих тестах не участвуют
	return NewSubmissionService(submissionRepo, contestRepo, userRepo, nil, nil, nil)
}

// ============================================================================
// Тесты для SubmissionService.DeclareWinner
// ============================================================================

func TestSubmissionService_DeclareWinner_Success(t *testing.T) {
	// Arrange
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	submission := testSubmission()
	contest := testSubmissionContest()

	mockSubmissionRepo.On("GetByID", subID).Return(submission, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)
	mockUserRepo.On("GetByID", subUserID).Return(&entity.User{ID: subUserID, Email: "alice@x.com"}, nil)
	mockSubmissionRepo.On("PromoteWinner", submission, contest, mock.Anything).Return(nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	// Act: объявляет создатель конкурса
	declaration, err := svc.DeclareWinner(context.Background(), subID, "creator@x.com", entity.RoleCreator)

	// Assert
	require.NoError(t, err)
	assert.False(t, declaration.AlreadyDeclared)
	assert.Equal(t, entity.SubmissionWinner, declaration.Submission.IsWinner)

	// Запись в ленту наследует данные работы и конкурса
	entry := mockSubmissionRepo.Calls[1].Arguments.Get(2).(*entity.WinnerEntry)
	assert.Equal(t, subUserID, entry.WinnerID)
	assert.Equal(t, contest.Name, entry.ContestName)
	assert.Equal(t, contest.PrizeMoney, entry.PrizeMoney)

	mockSubmissionRepo.AssertExpectations(t)
}

func TestSubmissionService_DeclareWinner_RepeatIsNoOp(t *testing.T) {
	// Повторное объявление той же работы — успешный no-op без записи
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	submission := testSubmission()
	submission.IsWinner = entity.SubmissionWinner
	contest := testSubmissionContest()
	contest.WinnerID = subUserID

	mockSubmissionRepo.On("GetByID", subID).Return(submission, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	declaration, err := svc.DeclareWinner(context.Background(), subID, "creator@x.com", entity.RoleCreator)

	require.NoError(t, err)
	assert.True(t, declaration.AlreadyDeclared)
	mockSubmissionRepo.AssertNotCalled(t, "PromoteWinner", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionService_DeclareWinner_ContestAlreadyHasWinner(t *testing.T) {
	// Вторая работа в конкурсе с победителем — конфликт, не no-op
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	submission := testSubmission()
	contest := testSubmissionContest()
	contest.WinnerID = "64f1a2b3c4d5e6f708192ddd"

	mockSubmissionRepo.On("GetByID", subID).Return(submission, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	_, err := svc.DeclareWinner(context.Background(), subID, "creator@x.com", entity.RoleCreator)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockSubmissionRepo.AssertNotCalled(t, "PromoteWinner", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionService_DeclareWinner_ForbiddenForStranger(t *testing.T) {
	// Объявлять может только создатель конкурса или админ
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	mockSubmissionRepo.On("GetByID", subID).Return(testSubmission(), nil)
	mockContestRepo.On("GetByID", subCtstID).Return(testSubmissionContest(), nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	_, err := svc.DeclareWinner(context.Background(), subID, "other@x.com", entity.RoleCreator)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSubmissionService_DeclareWinner_AdminAllowed(t *testing.T) {
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	submission := testSubmission()
	contest := testSubmissionContest()

	mockSubmissionRepo.On("GetByID", subID).Return(submission, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)
	mockUserRepo.On("GetByID", subUserID).Return(&entity.User{ID: subUserID}, nil)
	mockSubmissionRepo.On("PromoteWinner", submission, contest, mock.Anything).Return(nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	declaration, err := svc.DeclareWinner(context.Background(), subID, "admin@x.com", entity.RoleAdmin)

	require.NoError(t, err)
	assert.False(t, declaration.AlreadyDeclared)
}

// ============================================================================
// Тесты для SubmissionService.Submit и HasSubmitted
// ============================================================================

func TestSubmissionService_Submit_DenormalizesUserAndContest(t *testing.T) {
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	contest := testSubmissionContest()
	user := &entity.User{ID: subUserID, Email: "alice@x.com", DisplayName: "Alice", PhotoURL: "https://x/a.png"}

	mockUserRepo.On("GetByEmail", "alice@x.com").Return(user, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)
	mockSubmissionRepo.On("Create", mock.Anything).Return(nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	submission, err := svc.Submit("alice@x.com", SubmitInput{
		ContestID: subCtstID,
		TaskURL:   "https://example.com/work",
	})

	require.NoError(t, err)
	assert.Equal(t, contest.Name, submission.ContestName)
	assert.Equal(t, user.DisplayName, submission.UserName)
	assert.Empty(t, submission.IsWinner)
}

func TestSubmissionService_Submit_RejectedForPendingContest(t *testing.T) {
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)
	mockContestRepo := new(MockContestRepoForPaymentService)
	mockUserRepo := new(MockUserRepoForPaymentService)

	contest := testSubmissionContest()
	contest.Status = entity.ContestStatusPending

	mockUserRepo.On("GetByEmail", "alice@x.com").Return(&entity.User{ID: subUserID, Email: "alice@x.com"}, nil)
	mockContestRepo.On("GetByID", subCtstID).Return(contest, nil)

	svc := newSubmissionServiceForTest(mockSubmissionRepo, mockContestRepo, mockUserRepo)

	_, err := svc.Submit("alice@x.com", SubmitInput{ContestID: subCtstID, TaskURL: "https://example.com/work"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockSubmissionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmissionService_HasSubmitted(t *testing.T) {
	mockSubmissionRepo := new(MockSubmissionRepoForSubmissionService)

	mockSubmissionRepo.On("FindByUserAndContest", subUserID, subCtstID).
		Return(testSubmission(), nil).Once()
	mockSubmissionRepo.On("FindByUserAndContest", subUserID, subCtstID).
		Return(nil, apperrors.ErrNotFound).Once()

	svc := newSubmissionServiceForTest(mockSubmissionRepo, nil, nil)

	submitted, err := svc.HasSubmitted(subUserID, subCtstID)
	require.NoError(t, err)
	assert.True(t, submitted)

	submitted, err = svc.HasSubmitted(subUserID, subCtstID)
	require.NoError(t, err)
	assert.False(t, submitted)
}

func TestSubmissionService_HasSubmitted_InvalidIDs(t *testing.T) {
	svc := newSubmissionServiceForTest(new(MockSubmissionRepoForSubmissionService), nil, nil)

	_, err := svc.HasSubmitted("not-an-id", subCtstID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
