package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ============================================================================
// Моки для UserService
// ============================================================================

// MockUserRepoForUserService реализует repository.UserRepository
type MockUserRepoForUserService struct {
	mock.Mock
}

func (m *MockUserRepoForUserService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForUserService) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForUserService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForUserService) UpdateProfile(email string, updates map[string]interface{}) error {
	args := m.Called(email, updates)
	return args.Error(0)
}

func (m *MockUserRepoForUserService) UpdateRole(id string, role string) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func (m *MockUserRepoForUserService) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// ============================================================================
// Тесты для UserService
// ============================================================================

func TestUserService_Register_DefaultsToUserRole(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForUserService)
	mockUserRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "alice@x.com" && u.Role == entity.RoleUser
	})).Return(nil)

	svc := NewUserService(mockUserRepo)

	// Act: email нормализуется к нижнему регистру
	user, err := svc.Register(RegisterUserInput{Email: "  Alice@X.com "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmailConflict(t *testing.T) {
	mockUserRepo := new(MockUserRepoForUserService)
	mockUserRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

	svc := NewUserService(mockUserRepo)

	_, err := svc.Register(RegisterUserInput{Email: "alice@x.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserService_Register_RejectsInvalidEmail(t *testing.T) {
	svc := NewUserService(new(MockUserRepoForUserService))

	_, err := svc.Register(RegisterUserInput{Email: "not-an-email"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_GetRole_DefaultsForUnknownEmail(t *testing.T) {
	// Роль незарегистрированного email — user, а не ошибка
	mockUserRepo := new(MockUserRepoForUserService)
	mockUserRepo.On("GetByEmail", "ghost@x.com").Return(nil, apperrors.ErrNotFound)

	svc := NewUserService(mockUserRepo)

	role, err := svc.GetRole("ghost@x.com")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, role)
}

func TestUserService_GetRole_ReturnsStoredRole(t *testing.T) {
	mockUserRepo := new(MockUserRepoForUserService)
	mockUserRepo.On("GetByEmail", "admin@x.com").
		Return(&entity.User{Email: "admin@x.com", Role: entity.RoleAdmin}, nil)

	svc := NewUserService(mockUserRepo)

	role, err := svc.GetRole("admin@x.com")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestUserService_UpdateProfile_SelfOnly(t *testing.T) {
	svc := NewUserService(new(MockUserRepoForUserService))

	name := "Mallory"
	_, err := svc.UpdateProfile("alice@x.com", "mallory@x.com", ProfileUpdateInput{DisplayName: &name})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUserService_UpdateRole_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(new(MockUserRepoForUserService))

	err := svc.UpdateRole("64f1a2b3c4d5e6f708192a3b", "superadmin")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_UpdateRole_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepoForUserService)
	mockUserRepo.On("UpdateRole", "64f1a2b3c4d5e6f708192a3b", entity.RoleCreator).Return(nil)

	svc := NewUserService(mockUserRepo)

	err := svc.UpdateRole("64f1a2b3c4d5e6f708192a3b", entity.RoleCreator)

	require.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}
