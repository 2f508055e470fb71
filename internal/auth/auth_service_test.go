package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/auth"
	autherrors "go-leave/internal/auth/errors"
	authMock "go-leave/internal/auth/mock"
	"go-leave/internal/employee"
	employeeMock "go-leave/internal/employee/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockEmployeeRepo := employeeMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo, mockEmployeeRepo, testSecret, 15*time.Minute)
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	userID := uuid.New()
	employeeID := uuid.New()
	mockUser := &auth.User{
		ID:       userID,
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: string(pw),
		Role:     auth.RoleEmployee,
		IsActive: true,
	}

	t.Run("Success Login", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)
		mockEmployeeRepo.EXPECT().
			FindByUserID(ctx, userID.String()).
			Return(&employee.Employee{ID: employeeID}, nil)

		resp, err := service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.Equal(t, employeeID.String(), resp.User.EmployeeID)

		claims := parseClaims(t, resp.AccessToken)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, employeeID.String(), claims["employee_id"])
		assert.Equal(t, auth.RoleEmployee, claims["role"])
		assert.Equal(t, "access", claims["typ"])
		assert.Equal(t, "refresh", parseClaims(t, resp.RefreshToken)["typ"])
	})

	t.Run("User Without Employee Record", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)
		mockEmployeeRepo.EXPECT().
			FindByUserID(ctx, userID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		resp, err := service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.Empty(t, resp.User.EmployeeID)
		assert.Equal(t, "", parseClaims(t, resp.AccessToken)["employee_id"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)

		_, err := service.Login(ctx, mockUser.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login(ctx, "ghost@example.com", password)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive User", func(t *testing.T) {
		inactive := *mockUser
		inactive.IsActive = false
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(&inactive, nil)

		_, err := service.Login(ctx, mockUser.Email, password)
		assert.ErrorIs(t, err, autherrors.ErrInactiveUser)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo, nil, testSecret, 15*time.Minute)
	ctx := context.Background()

	pw, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &auth.User{ID: uuid.New(), Email: "a@example.com", Password: string(pw), Role: auth.RoleAdmin, IsActive: true}

	mockRepo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
	tokens, err := service.Login(ctx, user.Email, "password123")
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)

		resp, err := service.RefreshToken(ctx, tokens.RefreshToken)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, resp.User.Role)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		_, err := service.RefreshToken(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := service.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockEmployeeRepo := employeeMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo, mockEmployeeRepo, testSecret, time.Minute)
	ctx := context.Background()

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetMe(ctx, id.String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("Employee Lookup Failure", func(t *testing.T) {
		id := uuid.New()
		dbErr := errors.New("db down")
		mockRepo.EXPECT().GetByID(ctx, id).Return(&auth.User{ID: id}, nil)
		mockEmployeeRepo.EXPECT().FindByUserID(ctx, id.String()).Return(nil, dbErr)

		_, err := service.GetMe(ctx, id.String())
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := auth.NewService(mockRepo, nil, testSecret, time.Minute)
	ctx := context.Background()

	t.Run("Success Register Defaults To Employee", func(t *testing.T) {
		req := auth.RegisterRequest{Email: "new@example.com", Name: " New User ", Password: "password123"}

		mockRepo.EXPECT().GetByEmail(ctx, req.Email).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)))
			assert.True(t, u.IsActive)
			return nil
		})

		resp, err := service.Register(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleEmployee, resp.Role)
		assert.Equal(t, "New User", resp.Name)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		req := auth.RegisterRequest{Email: "dup@example.com", Name: "Dup", Password: "password123", Role: auth.RoleManager}
		mockRepo.EXPECT().GetByEmail(ctx, req.Email).Return(&auth.User{}, nil)

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterRequest{Email: "x@example.com", Role: "ROOT"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})
}
