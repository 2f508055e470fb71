package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const RefreshTokenTTL = 7 * 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	secret       []byte
	accessTTL    time.Duration
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, jwtSecret string, accessTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		secret:       []byte(jwtSecret),
		accessTTL:    accessTTL,
		logger:       l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login user lookup failed", zap.Error(err))
		}
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("user_id", user.ID.String()))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrInactiveUser
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenResponse{}, err
	}
	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrInactiveUser
	}

	return s.issueTokens(ctx, user)
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	employeeID, err := s.linkedEmployeeID(ctx, u.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	return mapToResponse(u, employeeID), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = RoleEmployee
	}
	if !IsValidRole(role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register email lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Email:    req.Email,
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", user.ID.String()), zap.String("role", role))
	return mapToResponse(user, ""), nil
}

func (s *service) issueTokens(ctx context.Context, user *User) (TokenResponse, error) {
	employeeID, err := s.linkedEmployeeID(ctx, user.ID)
	if err != nil {
		return TokenResponse{}, err
	}

	access, err := s.generateToken(user, employeeID, "access", s.accessTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, employeeID, "refresh", RefreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		User:         mapToResponse(user, employeeID),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// linkedEmployeeID returns "" when the user has no employee record.
func (s *service) linkedEmployeeID(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.employeeRepo == nil {
		return "", nil
	}
	empl, err := s.employeeRepo.FindByUserID(ctx, userID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		s.logger.Error("linked employee lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", err
	}
	return empl.ID.String(), nil
}

func (s *service) generateToken(user *User, employeeID, typ string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"role":        user.Role,
		"typ":         typ,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func mapToResponse(u *User, employeeID string) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		EmployeeID: employeeID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
	}
}
