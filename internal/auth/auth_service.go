package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-calypso/internal/auth/errors"
	"go-calypso/internal/platformuser"
	"go-calypso/internal/shared/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserFinder is the slice of platformuser.Repository used to sign users in.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*platformuser.PlatformUserView, error)
	FindByIdentification(ctx context.Context, identification string) (*platformuser.PlatformUserView, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, identification, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	TokenTTL() time.Duration
}

type service struct {
	users  UserFinder
	secret string
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(users UserFinder, secret string, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, secret: secret, ttl: ttl, logger: l}
}

func (s *service) TokenTTL() time.Duration {
	return s.ttl
}

// Login checks the password before the active flag so an inactive account is
// only revealed to someone holding its credentials.
func (s *service) Login(ctx context.Context, identification, password string) (string, AuthResponse, error) {
	identification = strings.TrimSpace(identification)

	u, err := s.users.FindByIdentification(ctx, identification)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return "", AuthResponse{}, err
		}
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login wrong password", zap.String("platform_user_id", u.ID.String()))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.Warn("login inactive user", zap.String("platform_user_id", u.ID.String()))
		return "", AuthResponse{}, autherrors.ErrUserInactive
	}

	accessToken, err := token.Issue(s.secret, token.Claims{
		UserID:                u.ID.String(),
		EmployeeID:            u.EmployeeID.String(),
		Role:                  u.Role,
		CanManageAutoregister: u.CanManageAutoregister,
	}, s.ttl)
	if err != nil {
		s.logger.Error("login token issue failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("platform_user_id", u.ID.String()), zap.String("role", u.Role))
	return accessToken, mapToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	if !u.IsActive {
		return AuthResponse{}, autherrors.ErrUserInactive
	}
	return mapToResponse(*u), nil
}

func mapToResponse(u platformuser.PlatformUserView) AuthResponse {
	return AuthResponse{
		ID:                    u.ID.String(),
		EmployeeID:            u.EmployeeID.String(),
		FullName:              u.FullName,
		Identification:        u.Identification,
		Role:                  u.Role,
		CanManageAutoregister: u.CanManageAutoregister,
	}
}
