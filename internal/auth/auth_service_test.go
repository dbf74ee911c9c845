package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-calypso/internal/auth"
	autherrors "go-calypso/internal/auth/errors"
	"go-calypso/internal/platformuser"
	"go-calypso/internal/shared/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const secret = "test-secret"

type fakeFinder struct {
	byIdentification map[string]*platformuser.PlatformUserView
	err              error
}

func (f *fakeFinder) FindByIdentification(_ context.Context, identification string) (*platformuser.PlatformUserView, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byIdentification[identification]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFinder) FindByID(_ context.Context, id string) (*platformuser.PlatformUserView, error) {
	for _, u := range f.byIdentification {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newUser(t *testing.T, identification, password, role string, active bool) *platformuser.PlatformUserView {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &platformuser.PlatformUserView{
		PlatformUser: platformuser.PlatformUser{
			ID:                    uuid.New(),
			EmployeeID:            uuid.New(),
			Role:                  role,
			PasswordHash:          string(hash),
			CanManageAutoregister: role != "STANDARD",
			IsActive:              active,
		},
		FullName:       "Marta Díaz",
		Identification: identification,
	}
}

func TestAuthService_Login(t *testing.T) {
	admin := newUser(t, "1001", "correct-horse", "ADMIN", true)
	inactive := newUser(t, "1002", "correct-horse", "STANDARD", false)
	finder := &fakeFinder{byIdentification: map[string]*platformuser.PlatformUserView{
		"1001": admin,
		"1002": inactive,
	}}
	svc := auth.NewService(finder, secret, time.Hour)

	t.Run("success issues a token with role claims", func(t *testing.T) {
		raw, resp, err := svc.Login(context.Background(), " 1001 ", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.True(t, resp.CanManageAutoregister)

		claims, err := token.Parse(secret, raw)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.String(), claims.UserID)
		assert.Equal(t, admin.EmployeeID.String(), claims.EmployeeID)
		assert.True(t, claims.CanManageAutoregister)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "1001", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown identification", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "9999", "correct-horse")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "1002", "correct-horse")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		broken := auth.NewService(&fakeFinder{err: errors.New("db down")}, secret, time.Hour)
		_, _, err := broken.Login(context.Background(), "1001", "correct-horse")
		assert.EqualError(t, err, "db down")
	})

	t.Run("missing secret", func(t *testing.T) {
		noSecret := auth.NewService(finder, "", time.Hour)
		_, _, err := noSecret.Login(context.Background(), "1001", "correct-horse")
		assert.ErrorIs(t, err, autherrors.ErrTokenGenerationFailed)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	active := newUser(t, "1001", "pw-123456", "PRIMARY_ADMIN", true)
	inactive := newUser(t, "1002", "pw-123456", "STANDARD", false)
	svc := auth.NewService(&fakeFinder{byIdentification: map[string]*platformuser.PlatformUserView{
		"1001": active,
		"1002": inactive,
	}}, secret, time.Hour)

	resp, err := svc.GetMe(context.Background(), active.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "1001", resp.Identification)

	_, err = svc.GetMe(context.Background(), inactive.ID.String())
	assert.ErrorIs(t, err, autherrors.ErrUserInactive)

	_, err = svc.GetMe(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
