package platformuser

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-calypso/internal/bootstrap"
	"go-calypso/internal/domain"
	platformusererrors "go-calypso/internal/platformuser/errors"
	"go-calypso/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=platform_user_service.go -destination=mock/platform_user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]PlatformUserResponse, error)
	GetByID(ctx context.Context, id string) (PlatformUserResponse, error)
	Create(ctx context.Context, req CreatePlatformUserRequest) (PlatformUserResponse, error)
	Update(ctx context.Context, id string, req UpdatePlatformUserRequest) (PlatformUserResponse, error)
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id string, req ChangePasswordRequest, requireCurrent bool) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	audit  bootstrap.AuditLogger
	cost   int
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, audit bootstrap.AuditLogger, logger ...*zap.Logger) Service {
	l := zap.L().Named("platformuser.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("platformuser.service")
	}
	if audit == nil {
		audit = bootstrap.NoopAuditLogger()
	}
	return &service{db: db, repo: repo, audit: audit, cost: bcrypt.DefaultCost, logger: l}
}

// HashPassword is shared with the seed command.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) GetAll(ctx context.Context) ([]PlatformUserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all platform users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	resp := make([]PlatformUserResponse, len(users))
	for i, u := range users {
		resp[i] = mapViewToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PlatformUserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PlatformUserResponse{}, platformusererrors.ErrInvalidPlatformUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PlatformUserResponse{}, mapRepositoryError(err)
	}
	return mapViewToResponse(*u), nil
}

// Create promotes an existing employee. The autoregister permission follows
// the role default unless the request sets it.
func (s *service) Create(ctx context.Context, req CreatePlatformUserRequest) (PlatformUserResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PlatformUserResponse{}, platformusererrors.ErrInvalidEmployeeID
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return PlatformUserResponse{}, platformusererrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create platform user begin tx failed", zap.Error(err))
		return PlatformUserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, employeeID.String())
	if err != nil {
		return PlatformUserResponse{}, err
	}
	if !exists {
		return PlatformUserResponse{}, platformusererrors.ErrEmployeeNotFound
	}
	if _, err := qtx.FindByEmployeeID(ctx, employeeID.String()); err == nil {
		s.logger.Warn("create platform user duplicate employee", zap.String("employee_id", employeeID.String()))
		return PlatformUserResponse{}, platformusererrors.ErrEmployeeAlreadyPlatformUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PlatformUserResponse{}, err
	}

	hashed, err := HashPassword(req.Password, s.cost)
	if err != nil {
		s.logger.Error("create platform user hash failed", zap.Error(err))
		return PlatformUserResponse{}, err
	}

	canManage := domain.DefaultAutoregisterPermission(role)
	if req.CanManageAutoregister != nil {
		canManage = *req.CanManageAutoregister
	}

	u := &PlatformUser{
		ID:                    uuid.New(),
		EmployeeID:            employeeID,
		Role:                  role.String(),
		PasswordHash:          hashed,
		CanManageAutoregister: canManage,
		IsActive:              true,
	}
	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Warn("create platform user persist failed", zap.String("request_id", rid), zap.Error(err))
		return PlatformUserResponse{}, mapRepositoryError(err)
	}

	view, err := qtx.FindByID(ctx, u.ID.String())
	if err != nil {
		return PlatformUserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create platform user commit failed", zap.Error(err))
		return PlatformUserResponse{}, err
	}

	s.logger.Info("create platform user success",
		zap.String("request_id", rid),
		zap.String("platform_user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapViewToResponse(*view), nil
}

// ensurePrimaryAdminRemains fails when u is the only active primary admin
// and the pending change would take that away.
func (s *service) ensurePrimaryAdminRemains(ctx context.Context, qtx Repository, u PlatformUser) error {
	if u.RoleValue() != domain.RolePrimaryAdmin || !u.IsActive {
		return nil
	}
	n, err := qtx.CountActiveByRole(ctx, domain.RolePrimaryAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return platformusererrors.ErrLastPrimaryAdmin
	}
	return nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePlatformUserRequest) (PlatformUserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PlatformUserResponse{}, platformusererrors.ErrInvalidPlatformUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update platform user begin tx failed", zap.Error(err))
		return PlatformUserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	view, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PlatformUserResponse{}, mapRepositoryError(err)
	}
	u := view.PlatformUser
	previousRole := u.Role

	newRole := u.RoleValue()
	if req.Role != nil {
		r, ok := domain.ParseRole(*req.Role)
		if !ok {
			return PlatformUserResponse{}, platformusererrors.ErrInvalidRole
		}
		newRole = r
	}
	newActive := u.IsActive
	if req.IsActive != nil {
		newActive = *req.IsActive
	}

	if newRole != domain.RolePrimaryAdmin || !newActive {
		if err := s.ensurePrimaryAdminRemains(ctx, qtx, u); err != nil {
			s.logger.Warn("update platform user blocked", zap.String("platform_user_id", id), zap.Error(err))
			return PlatformUserResponse{}, err
		}
	}

	if newRole.String() != u.Role {
		u.Role = newRole.String()
		u.CanManageAutoregister = domain.DefaultAutoregisterPermission(newRole)
	}
	if req.CanManageAutoregister != nil {
		u.CanManageAutoregister = *req.CanManageAutoregister
	}
	u.IsActive = newActive

	if err := qtx.Update(ctx, &u); err != nil {
		s.logger.Warn("update platform user persist failed", zap.String("platform_user_id", id), zap.Error(err))
		return PlatformUserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update platform user commit failed", zap.Error(err))
		return PlatformUserResponse{}, err
	}

	if previousRole != u.Role {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  bootstrap.AuditPlatformUserRole,
			Message: "platform user role changed",
			Meta: map[string]any{
				"platformUserId": id,
				"from":           previousRole,
				"to":             u.Role,
			},
		})
	}

	view.PlatformUser = u
	s.logger.Info("update platform user success", zap.String("platform_user_id", id))
	return mapViewToResponse(*view), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return platformusererrors.ErrInvalidPlatformUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete platform user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	view, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.ensurePrimaryAdminRemains(ctx, qtx, view.PlatformUser); err != nil {
		s.logger.Warn("delete platform user blocked", zap.String("platform_user_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete platform user commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete platform user success", zap.String("platform_user_id", id))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest, requireCurrent bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return platformusererrors.ErrInvalidPlatformUserID
	}

	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	u := view.PlatformUser

	if requireCurrent {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return platformusererrors.ErrWrongPassword
		}
	}

	hashed, err := HashPassword(req.NewPassword, s.cost)
	if err != nil {
		s.logger.Error("change password hash failed", zap.Error(err))
		return err
	}
	u.PasswordHash = hashed
	if err := s.repo.Update(ctx, &u); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("change password success", zap.String("platform_user_id", id))
	return nil
}

func mapViewToResponse(v PlatformUserView) PlatformUserResponse {
	return PlatformUserResponse{
		ID:                    v.ID.String(),
		EmployeeID:            v.EmployeeID.String(),
		FullName:              v.FullName,
		Identification:        v.Identification,
		Role:                  v.Role,
		CanManageAutoregister: v.CanManageAutoregister,
		IsActive:              v.IsActive,
		CreatedAt:             v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             v.UpdatedAt.Format(time.RFC3339),
	}
}
