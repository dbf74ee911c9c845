package employee

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"time"

	"go-calypso/internal/bootstrap"
	"go-calypso/internal/branch"
	employeeerrors "go-calypso/internal/employee/errors"
	"go-calypso/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BranchReader is the slice of branch.Repository the directory needs.
type BranchReader interface {
	FindAll(ctx context.Context) ([]branch.Branch, error)
	FindByID(ctx context.Context, id string) (*branch.Branch, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, search string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, file io.Reader) (ImportResult, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	branches BranchReader
	audit    bootstrap.AuditLogger
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	branches BranchReader,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if audit == nil {
		audit = bootstrap.NoopAuditLogger()
	}
	return &service{
		db:       db,
		repo:     repo,
		branches: branches,
		audit:    audit,
		logger:   l,
	}
}

func (s *service) ensureBranch(ctx context.Context, id string) (uuid.UUID, error) {
	branchID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidBranchID
	}
	if _, err := s.branches.FindByID(ctx, branchID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, employeeerrors.ErrBranchNotFound
		}
		return uuid.Nil, err
	}
	return branchID, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("identification", req.Identification),
		zap.String("branch_id", req.BranchID),
	)

	branchID, err := s.ensureBranch(ctx, req.BranchID)
	if err != nil {
		s.logger.Warn("create employee branch lookup failed", zap.String("branch_id", req.BranchID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		Identification: strings.TrimSpace(req.Identification),
		FullName:       strings.TrimSpace(req.FullName),
		JobTitle:       strings.TrimSpace(req.JobTitle),
		BranchID:       branchID,
	}
	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Warn("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, search string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, search)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	branchID, err := s.ensureBranch(ctx, req.BranchID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Identification = strings.TrimSpace(req.Identification)
	empl.FullName = strings.TrimSpace(req.FullName)
	empl.JobTitle = strings.TrimSpace(req.JobTitle)
	empl.BranchID = branchID

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Warn("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// Delete refuses while the employee hosts any visit or owns a platform user.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	hosted, err := qtx.CountHostedVisits(ctx, id)
	if err != nil {
		s.logger.Error("delete employee count visits failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if hosted > 0 {
		s.logger.Warn("delete employee blocked by visits", zap.String("employee_id", id), zap.Int64("visits", hosted))
		return employeeerrors.ErrEmployeeIsHost
	}

	hasUser, err := qtx.HasPlatformUser(ctx, id)
	if err != nil {
		s.logger.Error("delete employee platform user lookup failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if hasUser {
		s.logger.Warn("delete employee blocked by platform user", zap.String("employee_id", id))
		return employeeerrors.ErrEmployeeIsPlatformUser
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		Identification: e.Identification,
		FullName:       e.FullName,
		JobTitle:       e.JobTitle,
		BranchID:       e.BranchID.String(),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
