package branch

import (
	"context"
	"database/sql"
	"strings"
	"time"

	brancherrors "go-calypso/internal/branch/errors"
	"go-calypso/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetAll(ctx context.Context) ([]BranchResponse, error)
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	b := &Branch{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Warn("create branch persist failed",
			zap.String("request_id", rid),
			zap.String("name", b.Name),
			zap.Error(err),
		)
		return BranchResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create branch success",
		zap.String("request_id", rid),
		zap.String("branch_id", b.ID.String()),
	)
	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all branches failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(branches), nil
}

func (s *service) GetByID(ctx context.Context, id string) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update branch begin tx failed", zap.Error(err))
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}

	b.Name = strings.TrimSpace(req.Name)
	b.Address = strings.TrimSpace(req.Address)
	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Warn("update branch persist failed", zap.String("branch_id", id), zap.Error(err))
		return BranchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update branch commit failed", zap.String("branch_id", id), zap.Error(err))
		return BranchResponse{}, err
	}

	s.logger.Info("update branch success", zap.String("branch_id", id))
	return mapToResponse(*b), nil
}

// Delete refuses while any employee still references the branch.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return brancherrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete branch begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	n, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("delete branch count employees failed", zap.String("branch_id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		s.logger.Warn("delete branch blocked by employees",
			zap.String("branch_id", id),
			zap.Int64("employees", n),
		)
		return brancherrors.ErrBranchInUse.WithDetails(map[string]int64{"employees": n})
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete branch commit failed", zap.String("branch_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete branch success", zap.String("branch_id", id))
	return nil
}

func mapToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(branches []Branch) []BranchResponse {
	resp := make([]BranchResponse, len(branches))
	for i, b := range branches {
		resp[i] = mapToResponse(b)
	}
	return resp
}
