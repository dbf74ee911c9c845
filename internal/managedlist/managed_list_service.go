package managedlist

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	managedlisterrors "go-calypso/internal/managedlist/errors"
	"go-calypso/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=managed_list_service.go -destination=mock/managed_list_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, listType string, includeInactive bool) ([]ItemResponse, error)
	Create(ctx context.Context, req CreateItemRequest) (ItemResponse, error)
	Update(ctx context.Context, id string, req UpdateItemRequest) (ItemResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("managedlist.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("managedlist.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, listType string, includeInactive bool) ([]ItemResponse, error) {
	lt, ok := ParseListType(listType)
	if !ok {
		return nil, managedlisterrors.ErrInvalidListType
	}

	items, err := s.repo.FindByType(ctx, lt, !includeInactive)
	if err != nil {
		s.logger.Error("list items failed", zap.String("list_type", string(lt)), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(items), nil
}

// Create appends after the current last position unless an order is given.
func (s *service) Create(ctx context.Context, req CreateItemRequest) (ItemResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	lt, ok := ParseListType(req.ListType)
	if !ok {
		return ItemResponse{}, managedlisterrors.ErrInvalidListType
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return ItemResponse{}, managedlisterrors.ErrEmptyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create item begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := ensureValueFree(ctx, qtx, lt, value, uuid.Nil); err != nil {
		s.logger.Warn("create item duplicate value",
			zap.String("request_id", rid),
			zap.String("list_type", string(lt)),
			zap.String("value", value),
		)
		return ItemResponse{}, err
	}

	order := 0
	if req.SortOrder != nil {
		order = *req.SortOrder
	} else {
		max, err := qtx.MaxSortOrder(ctx, lt)
		if err != nil {
			s.logger.Error("create item max order failed", zap.String("request_id", rid), zap.Error(err))
			return ItemResponse{}, err
		}
		order = max + 1
	}

	item := &ManagedListItem{
		ID:        uuid.New(),
		ListType:  string(lt),
		Value:     value,
		SortOrder: order,
		IsActive:  true,
	}
	if err := qtx.Create(ctx, item); err != nil {
		s.logger.Warn("create item persist failed", zap.String("request_id", rid), zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create item commit failed", zap.String("request_id", rid), zap.Error(err))
		return ItemResponse{}, err
	}

	s.logger.Info("create item success",
		zap.String("request_id", rid),
		zap.String("item_id", item.ID.String()),
		zap.String("list_type", item.ListType),
		zap.Int("sort_order", item.SortOrder),
	)
	return mapToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateItemRequest) (ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ItemResponse{}, managedlisterrors.ErrInvalidItemID
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return ItemResponse{}, managedlisterrors.ErrEmptyValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update item begin tx failed", zap.Error(err))
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	item, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := ensureValueFree(ctx, qtx, ListType(item.ListType), value, item.ID); err != nil {
		s.logger.Warn("update item rename collision", zap.String("item_id", id), zap.String("value", value))
		return ItemResponse{}, err
	}

	item.Value = value
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := qtx.Update(ctx, item); err != nil {
		s.logger.Warn("update item persist failed", zap.String("item_id", id), zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update item commit failed", zap.String("item_id", id), zap.Error(err))
		return ItemResponse{}, err
	}

	s.logger.Info("update item success", zap.String("item_id", id))
	return mapToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return managedlisterrors.ErrInvalidItemID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("delete item success", zap.String("item_id", id))
	return nil
}

// ensureValueFree fails when another item of the list already holds value,
// ignoring case. self is skipped so an item may be re-cased in place.
func ensureValueFree(ctx context.Context, repo Repository, lt ListType, value string, self uuid.UUID) error {
	existing, err := repo.FindByValue(ctx, lt, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == self {
		return nil
	}
	return managedlisterrors.ErrItemValueExists
}

func mapToResponse(item ManagedListItem) ItemResponse {
	return ItemResponse{
		ID:        item.ID.String(),
		ListType:  item.ListType,
		Value:     item.Value,
		SortOrder: item.SortOrder,
		IsActive:  item.IsActive,
	}
}

func mapToListResponse(items []ManagedListItem) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapToResponse(item)
	}
	return resp
}
