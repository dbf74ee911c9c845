package managedlist

import (
	"context"
	"database/sql"

	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=managed_list_repo.go -destination=mock/managed_list_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, item *ManagedListItem) error
	FindByType(ctx context.Context, listType ListType, activeOnly bool) ([]ManagedListItem, error)
	FindByID(ctx context.Context, id string) (*ManagedListItem, error)
	FindByValue(ctx context.Context, listType ListType, value string) (*ManagedListItem, error)
	MaxSortOrder(ctx context.Context, listType ListType) (int, error)
	Update(ctx context.Context, item *ManagedListItem) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, item *ManagedListItem) error {
	return r.conn(ctx).Create(item).Error
}

func (r *repository) FindByType(ctx context.Context, listType ListType, activeOnly bool) ([]ManagedListItem, error) {
	q := r.conn(ctx).Where("list_type = ?", string(listType))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var items []ManagedListItem
	err := q.Order("sort_order ASC").Order("value ASC").Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ManagedListItem, error) {
	var item ManagedListItem
	if err := r.conn(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByValue matches case-insensitively within one list.
func (r *repository) FindByValue(ctx context.Context, listType ListType, value string) (*ManagedListItem, error) {
	var item ManagedListItem
	err := r.conn(ctx).
		Where("list_type = ? AND LOWER(value) = LOWER(?)", string(listType), value).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) MaxSortOrder(ctx context.Context, listType ListType) (int, error) {
	var max int
	err := r.conn(ctx).
		Model(&ManagedListItem{}).
		Where("list_type = ?", string(listType)).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

func (r *repository) Update(ctx context.Context, item *ManagedListItem) error {
	return r.conn(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&ManagedListItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
