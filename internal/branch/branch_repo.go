package branch

import (
	"context"
	"database/sql"

	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Branch) error
	FindAll(ctx context.Context) ([]Branch, error)
	FindByID(ctx context.Context, id string) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, b *Branch) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	err := r.conn(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	if err := r.conn(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Branch) error {
	return r.conn(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Branch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.conn(ctx).Table("employees").Where("branch_id = ?", id).Count(&n).Error
	return n, err
}
