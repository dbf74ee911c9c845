package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, search string) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	CountHostedVisits(ctx context.Context, id string) (int64, error)
	HasPlatformUser(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, search string) ([]Employee, error) {
	var employees []Employee
	q := r.conn(ctx).Order("full_name ASC")
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(identification) LIKE ?", like, like)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountHostedVisits(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.conn(ctx).Table("visits").Where("host_id = ?", id).Count(&n).Error
	return n, err
}

func (r *repository) HasPlatformUser(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.conn(ctx).Table("platform_users").Where("employee_id = ?", id).Count(&n).Error
	return n > 0, err
}
