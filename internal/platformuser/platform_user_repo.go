package platformuser

import (
	"context"
	"database/sql"

	"go-calypso/internal/domain"
	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

const viewColumns = "platform_users.*, employees.full_name, employees.identification"

//go:generate mockgen -source=platform_user_repo.go -destination=mock/platform_user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *PlatformUser) error
	FindAll(ctx context.Context) ([]PlatformUserView, error)
	FindByID(ctx context.Context, id string) (*PlatformUserView, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*PlatformUser, error)
	FindByIdentification(ctx context.Context, identification string) (*PlatformUserView, error)
	Update(ctx context.Context, u *PlatformUser) error
	Delete(ctx context.Context, id string) error
	CountActiveByRole(ctx context.Context, role domain.Role) (int64, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) view(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("platform_users").
		Select(viewColumns).
		Joins("JOIN employees ON employees.id = platform_users.employee_id")
}

func (r *repository) Create(ctx context.Context, u *PlatformUser) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PlatformUserView, error) {
	var users []PlatformUserView
	err := r.view(ctx).Order("employees.full_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PlatformUserView, error) {
	var u PlatformUserView
	if err := r.view(ctx).Where("platform_users.id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*PlatformUser, error) {
	var u PlatformUser
	if err := r.conn(ctx).First(&u, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByIdentification(ctx context.Context, identification string) (*PlatformUserView, error) {
	var u PlatformUserView
	if err := r.view(ctx).Where("employees.identification = ?", identification).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *PlatformUser) error {
	return r.conn(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&PlatformUser{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountActiveByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&PlatformUser{}).
		Where("role = ? AND is_active = ?", string(role), true).
		Count(&n).Error
	return n, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var n int64
	err := r.conn(ctx).Table("employees").Where("id = ?", employeeID).Count(&n).Error
	return n > 0, err
}
