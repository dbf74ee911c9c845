package visit

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-calypso/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter is the parsed form of ListQuery. To is exclusive.
type ListFilter struct {
	Estado string
	Search string
	From   *time.Time
	To     *time.Time
}

//go:generate mockgen -source=visit_repo.go -destination=mock/visit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Visit) error
	FindByID(ctx context.Context, id string) (*Visit, error)
	List(ctx context.Context, f ListFilter) ([]Visit, error)
	Approve(ctx context.Context, id string, hostID uuid.UUID, at time.Time) (int64, error)
	MarkExit(ctx context.Context, id string, at time.Time) (int64, error)
	EmployeeExists(ctx context.Context, id string) (bool, error)
	BranchExists(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, v *Visit) error {
	return r.conn(ctx).Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Visit, error) {
	var v Visit
	if err := r.conn(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Visit, error) {
	q := r.conn(ctx).Model(&Visit{})

	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(first_names) LIKE ? OR LOWER(last_names) LIKE ? OR LOWER(document_number) LIKE ? OR LOWER(COALESCE(origin_company, '')) LIKE ?",
			like, like, like, like,
		)
	}
	if f.From != nil {
		q = q.Where("entry_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("entry_time < ?", *f.To)
	}

	var visits []Visit
	err := q.Order("entry_time DESC").Find(&visits).Error
	return visits, err
}

// Approve activates a pending visit. Zero rows means the visit is missing or
// no longer pending.
func (r *repository) Approve(ctx context.Context, id string, hostID uuid.UUID, at time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Visit{}).
		Where("id = ? AND estado = ?", id, EstadoPendiente).
		Updates(map[string]any{
			"estado":     EstadoActiva,
			"host_id":    hostID,
			"entry_time": at,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

// MarkExit finalizes an active visit that has no exit time yet. Of two
// concurrent calls exactly one sees a row affected.
func (r *repository) MarkExit(ctx context.Context, id string, at time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Visit{}).
		Where("id = ? AND exit_time IS NULL AND estado = ?", id, EstadoActiva).
		Updates(map[string]any{
			"exit_time":  at,
			"estado":     EstadoFinalizada,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) EmployeeExists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.conn(ctx).Table("employees").Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repository) BranchExists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.conn(ctx).Table("branches").Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
