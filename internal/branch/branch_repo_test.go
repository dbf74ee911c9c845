package branch_test

import (
	"context"
	"testing"

	"go-calypso/internal/branch"
	brancherrors "go-calypso/internal/branch/errors"
	"go-calypso/internal/employee"
	"go-calypso/internal/shared/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBranchRepository(t *testing.T) {
	db := dbtest.Open(t, &branch.Branch{})
	require.NoError(t, db.Exec("CREATE TABLE employees (id TEXT PRIMARY KEY, branch_id TEXT)").Error)

	repo := branch.NewRepository(db)
	ctx := context.Background()

	norte := &branch.Branch{ID: uuid.New(), Name: "Sede Norte"}
	sur := &branch.Branch{ID: uuid.New(), Name: "Sede Sur"}
	require.NoError(t, repo.Create(ctx, sur))
	require.NoError(t, repo.Create(ctx, norte))

	t.Run("find all ordered by name", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Sede Norte", all[0].Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := repo.Create(ctx, &branch.Branch{ID: uuid.New(), Name: "Sede Norte"})
		require.Error(t, err)

		svc := branch.NewService(nil, repo)
		_, err = svc.Create(ctx, branch.CreateBranchRequest{Name: "Sede Norte"})
		assert.ErrorIs(t, err, brancherrors.ErrBranchNameExists)
	})

	t.Run("count employees", func(t *testing.T) {
		require.NoError(t, db.Exec("INSERT INTO employees (id, branch_id) VALUES (?, ?)", uuid.NewString(), norte.ID.String()).Error)

		n, err := repo.CountEmployees(ctx, norte.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.CountEmployees(ctx, sur.ID.String())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, sur.ID.String()))
		assert.ErrorIs(t, repo.Delete(ctx, sur.ID.String()), gorm.ErrRecordNotFound)

		_, err := repo.FindByID(ctx, sur.ID.String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestBranchService_DeleteAfterEmployeesLeave(t *testing.T) {
	db := dbtest.Open(t, &branch.Branch{}, &employee.Employee{})
	sqlDB, err := db.DB()
	require.NoError(t, err)

	repo := branch.NewRepository(db)
	svc := branch.NewService(sqlDB, repo)
	ctx := context.Background()

	sede := &branch.Branch{ID: uuid.New(), Name: "Tocancipa"}
	require.NoError(t, repo.Create(ctx, sede))
	empl := &employee.Employee{
		ID:             uuid.New(),
		Identification: "123",
		FullName:       "Juan Pérez",
		JobTitle:       "Analista",
		BranchID:       sede.ID,
	}
	require.NoError(t, db.Create(empl).Error)

	err = svc.Delete(ctx, sede.ID.String())
	assert.ErrorIs(t, err, brancherrors.ErrBranchInUse)

	_, err = repo.FindByID(ctx, sede.ID.String())
	require.NoError(t, err)

	require.NoError(t, db.Delete(&employee.Employee{}, "id = ?", empl.ID).Error)

	require.NoError(t, svc.Delete(ctx, sede.ID.String()))
	_, err = repo.FindByID(ctx, sede.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
