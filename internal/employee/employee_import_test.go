package employee_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go-calypso/internal/branch"
	"go-calypso/internal/employee"
	employeeerrors "go-calypso/internal/employee/errors"
	"go-calypso/internal/shared/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupImport(t *testing.T) (employee.Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t, &branch.Branch{}, &employee.Employee{})
	branchRepo := branch.NewRepository(db)
	require.NoError(t, branchRepo.Create(context.Background(), &branch.Branch{ID: uuid.New(), Name: "Tocancipa"}))
	require.NoError(t, branchRepo.Create(context.Background(), &branch.Branch{ID: uuid.New(), Name: "Sede Bogotá"}))

	return employee.NewService(nil, employee.NewRepository(db), branchRepo, nil), db
}

func TestImport_MixedRows(t *testing.T) {
	svc, db := setupImport(t)

	file := "identificacion,nombre_completo,cargo,sede\n" +
		"123,Juan Pérez,Analista,Tocancipa\n" +
		"124,,Analista,Tocancipa\n"

	result, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, employee.ImportRowError{Row: 3, Identification: "124", Error: employee.RowErrRequiredField}, result.Errors[0])
	assert.Equal(t, http.StatusMultiStatus, employee.ImportStatus(result))

	var n int64
	require.NoError(t, db.Model(&employee.Employee{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestImport_ReimportReportsDuplicates(t *testing.T) {
	svc, _ := setupImport(t)

	file := "Identificación;Nombre Completo;Cargo;Sede\n" +
		"200;Ana Ruiz;Auxiliar; tocancipa \n" +
		"201;Luis Mora;Vigilante;SEDE BOGOTÁ\n"

	first, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, first.SuccessCount)
	assert.Equal(t, http.StatusCreated, employee.ImportStatus(first))

	second, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Zero(t, second.SuccessCount)
	assert.Equal(t, 2, second.ErrorCount)
	for _, e := range second.Errors {
		assert.Equal(t, employee.RowErrDuplicate, e.Error)
	}
	assert.Equal(t, http.StatusUnprocessableEntity, employee.ImportStatus(second))
}

func TestImport_RowOutcomes(t *testing.T) {
	svc, _ := setupImport(t)

	file := "branch,full_name,identification,job_title\n" +
		"Medellin,Pedro Gil,300,Analista\n" +
		"Tocancipa,Pedro Gil,301,Analista\n" +
		"Tocancipa,Rosa Paz,301,Analista\n" +
		",,,\n" +
		"Tocancipa,Sin Cargo,302\n"

	result, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 3, result.ErrorCount)
	assert.Equal(t, result.ErrorCount, len(result.Errors))
	assert.Equal(t, []employee.ImportRowError{
		{Row: 2, Identification: "300", Error: employee.RowErrBranchNotFound},
		{Row: 4, Identification: "301", Error: employee.RowErrDuplicate},
		{Row: 6, Identification: "302", Error: employee.RowErrRequiredField},
	}, result.Errors)
}

func TestImport_RowNumbersFollowFileLines(t *testing.T) {
	svc, _ := setupImport(t)

	file := "identificacion,nombre_completo,cargo,sede\n" +
		"\n" +
		"123,Juan Pérez,Analista,Tocancipa\n" +
		"\n" +
		"124,,Analista,Tocancipa\n" +
		"\"125\",\"Marta\nDíaz\",Analista,Bogotá\n" +
		"126,Eva Ríos,,Tocancipa\n"

	result, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, []employee.ImportRowError{
		{Row: 5, Identification: "124", Error: employee.RowErrRequiredField},
		{Row: 6, Identification: "125", Error: employee.RowErrBranchNotFound},
		{Row: 8, Identification: "126", Error: employee.RowErrRequiredField},
	}, result.Errors)
}

func TestImport_StructuralFailures(t *testing.T) {
	svc, _ := setupImport(t)

	cases := map[string]struct {
		file string
		want error
	}{
		"empty":          {file: "  \n", want: employeeerrors.ErrImportFileEmpty},
		"header only":    {file: "identificacion,nombre,cargo,sede\n", want: employeeerrors.ErrImportFileEmpty},
		"binary":         {file: "\x00\x01\x02PK", want: employeeerrors.ErrImportFileInvalid},
		"unbalanced":     {file: "identificacion,nombre,cargo,sede\n\"123,Juan,Analista,Tocancipa\n", want: employeeerrors.ErrImportFileInvalid},
		"missing column": {file: "identificacion,nombre,cargo\n123,Juan,Analista\n", want: employeeerrors.MissingColumns([]string{"branch"})},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import(context.Background(), strings.NewReader(tc.file))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestImportStatus(t *testing.T) {
	assert.Equal(t, http.StatusCreated, employee.ImportStatus(employee.ImportResult{SuccessCount: 3}))
	assert.Equal(t, http.StatusMultiStatus, employee.ImportStatus(employee.ImportResult{SuccessCount: 1, ErrorCount: 1}))
	assert.Equal(t, http.StatusUnprocessableEntity, employee.ImportStatus(employee.ImportResult{ErrorCount: 2}))
}
