package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"go-calypso/internal/bootstrap"
	employeeerrors "go-calypso/internal/employee/errors"
	"go-calypso/internal/shared/contextutil"
	"go-calypso/internal/shared/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxImportBytes = 5 << 20

// Per-row failure reasons reported back to the uploader.
const (
	RowErrRequiredField  = "required field missing"
	RowErrBranchNotFound = "branch not found"
	RowErrDuplicate      = "duplicate identification"
	RowErrNotSaved       = "could not be saved"
)

const (
	colIdentification = "identification"
	colFullName       = "full_name"
	colJobTitle       = "job_title"
	colBranch         = "branch"
)

var importColumns = []string{colIdentification, colFullName, colJobTitle, colBranch}

var headerAliases = map[string]string{
	"identificacion":  colIdentification,
	"identification":  colIdentification,
	"cedula":          colIdentification,
	"nombre_completo": colFullName,
	"nombre":          colFullName,
	"full_name":       colFullName,
	"cargo":           colJobTitle,
	"job_title":       colJobTitle,
	"sede":            colBranch,
	"branch":          colBranch,
	"branch_name":     colBranch,
}

type importRow struct {
	Row            int
	Identification string
	FullName       string
	JobTitle       string
	Branch         string
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeHeader maps " Nombre Completo " to "nombre_completo".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = foldAccents(h)
	return strings.Join(strings.Fields(h), "_")
}

func branchKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func detectDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

// parseImportFile validates the file structure and returns its data rows.
// Any error here rejects the whole upload.
func parseImportFile(r io.Reader) ([]importRow, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportBytes+1))
	if err != nil {
		return nil, employeeerrors.ErrImportFileInvalid
	}
	if len(data) > maxImportBytes {
		return nil, employeeerrors.ErrImportFileInvalid.WithDetails(map[string]int{"maxBytes": maxImportBytes})
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, employeeerrors.ErrImportFileEmpty
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, employeeerrors.ErrImportFileInvalid
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, employeeerrors.ErrImportFileEmpty
	}
	if err != nil {
		return nil, employeeerrors.ErrImportFileInvalid.WithDetails(map[string]string{"reason": err.Error()})
	}

	index := make(map[string]int, len(importColumns))
	for i, h := range header {
		if col, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	var missing []string
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, employeeerrors.MissingColumns(missing)
	}

	field := func(rec []string, col string) string {
		i := index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	// Row is the record's line in the file, so blank lines the reader skips
	// still count.
	var rows []importRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, employeeerrors.ErrImportFileInvalid.WithDetails(map[string]string{"reason": err.Error()})
		}
		line, _ := reader.FieldPos(0)

		row := importRow{
			Row:            line,
			Identification: field(rec, colIdentification),
			FullName:       field(rec, colFullName),
			JobTitle:       field(rec, colJobTitle),
			Branch:         field(rec, colBranch),
		}
		if row.Identification == "" && row.FullName == "" && row.JobTitle == "" && row.Branch == "" {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, employeeerrors.ErrImportFileEmpty
	}
	return rows, nil
}

// Import creates one employee per data row. Rows are processed in order and
// a failing row is recorded without stopping the batch.
func (s *service) Import(ctx context.Context, file io.Reader) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)

	rows, err := parseImportFile(file)
	if err != nil {
		s.logger.Warn("employee import rejected", zap.String("request_id", rid), zap.Error(err))
		return ImportResult{}, err
	}

	branches, err := s.branches.FindAll(ctx)
	if err != nil {
		s.logger.Error("employee import load branches failed", zap.String("request_id", rid), zap.Error(err))
		return ImportResult{}, err
	}
	branchIDs := make(map[string]uuid.UUID, len(branches))
	for _, b := range branches {
		branchIDs[branchKey(b.Name)] = b.ID
	}

	result := ImportResult{Errors: []ImportRowError{}}
	fail := func(row importRow, reason string) {
		result.ErrorCount++
		result.Errors = append(result.Errors, ImportRowError{
			Row:            row.Row,
			Identification: row.Identification,
			Error:          reason,
		})
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return ImportResult{}, err
		}

		if row.Identification == "" || row.FullName == "" || row.JobTitle == "" || row.Branch == "" {
			fail(row, RowErrRequiredField)
			continue
		}
		branchID, ok := branchIDs[branchKey(row.Branch)]
		if !ok {
			fail(row, RowErrBranchNotFound)
			continue
		}

		empl := &Employee{
			ID:             uuid.New(),
			Identification: row.Identification,
			FullName:       row.FullName,
			JobTitle:       row.JobTitle,
			BranchID:       branchID,
		}
		if err := s.repo.Create(ctx, empl); err != nil {
			if database.IsUniqueViolation(err, "uq_employee_identification") {
				fail(row, RowErrDuplicate)
				continue
			}
			s.logger.Error("employee import row persist failed",
				zap.String("request_id", rid),
				zap.Int("row", row.Row),
				zap.Error(err),
			)
			fail(row, RowErrNotSaved)
			continue
		}
		result.SuccessCount++
	}

	result.Message = fmt.Sprintf("Import finished: %d created, %d failed", result.SuccessCount, result.ErrorCount)

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditEmployeeImport,
		Message: result.Message,
		Meta: map[string]any{
			"rows":         len(rows),
			"successCount": result.SuccessCount,
			"errorCount":   result.ErrorCount,
		},
	})
	s.logger.Info("employee import finished",
		zap.String("request_id", rid),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.ErrorCount),
	)
	return result, nil
}

// ImportStatus maps an import outcome to its HTTP status: 201 when every row
// was created, 422 when none was, 207 otherwise.
func ImportStatus(r ImportResult) int {
	switch {
	case r.ErrorCount == 0:
		return http.StatusCreated
	case r.SuccessCount == 0:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusMultiStatus
	}
}
