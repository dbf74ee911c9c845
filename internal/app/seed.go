package app

import (
	"context"
	"errors"
	"strings"

	"go-calypso/internal/branch"
	"go-calypso/internal/domain"
	"go-calypso/internal/employee"
	"go-calypso/internal/managedlist"
	"go-calypso/internal/platformuser"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInput describes the first primary admin of a fresh installation.
type SeedInput struct {
	BranchName     string
	BranchAddress  string
	Identification string
	FullName       string
	JobTitle       string
	Password       string
}

type SeedResult struct {
	BranchID       string
	EmployeeID     string
	PlatformUserID string
	AdminCreated   bool
	ListItems      int
}

var defaultListValues = map[managedlist.ListType][]string{
	managedlist.ListDocumentType: {"CC", "CE", "TI", "PA", "NIT"},
	managedlist.ListGender:       {"Femenino", "Masculino", "No binario", "Prefiero no decir"},
	managedlist.ListBloodType:    {"O+", "O-", "A+", "A-", "B+", "B-", "AB+", "AB-"},
	managedlist.ListVisitType:    {"Proveedor", "Cliente", "Contratista", "Candidato", "Personal"},
	managedlist.ListKinship:      {"Padre", "Madre", "Cónyuge", "Hijo(a)", "Hermano(a)", "Otro"},
}

// SeedPrimaryAdmin creates the branch, employee and PRIMARY_ADMIN described
// by in, reusing rows that already exist, and fills empty dropdown lists
// with defaults. Running it twice changes nothing.
func SeedPrimaryAdmin(ctx context.Context, db *gorm.DB, in SeedInput, logger *zap.Logger) (SeedResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("app.seed")

	in.BranchName = strings.TrimSpace(in.BranchName)
	in.Identification = strings.TrimSpace(in.Identification)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.BranchName == "" || in.Identification == "" || in.FullName == "" {
		return SeedResult{}, errors.New("seed: branch, identification and full name are required")
	}
	if len(in.Password) < 8 {
		return SeedResult{}, errors.New("seed: password must have at least 8 characters")
	}
	if in.JobTitle == "" {
		in.JobTitle = "Administrador"
	}

	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b := branch.Branch{}
		err := tx.Where("name = ?", in.BranchName).First(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b = branch.Branch{ID: uuid.New(), Name: in.BranchName, Address: strings.TrimSpace(in.BranchAddress)}
			err = tx.Create(&b).Error
		}
		if err != nil {
			return err
		}
		res.BranchID = b.ID.String()

		e := employee.Employee{}
		err = tx.Where("identification = ?", in.Identification).First(&e).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e = employee.Employee{
				ID:             uuid.New(),
				Identification: in.Identification,
				FullName:       in.FullName,
				JobTitle:       in.JobTitle,
				BranchID:       b.ID,
			}
			err = tx.Create(&e).Error
		}
		if err != nil {
			return err
		}
		res.EmployeeID = e.ID.String()

		u := platformuser.PlatformUser{}
		err = tx.Where("employee_id = ?", e.ID).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, herr := platformuser.HashPassword(in.Password, bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			u = platformuser.PlatformUser{
				ID:                    uuid.New(),
				EmployeeID:            e.ID,
				Role:                  string(domain.RolePrimaryAdmin),
				PasswordHash:          hash,
				CanManageAutoregister: domain.DefaultAutoregisterPermission(domain.RolePrimaryAdmin),
				IsActive:              true,
			}
			err = tx.Create(&u).Error
			res.AdminCreated = err == nil
		}
		if err != nil {
			return err
		}
		res.PlatformUserID = u.ID.String()

		n, err := seedLists(tx)
		res.ListItems = n
		return err
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Info("seed completed",
		zap.String("branch_id", res.BranchID),
		zap.String("employee_id", res.EmployeeID),
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("list_items", res.ListItems),
	)
	return res, nil
}

// seedLists only touches lists that have no items yet.
func seedLists(tx *gorm.DB) (int, error) {
	created := 0
	for _, lt := range managedlist.ListTypes {
		values := defaultListValues[lt]
		if len(values) == 0 {
			continue
		}

		var n int64
		if err := tx.Model(&managedlist.ManagedListItem{}).Where("list_type = ?", string(lt)).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			continue
		}

		items := make([]managedlist.ManagedListItem, len(values))
		for i, v := range values {
			items[i] = managedlist.ManagedListItem{
				ID:        uuid.New(),
				ListType:  string(lt),
				Value:     v,
				SortOrder: i + 1,
				IsActive:  true,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return created, err
		}
		created += len(items)
	}
	return created, nil
}
