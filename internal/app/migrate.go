package app

import (
	"go-calypso/internal/branch"
	"go-calypso/internal/employee"
	"go-calypso/internal/managedlist"
	"go-calypso/internal/messaging/kafka"
	"go-calypso/internal/platformuser"
	"go-calypso/internal/visit"

	"gorm.io/gorm"
)

// Models lists every table the service owns, parents first.
func Models() []any {
	return []any{
		&branch.Branch{},
		&employee.Employee{},
		&platformuser.PlatformUser{},
		&managedlist.ManagedListItem{},
		&visit.Visit{},
		&kafka.OutboxRecord{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return managedlist.EnsureIndexes(db)
}
