package dukadb

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const SqliteInMemoryDSN = "file::memory:?cache=shared"

const maxDBRetries = 5

// Open opens driver ("sqlite" or "mysql") at dsn.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch driver {
	case "sqlite", "":
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	case "mysql":
		return gorm.Open(mysql.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MustConnectToDB will attempt to connect to the database maxDBRetries times, sleeping 3 seconds
// between attempts. If it still can't connect it calls log.Fatalf. Migrations run once connected.
func MustConnectToDB(driver, dsn string) *gorm.DB {
	retryCount := 1
	for {
		db, err := Open(driver, dsn)
		switch {
		case err == nil:
			if err := RunMigrations(db); err != nil {
				log.Fatalf("Failed to migrate db: %s", err)
			}
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open %s db: %s", driver, err)
		default:
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&dukamodel.Session{},
		&dukamodel.UserPreference{},
		&dukamodel.Role{},
		&dukamodel.RolePermission{},
		&dukamodel.UserRole{},
	)
}
