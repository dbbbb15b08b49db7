package store

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/creamroast/pos-api/internal/models"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Store is the storage-access object for the POS. It owns the only
// database handle in the process; every component that needs persistence
// receives a *Store, never a global.
type Store struct {
	db     *sql.DB
	driver string
	log    *logrus.Logger

	// OnSaleCompleted, when set, runs after a sale transaction commits.
	// This is the seam for future stock deduction; nothing in the core
	// sets it.
	OnSaleCompleted func(sale models.Sale)
}

// Open creates and configures the connection pool for the given driver
// ("sqlite" or "mysql") and DSN. Exactly one driver is selected here, at
// process start; business logic never branches on it.
func Open(driver, dsn string, log *logrus.Logger) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// The file store is single-writer; a bigger pool just produces
		// SQLITE_BUSY under concurrent sale creation.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.WithField("driver", driver).Info("database connection pool established")
	return &Store{db: db, driver: driver, log: log}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}
