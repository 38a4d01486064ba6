// Package mock provides in-process stand-ins for the services the API
// depends on: a SQLite database in place of PostgreSQL and a miniredis
// server in place of Redis. The integration suite runs against these, so
// it needs no containers.
package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce   sync.Once
	sharedDB *Db
)

// Db wraps the in-memory SQLite database used by integration tests. A single
// connection stays open for the whole run; closing the last connection to a
// shared-cache memory database would discard it between scenarios.
type Db struct {
	DbConn *gorm.DB
	models map[string]interface{}
}

// NewDb opens the test database once and migrates the given models. The map
// is keyed by table name so scenarios can look models up for row asserts.
func NewDb(models map[string]interface{}) *Db {
	dbOnce.Do(func() {
		conn, err := openSQLite()
		if err != nil {
			panic(fmt.Sprintf("opening test database: %v", err))
		}
		sharedDB = &Db{DbConn: conn, models: models}
		if err := sharedDB.migrate(); err != nil {
			panic(fmt.Sprintf("migrating test database: %v", err))
		}
	})
	return sharedDB
}

func openSQLite() (*gorm.DB, error) {
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}

	// SQLite takes a single writer; a second connection under concurrent
	// scenario steps only produces "database is locked" errors.
	conn.SetMaxOpenConns(1)

	return gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// migrate recreates every registered table from scratch.
func (d *Db) migrate() error {
	for _, m := range d.models {
		if err := d.DbConn.Migrator().DropTable(m); err != nil {
			return err
		}
	}

	for table, m := range d.models {
		if err := d.DbConn.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrating %s: %w", table, err)
		}
	}
	return nil
}

// ClearDB deletes every row from every registered table and resets SQLite's
// autoincrement counters, leaving the schema in place. Scenarios call this
// in their Before hook.
func (d *Db) ClearDB() error {
	for table, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the registered model for a table name.
func (d *Db) GetModel(table string) (interface{}, bool) {
	model, ok := d.models[table]
	return model, ok
}
