package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/datamodel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Database holds the two handles the repositories use. Both share one pool.
type Database struct {
	Gorm   *gorm.DB
	SQLX   *sqlx.DB
	Driver string
}

func (d *Database) SQL() *sql.DB {
	return d.SQLX.DB
}

func (d *Database) Close() error {
	return d.SQLX.Close()
}

// initDB opens the configured database. SQLite databases are migrated in
// place since the goose migrations are written for Postgres.
func initDB(cfg internal.DatabaseConfig, lg *slog.Logger) (*Database, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: gormLogger.New(
			slog.NewLogLogger(lg.Handler(), slog.LevelWarn),
			gormLogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	switch cfg.Driver {
	case internal.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.Source), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)

		if err := gdb.AutoMigrate(datamodel.Models()...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		return &Database{Gorm: gdb, SQLX: sqlx.NewDb(sqlDB, "sqlite3"), Driver: cfg.Driver}, nil

	default:
		const driver = "pgx"

		dbConn, err := sqlx.Connect(driver, cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}

		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), gormCfg)
		if err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("failed to open gorm session: %w", err)
		}
		return &Database{Gorm: gdb, SQLX: dbConn, Driver: internal.DriverPostgres}, nil
	}
}
