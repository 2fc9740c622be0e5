package initializers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// sqliteTimeFormat is fixed width so that created_at sorts correctly as text
const sqliteTimeFormat = "2006-01-02 15:04:05.000000"

var DB *goqu.Database

func init() {
	opts := sqlite3.DialectOptions()
	opts.TimeFormat = sqliteTimeFormat
	goqu.RegisterDialect("sqlite3", opts)
}

// ConnectDB opens the database selected by Cfg and exits on failure
func ConnectDB() {
	db, err := OpenDB(Cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	DB = db
	log.Info().Str("database", DescribeDB(Cfg)).Msg("Connected to database")
}

// OpenDB connects to PostgreSQL when DATABASE_URL is set and to a local
// SQLite file otherwise
func OpenDB(cfg Config) (*goqu.Database, error) {
	driver, dsn := "sqlite3", sqliteDSN(cfg.DBPath)
	if cfg.UsePostgres() {
		driver, dsn = "postgres", cfg.DatabaseURL
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite3" {
		// one writer at a time; WAL still allows readers on other processes
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return goqu.New(driver, db), nil
}

// DescribeDB names the backend for the startup banner
func DescribeDB(cfg Config) string {
	if cfg.UsePostgres() {
		return "PostgreSQL"
	}
	return fmt.Sprintf("SQLite (%s)", cfg.DBPath)
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
}
