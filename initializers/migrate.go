package initializers

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS prayers (
		id          SERIAL PRIMARY KEY,
		person_name TEXT        NOT NULL,
		author_name TEXT        NOT NULL,
		content     TEXT        NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prayers_person_created ON prayers (person_name, created_at)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS prayers (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		person_name TEXT      NOT NULL,
		author_name TEXT      NOT NULL,
		content     TEXT      NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prayers_person_created ON prayers (person_name, created_at)`,
}

// Migrate creates the prayers table and its index if they do not exist
func Migrate(ctx context.Context, db *goqu.Database) error {
	statements := sqliteSchema
	if db.Dialect() == "postgres" {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	log.Debug().Str("dialect", db.Dialect()).Msg("Schema up to date")
	return nil
}
