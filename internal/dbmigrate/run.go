// Package dbmigrate runs the goose SQL migrations, both from cmd/migrate
// and at API startup. DDL always goes over a direct (non-pooled) connection
// when one is configured; SelectDatabaseURL encodes that preference.
package dbmigrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Commands lists the goose commands cmd/migrate exposes.
var Commands = []string{"up", "status", "down"}

// ValidCommand reports whether command is one of Commands.
func ValidCommand(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}

// Run executes one goose command against dbURL using the SQL files in
// migrationsDir (DefaultMigrationsDir when empty).
func Run(ctx context.Context, command, dbURL, migrationsDir string) error {
	if !ValidCommand(command) {
		return fmt.Errorf("unsupported migrate command %q (allowed: %v)", command, Commands)
	}
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}
	if migrationsDir == "" {
		migrationsDir = DefaultMigrationsDir
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
