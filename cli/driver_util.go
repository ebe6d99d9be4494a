package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shibukawa/planexplain"
)

func normalizeSQLDriverName(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

// normalizeSQLiteDSN accepts sqlite:// URLs as well as plain file names.
func normalizeSQLiteDSN(connection string) string {
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if rest, ok := strings.CutPrefix(connection, prefix); ok {
			return rest
		}
	}

	return connection
}

// databaseConnection picks the --db override or the configured connection.
func databaseConnection(config *planexplain.Config, override string) (string, string) {
	if override != "" {
		return "sqlite3", normalizeSQLiteDSN(override)
	}

	return normalizeSQLDriverName(config.Database.Driver), normalizeSQLiteDSN(config.Database.Connection)
}

// openDatabase opens and pings the database. A single connection is kept so
// :memory: databases survive between statements.
func openDatabase(ctx context.Context, driver, connection string) (*sql.DB, error) {
	db, err := sql.Open(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	return db, nil
}

// applySchemaFiles executes each SQL file as one script.
func applySchemaFiles(ctx context.Context, db *sql.DB, files []string) error {
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrSchemaFileNotFound, file)
			}

			return fmt.Errorf("failed to read schema file: %w", err)
		}

		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("failed to apply schema %s: %w", file, err)
		}
	}

	return nil
}

// withTimeout applies the configured explain timeout in seconds; 0 disables it.
func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}
