package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/wordhoard/internal/platform/postgres"
)

// TestTimeout bounds connecting and migrating.
const TestTimeout = 10 * time.Second

// databaseURLEnvVars are checked in order.
var databaseURLEnvVars = []string{"WORDHOARD_TEST_DB_URL", "DATABASE_URL"}

// GetTestDatabaseURL returns the first configured database url, or "".
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT returns a connection to the test database with the schema
// reset and migrated up. The test is skipped when no database is configured;
// the connection is closed when the test ends.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured, set WORDHOARD_TEST_DB_URL or DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to %s: %v", maskDatabaseURL(dbURL), err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, cmd := range []string{postgres.MigrateReset, postgres.MigrateUp} {
		if err := postgres.Migrate(ctx, db, logger, cmd); err != nil {
			t.Fatalf("failed to prepare test schema (%s): %v", cmd, err)
		}
	}
	return db
}

// maskDatabaseURL hides the password in a database url.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		parsed.User = url.UserPassword(parsed.User.Username(), "****")
	}
	return parsed.String()
}
