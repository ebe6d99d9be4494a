package testhelper

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shibukawa/planexplain/explain"
)

var (
	whiteSpaces = regexp.MustCompile(`(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

func replaceTab(match string) string {
	return strings.Repeat("    ", strings.Count(match, "\t"))
}

// TrimIndent drops the first line of src and removes the indentation of the second line
// from every line. Leading tabs become four spaces, so YAML literals can be written inline.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")

	var indent string
	if len(lines) > 1 {
		indent = whiteSpaces.FindString(lines[1])
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	return strings.Join(lines[1:], "\n")
}

// OpenSQLite opens a private in-memory SQLite database, applies schema and closes it when the test ends.
func OpenSQLite(t *testing.T, schema ...string) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// the in-memory database lives as long as this single connection
	db.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range schema {
		if _, err := db.ExecContext(t.Context(), stmt); err != nil {
			t.Fatalf("apply schema %q: %v", stmt, err)
		}
	}

	return db
}

// AssertPlan fails the test unless actual has exactly the expected rows, in order.
func AssertPlan(t *testing.T, expected []string, actual explain.Plan) {
	t.Helper()

	assert.Equal(t, expected, actual.Details(), "plan mismatch")
}
