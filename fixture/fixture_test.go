package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/planexplain/explain"
	"github.com/shibukawa/planexplain/testhelper"
)

func TestParse(t *testing.T) {
	src := testhelper.TrimIndent(t, `
		name: tablea
		schema:
		  - CREATE TABLE TableA (ColumnA INTEGER PRIMARY KEY, ColumnB INTEGER, ColumnC TEXT)
		cases:
		  - name: raw
		    sql: SELECT * FROM TableA WHERE ColumnB = ?
		    args: [1]
		    expect:
		      - SCAN TableA
		  - name: structured select
		    select:
		      table: TableA
		      columns: [ColumnA]
		      where: ColumnB = ?
		      order_by: ColumnC
		      limit: 10
		    args: [1]
		    assert:
		      - size(plan) > 0
		  - update:
		      table: TableA
		      set:
		        ColumnC: abc
		        ColumnB: 1
		        ColumnA: null
		      where: ColumnA = ?
		    args: [3]
		    assert:
		      - size(plan) == 1
	`)

	suite, err := Parse([]byte(src))
	assert.NoError(t, err)
	assert.Equal(t, "tablea", suite.Name)
	assert.Equal(t, 1, len(suite.Schema))
	assert.Equal(t, 3, len(suite.Cases))

	raw := suite.Cases[0]
	assert.Equal(t, "SELECT * FROM TableA WHERE ColumnB = ?", raw.SQL)
	assert.Equal(t, []string{"SCAN TableA"}, raw.Expect)

	sel := suite.Cases[1].Select.SelectStatement(suite.Cases[1].Args)
	assert.Equal(t, "TableA", sel.Table)
	assert.Equal(t, []string{"ColumnA"}, sel.Columns)
	assert.Equal(t, "10", sel.Limit)
	assert.Equal(t, "ColumnC", sel.OrderBy)

	update := suite.Cases[2]
	assert.Equal(t, "case 3", update.Name)

	stmt, err := update.Update.UpdateStatement(update.Args)
	assert.NoError(t, err)

	query, err := stmt.SQL()
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE TableA SET ColumnC = 'abc', ColumnB = 1, ColumnA = NULL WHERE ColumnA = ?", query)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{
			name:     "no cases" + testhelper.GetCaller(t),
			src:      "schema: []\n",
			expected: ErrNoCases,
		},
		{
			name:     "empty case" + testhelper.GetCaller(t),
			src:      "cases:\n  - name: nothing\n    expect: []\n",
			expected: ErrEmptyCase,
		},
		{
			name:     "ambiguous case" + testhelper.GetCaller(t),
			src:      "cases:\n  - sql: SELECT 1\n    select: {table: TableA}\n    expect: []\n",
			expected: ErrAmbiguousCase,
		},
		{
			name:     "no expectation" + testhelper.GetCaller(t),
			src:      "cases:\n  - sql: SELECT 1\n",
			expected: ErrNoExpectation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.IsError(t, err, tt.expected)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("cases:\n  - sql: SELECT 1\n    expected: []\n"))
	assert.Error(t, err)
}

func TestUpdateSpecRejectsUnsupportedValue(t *testing.T) {
	src := "cases:\n  - update:\n      table: TableA\n      set:\n        ColumnB: [1, 2]\n    expect: [SCAN TableA]\n"

	suite, err := Parse([]byte(src))
	assert.NoError(t, err)

	_, err = suite.Cases[0].Update.UpdateStatement(nil)
	assert.IsError(t, err, explain.ErrUnsupportedValue)
}

func TestLoadDefaultsNameToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.yaml")

	err := os.WriteFile(path, []byte("cases:\n  - sql: SELECT 1\n    expect: [SCAN CONSTANT ROW]\n"), 0o644)
	assert.NoError(t, err)

	suite, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "orders", suite.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
