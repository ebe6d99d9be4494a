package explain

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestSelectStatementSQL(t *testing.T) {
	tests := []struct {
		name     string
		stmt     SelectStatement
		expected string
	}{
		{
			name:     "no clauses selects everything",
			stmt:     SelectStatement{Table: "TableA"},
			expected: "SELECT * FROM TableA",
		},
		{
			name:     "empty column list selects everything",
			stmt:     SelectStatement{Table: "TableA", Columns: []string{}},
			expected: "SELECT * FROM TableA",
		},
		{
			name:     "columns keep caller order",
			stmt:     SelectStatement{Table: "TableA", Columns: []string{"ColumnC", "ColumnA", "ColumnB"}},
			expected: "SELECT ColumnC, ColumnA, ColumnB FROM TableA",
		},
		{
			name:     "where with placeholders",
			stmt:     SelectStatement{Table: "TableA", Where: "ColumnB = ? AND ColumnC = ?", Args: []any{1, "1"}},
			expected: "SELECT * FROM TableA WHERE ColumnB = ? AND ColumnC = ?",
		},
		{
			name: "all clauses in fixed order",
			stmt: SelectStatement{
				Table:   "TableA",
				Columns: []string{"ColumnC", "COUNT(*)"},
				Where:   "ColumnB = ?",
				Args:    []any{1},
				GroupBy: "ColumnC",
				Having:  "COUNT(*) > 1",
				OrderBy: "ColumnC DESC",
				Limit:   "10 OFFSET 5",
			},
			expected: "SELECT ColumnC, COUNT(*) FROM TableA WHERE ColumnB = ? GROUP BY ColumnC HAVING COUNT(*) > 1 ORDER BY ColumnC DESC LIMIT 10 OFFSET 5",
		},
		{
			name:     "order by and limit only",
			stmt:     SelectStatement{Table: "TableA", OrderBy: "ColumnA", Limit: "1"},
			expected: "SELECT * FROM TableA ORDER BY ColumnA LIMIT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.stmt.SQL()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestUpdateStatementSQL(t *testing.T) {
	tests := []struct {
		name     string
		stmt     UpdateStatement
		expected string
	}{
		{
			name:     "single assignment",
			stmt:     UpdateStatement{Table: "TableA", Set: []Assignment{Set("ColumnB", Int(1))}},
			expected: "UPDATE TableA SET ColumnB = 1",
		},
		{
			name:     "boolean renders as integer",
			stmt:     UpdateStatement{Table: "TableA", Set: []Assignment{Set("ColumnB", Bool(true))}},
			expected: "UPDATE TableA SET ColumnB = 1",
		},
		{
			name: "assignments keep caller order",
			stmt: UpdateStatement{
				Table: "TableA",
				Set: []Assignment{
					Set("ColumnC", Text("x")),
					Set("ColumnB", Bool(false)),
					Set("ColumnD", Null()),
					Set("ColumnE", Float(1.5)),
					Set("ColumnF", Decimal(decimal.RequireFromString("10.25"))),
				},
			},
			expected: "UPDATE TableA SET ColumnC = 'x', ColumnB = 0, ColumnD = NULL, ColumnE = 1.5, ColumnF = 10.25",
		},
		{
			name:     "where clause",
			stmt:     UpdateStatement{Table: "TableA", Set: []Assignment{Set("ColumnB", Int(2))}, Where: "ColumnB = ? AND ColumnC = ?", Args: []any{"1", "1"}},
			expected: "UPDATE TableA SET ColumnB = 2 WHERE ColumnB = ? AND ColumnC = ?",
		},
		{
			name:     "empty assignments are passed through",
			stmt:     UpdateStatement{Table: "TableA", Where: "ColumnA = ?"},
			expected: "UPDATE TableA SET WHERE ColumnA = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.stmt.SQL()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestStatementTableRequired(t *testing.T) {
	_, err := SelectStatement{}.SQL()
	assert.IsError(t, err, ErrTableRequired)

	_, err = SelectStatement{Table: "   ", Where: "a = ?"}.SQL()
	assert.IsError(t, err, ErrTableRequired)

	_, err = UpdateStatement{Set: []Assignment{Set("ColumnB", Int(1))}}.SQL()
	assert.IsError(t, err, ErrTableRequired)
}

func TestStatementSQLIsIdempotent(t *testing.T) {
	sel := SelectStatement{Table: "TableA", Columns: []string{"ColumnA", "ColumnB"}, Where: "ColumnB = ?", OrderBy: "ColumnA"}
	first, err := sel.SQL()
	assert.NoError(t, err)
	second, err := sel.SQL()
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	upd := UpdateStatement{Table: "TableA", Set: []Assignment{Set("ColumnB", Int(1)), Set("ColumnC", Text("a"))}}
	first, err = upd.SQL()
	assert.NoError(t, err)
	second, err = upd.SQL()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExplainStatement(t *testing.T) {
	assert.Equal(t, "EXPLAIN QUERY PLAN SELECT * FROM TableA", ExplainStatement("SELECT * FROM TableA"))
	assert.Equal(t, "EXPLAIN QUERY PLAN UPDATE TableA SET ColumnB = 1", ExplainStatement("UPDATE TableA SET ColumnB = 1"))
}
