package explain

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// SelectStatement describes a SELECT in the same shape as an ordinary table query call.
// Empty optional clauses are omitted.
type SelectStatement struct {
	Table   string
	Columns []string // nil or empty selects *
	Where   string   // predicate with ? placeholders
	Args    []any    // bind values for Where, in placeholder order
	GroupBy string
	Having  string
	OrderBy string
	Limit   string
}

// SQL renders the statement:
// SELECT columns FROM table [WHERE] [GROUP BY] [HAVING] [ORDER BY] [LIMIT].
func (s SelectStatement) SQL() (string, error) {
	if strings.TrimSpace(s.Table) == "" {
		return "", ErrTableRequired
	}

	columns := s.Columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	builder := sq.Select(columns...).From(s.Table)

	if s.Where != "" {
		builder = builder.Where(s.Where)
	}

	if s.GroupBy != "" {
		builder = builder.GroupBy(s.GroupBy)
	}

	if s.Having != "" {
		builder = builder.Having(s.Having)
	}

	if s.OrderBy != "" {
		builder = builder.OrderBy(s.OrderBy)
	}

	// squirrel only takes numeric limits; the clause is passed on verbatim.
	if s.Limit != "" {
		builder = builder.Suffix("LIMIT " + s.Limit)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		return "", fmt.Errorf("explain: failed to compose select: %w", err)
	}

	return query, nil
}

// UpdateStatement describes an UPDATE in the same shape as an ordinary table update call.
type UpdateStatement struct {
	Table string
	Set   []Assignment // rendered in order
	Where string
	Args  []any
}

// SQL renders the statement: UPDATE table SET c1 = v1, ... [WHERE].
// An empty Set is not rejected here; the engine reports the syntax error.
func (u UpdateStatement) SQL() (string, error) {
	if strings.TrimSpace(u.Table) == "" {
		return "", ErrTableRequired
	}

	if len(u.Set) == 0 {
		query := "UPDATE " + u.Table + " SET"
		if u.Where != "" {
			query += " WHERE " + u.Where
		}

		return query, nil
	}

	builder := sq.Update(u.Table)
	for _, a := range u.Set {
		builder = builder.Set(a.Column, sq.Expr(a.Value.SQL()))
	}

	if u.Where != "" {
		builder = builder.Where(u.Where)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		return "", fmt.Errorf("explain: failed to compose update: %w", err)
	}

	return query, nil
}
