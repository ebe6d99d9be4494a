package explain

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// collect runs one plan query and drains it into a Plan.
// Preparing first lets database/sql enforce the driver's placeholder count,
// so too few and too many bind values both fail.
func collect(ctx context.Context, conn Preparer, query string, args []any) (Plan, error) {
	if isNilConn(conn) {
		return nil, ErrNoDatabase
	}

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQueryFailed, query, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQueryFailed, query, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("explain: failed to fetch columns: %w", err)
	}

	detailIdx := slices.IndexFunc(cols, func(name string) bool {
		return strings.EqualFold(name, detailColumn)
	})
	if detailIdx < 0 {
		return nil, fmt.Errorf("%w: got columns [%s]", ErrMissingDetailColumn, strings.Join(cols, ", "))
	}

	raw := make([]sql.RawBytes, len(cols))

	values := make([]any, len(cols))
	for i := range values {
		values[i] = &raw[i]
	}

	plan := Plan{}

	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("explain: failed to scan row: %w", err)
		}

		// RawBytes is only valid until the next call to Next; string() copies it.
		plan = append(plan, Row{Detail: string(raw[detailIdx])})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("explain: failed to iterate rows: %w", err)
	}

	return plan, nil
}

// isNilConn also catches nil pointers of the database/sql handle types stored in a Preparer.
func isNilConn(conn Preparer) bool {
	switch c := conn.(type) {
	case nil:
		return true
	case *sql.DB:
		return c == nil
	case *sql.Conn:
		return c == nil
	case *sql.Tx:
		return c == nil
	default:
		return false
	}
}
