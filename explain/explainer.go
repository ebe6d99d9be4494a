package explain

import "context"

// Explainer runs EXPLAIN QUERY PLAN commands on a connection owned by the caller.
// It never opens or closes the connection. Calls are synchronous; do not share one
// Explainer between goroutines if the underlying handle forbids concurrent cursors.
type Explainer struct {
	conn Preparer
}

// New returns an Explainer bound to conn. With a nil conn, or a nil *sql.DB, *sql.Conn
// or *sql.Tx, every call fails with ErrNoDatabase.
func New(conn Preparer) *Explainer {
	return &Explainer{conn: conn}
}

// ExplainSQL explains a complete statement (SELECT, UPDATE or anything else the engine accepts).
// args are bound to the statement's placeholders.
func (e *Explainer) ExplainSQL(ctx context.Context, sql string, args ...any) (Plan, error) {
	return collect(ctx, e.conn, ExplainStatement(sql), args)
}

// ExplainSelect composes the SELECT described by s and explains it.
func (e *Explainer) ExplainSelect(ctx context.Context, s SelectStatement) (Plan, error) {
	query, err := s.SQL()
	if err != nil {
		return nil, err
	}

	return collect(ctx, e.conn, ExplainStatement(query), s.Args)
}

// ExplainUpdate composes the UPDATE described by u and explains it.
func (e *Explainer) ExplainUpdate(ctx context.Context, u UpdateStatement) (Plan, error) {
	query, err := u.SQL()
	if err != nil {
		return nil, err
	}

	return collect(ctx, e.conn, ExplainStatement(query), u.Args)
}
