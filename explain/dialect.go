package explain

// Prefix is the SQLite directive that turns a statement into a plan query.
const Prefix = "EXPLAIN QUERY PLAN "

// detailColumn is the plan column carrying the human readable step.
const detailColumn = "detail"

// ExplainStatement prepends the plan directive to a complete statement.
// The statement is not inspected; a malformed one is rejected by the engine on execution.
func ExplainStatement(sql string) string {
	return Prefix + sql
}
