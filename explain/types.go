package explain

import (
	"context"
	"database/sql"
	"strings"
)

// Preparer is the minimal connection interface the explainer needs.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Row is a single line of EXPLAIN QUERY PLAN output.
type Row struct {
	Detail string
}

// String returns the plan step exactly as the engine printed it.
func (r Row) String() string {
	return r.Detail
}

// Compare orders rows by their detail text.
func Compare(a, b Row) int {
	return strings.Compare(a.Detail, b.Detail)
}

// Plan is the ordered sequence of steps the engine reported. Order is significant.
type Plan []Row

// NewPlan builds a plan from detail strings, typically the expected side of an assertion.
func NewPlan(details ...string) Plan {
	plan := make(Plan, len(details))
	for i, d := range details {
		plan[i] = Row{Detail: d}
	}

	return plan
}

// Equal reports whether both plans have the same rows in the same order.
func (p Plan) Equal(other Plan) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// Details returns the detail text of every row.
func (p Plan) Details() []string {
	details := make([]string, len(p))
	for i, r := range p {
		details[i] = r.Detail
	}

	return details
}

func (p Plan) String() string {
	return strings.Join(p.Details(), "\n")
}

// IndexesUsed lists the named indexes referenced by the plan, in order of first use.
func (p Plan) IndexesUsed() []string {
	var (
		names []string
		seen  = map[string]bool{}
	)

	for _, r := range p {
		name := indexName(r.Detail)
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true
		names = append(names, name)
	}

	return names
}

// UsesIndex reports whether any step of the plan reads through the named index.
func (p Plan) UsesIndex(name string) bool {
	for _, used := range p.IndexesUsed() {
		if strings.EqualFold(used, name) {
			return true
		}
	}

	return false
}

// indexName extracts the index from "... USING [COVERING ]INDEX name (...)".
// Automatic indexes have no name and are skipped.
func indexName(detail string) string {
	fields := strings.Fields(detail)
	for i := 1; i < len(fields)-1; i++ {
		if !strings.EqualFold(fields[i], "index") {
			continue
		}

		prev := strings.ToUpper(fields[i-1])
		if prev != "USING" && prev != "COVERING" {
			continue
		}

		name := fields[i+1]
		if strings.HasPrefix(name, "(") {
			return ""
		}

		return trimSQLiteIdentifier(name)
	}

	return ""
}

// TableMetadata describes what plan shapes are acceptable for a table.
type TableMetadata struct {
	AllowFullScan bool
}

// AnalyzerOptions configures the analysis step.
type AnalyzerOptions struct {
	Tables         map[string]TableMetadata
	AllowTempBTree bool
}

// Evaluation captures warnings derived from the plan.
type Evaluation struct {
	Warnings []Warning
}

// Warning conveys issues detected while analyzing the plan.
type Warning struct {
	Kind    WarningKind
	Detail  string
	Message string
	Tables  []string
}

// WarningKind enumerates warning categories.
type WarningKind string

const (
	WarningFullScan  WarningKind = "full_scan"
	WarningIndexScan WarningKind = "index_scan"
	WarningTempBTree WarningKind = "temp_btree"
)
