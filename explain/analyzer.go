package explain

import (
	"strings"
)

// Analyze produces warnings for plan steps that read whole tables or build temporary b-trees.
func Analyze(plan Plan, opts AnalyzerOptions) *Evaluation {
	eval := &Evaluation{}

	for _, row := range plan {
		detail := strings.TrimSpace(row.Detail)
		if detail == "" {
			continue
		}

		upper := strings.ToUpper(detail)

		switch {
		case upper == "SCAN CONSTANT ROW":
			// SELECT without FROM
		case strings.HasPrefix(upper, "SCAN "):
			analyzeScan(detail, opts, eval)
		case strings.HasPrefix(upper, "USE TEMP B-TREE"):
			if !opts.AllowTempBTree {
				eval.Warnings = append(eval.Warnings, Warning{
					Kind:    WarningTempBTree,
					Detail:  detail,
					Message: "temporary b-tree required",
				})
			}
		}
	}

	return eval
}

func analyzeScan(detail string, opts AnalyzerOptions, eval *Evaluation) {
	name := extractSQLiteTableName(detail)

	if meta, ok := lookupTableMeta(opts.Tables, name); ok && meta.AllowFullScan {
		return
	}

	tables := []string{}
	if name != "" {
		tables = append(tables, strings.ToLower(name))
	}

	warning := Warning{
		Kind:    WarningFullScan,
		Detail:  detail,
		Message: "full table scan detected",
		Tables:  tables,
	}

	if strings.Contains(strings.ToUpper(detail), " USING ") {
		warning.Kind = WarningIndexScan
		warning.Message = "full index scan detected"
	}

	eval.Warnings = append(eval.Warnings, warning)
}

// extractSQLiteTableName handles both "SCAN TABLE t" (before SQLite 3.36) and "SCAN t".
func extractSQLiteTableName(detail string) string {
	fields := strings.Fields(detail)
	if len(fields) < 2 {
		return ""
	}

	if strings.EqualFold(fields[1], "table") && len(fields) > 2 {
		return trimSQLiteIdentifier(fields[2])
	}

	return trimSQLiteIdentifier(fields[1])
}

func trimSQLiteIdentifier(name string) string {
	return strings.Trim(name, "`\"[]")
}

func lookupTableMeta(meta map[string]TableMetadata, name string) (TableMetadata, bool) {
	if meta == nil {
		return TableMetadata{}, false
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return TableMetadata{}, false
	}

	for candidate, value := range meta {
		candidate = strings.ToLower(candidate)
		if candidate == key || candidate == "main."+key {
			return value, true
		}
	}

	return TableMetadata{}, false
}
