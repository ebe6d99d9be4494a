package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/planexplain/explain"
)

// ExplainCmd represents the explain command
type ExplainCmd struct {
	SQL string `arg:"" optional:"" help:"Raw SQL statement to explain"`

	Table   string   `short:"t" help:"Table for a composed SELECT, or the target of --update"`
	Column  []string `short:"c" help:"Column to select (repeatable, defaults to *)"`
	Where   string   `short:"w" help:"WHERE clause without the keyword"`
	Arg     []string `short:"a" help:"Bind value for a placeholder (repeatable, NULL/true/false/number/'text')"`
	GroupBy string   `long:"group-by" help:"GROUP BY clause without the keyword"`
	Having  string   `help:"HAVING clause without the keyword"`
	OrderBy string   `long:"order-by" help:"ORDER BY clause without the keyword"`
	Limit   string   `help:"LIMIT clause without the keyword"`

	Update bool     `help:"Compose an UPDATE of --table instead of a SELECT"`
	Set    []string `short:"s" help:"Assignment in column=value form (repeatable, kept in order)"`

	DBConnection string   `long:"db" help:"SQLite database file or DSN (overrides config)"`
	Schema       []string `help:"SQL file executed before explaining (repeatable)" type:"path"`
	Format       string   `short:"f" help:"Output format (text, json, yaml)" default:"text"`
	Analyze      bool     `help:"Report full scans and temporary b-trees"`
}

// Run executes the explain command
func (e *ExplainCmd) Run(ctx *Context) error {
	if !IsValidOutputFormat(e.Format) {
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, e.Format)
	}

	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	args := parseBindArgs(e.Arg)

	driver, connection := databaseConnection(config, e.DBConnection)
	if ctx.Verbose {
		color.Blue("Using database driver: %s (%s)", driver, connection)
	}

	runCtx, cancel := withTimeout(context.Background(), config.Explain.Timeout)
	defer cancel()

	db, err := openDatabase(runCtx, driver, connection)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := applySchemaFiles(runCtx, db, e.Schema); err != nil {
		return err
	}

	query, plan, err := e.explain(runCtx, explain.New(db), args)
	if err != nil {
		return err
	}

	var evaluation *explain.Evaluation
	if e.Analyze {
		evaluation = explain.Analyze(plan, config.AnalyzerOptions())
	}

	format := OutputFormat(strings.ToLower(e.Format))
	if ctx.Verbose && format == FormatText {
		color.Blue("%s", query)
	}

	if err := NewFormatter(format).Write(newPlanReport(query, plan, evaluation), ctx.out()); err != nil {
		return fmt.Errorf("failed to format plan: %w", err)
	}

	if format == FormatText {
		printPerformanceWarnings(ctx, evaluation)
	}

	return nil
}

// explain dispatches to the raw, SELECT or UPDATE entry point and returns the
// statement text that was explained.
func (e *ExplainCmd) explain(ctx context.Context, explainer *explain.Explainer, args []any) (string, explain.Plan, error) {
	if e.SQL != "" {
		if flag := e.structuredFlag(); flag != "" {
			return "", nil, fmt.Errorf("%w: %s", ErrModeConflict, flag)
		}

		plan, err := explainer.ExplainSQL(ctx, e.SQL, args...)

		return e.SQL, plan, err
	}

	if e.Update {
		stmt, err := e.updateStatement(args)
		if err != nil {
			return "", nil, err
		}

		query, err := stmt.SQL()
		if err != nil {
			return "", nil, err
		}

		plan, err := explainer.ExplainUpdate(ctx, stmt)

		return query, plan, err
	}

	if len(e.Set) > 0 {
		return "", nil, ErrSetRequiresUpdate
	}

	stmt := e.selectStatement(args)

	query, err := stmt.SQL()
	if err != nil {
		return "", nil, err
	}

	plan, err := explainer.ExplainSelect(ctx, stmt)

	return query, plan, err
}

// structuredFlag names the first flag set that only applies to a composed statement.
func (e *ExplainCmd) structuredFlag() string {
	switch {
	case e.Table != "":
		return "--table"
	case len(e.Column) > 0:
		return "--column"
	case e.Where != "":
		return "--where"
	case e.GroupBy != "":
		return "--group-by"
	case e.Having != "":
		return "--having"
	case e.OrderBy != "":
		return "--order-by"
	case e.Limit != "":
		return "--limit"
	case e.Update:
		return "--update"
	case len(e.Set) > 0:
		return "--set"
	default:
		return ""
	}
}

func (e *ExplainCmd) selectStatement(args []any) explain.SelectStatement {
	return explain.SelectStatement{
		Table:   e.Table,
		Columns: e.Column,
		Where:   e.Where,
		Args:    args,
		GroupBy: e.GroupBy,
		Having:  e.Having,
		OrderBy: e.OrderBy,
		Limit:   e.Limit,
	}
}

func (e *ExplainCmd) updateStatement(args []any) (explain.UpdateStatement, error) {
	assignments, err := parseAssignments(e.Set)
	if err != nil {
		return explain.UpdateStatement{}, err
	}

	return explain.UpdateStatement{
		Table: e.Table,
		Set:   assignments,
		Where: e.Where,
		Args:  args,
	}, nil
}

// parseAssignments converts column=value flags, preserving their order.
func parseAssignments(values []string) ([]explain.Assignment, error) {
	assignments := make([]explain.Assignment, 0, len(values))

	for _, value := range values {
		column, literal, ok := strings.Cut(value, "=")
		column = strings.TrimSpace(column)

		if !ok || column == "" {
			return nil, fmt.Errorf("%w: must be in column=value format: %s", ErrInvalidAssignment, value)
		}

		assignments = append(assignments, explain.Set(column, explain.ParseValue(literal)))
	}

	return assignments, nil
}

func parseBindArgs(values []string) []any {
	args := make([]any, 0, len(values))
	for _, value := range values {
		args = append(args, explain.ParseValue(value).Interface())
	}

	return args
}

// IsUsageError reports errors caused by flag combinations rather than the database.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrModeConflict) ||
		errors.Is(err, ErrSetRequiresUpdate) ||
		errors.Is(err, ErrInvalidAssignment) ||
		errors.Is(err, ErrInvalidOutputFormat) ||
		errors.Is(err, explain.ErrTableRequired)
}
