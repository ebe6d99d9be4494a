package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/planexplain"
	"github.com/shibukawa/planexplain/explain"
	"github.com/shibukawa/planexplain/fixture"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Files        []string `arg:"" optional:"" help:"Fixture files or glob patterns (defaults to fixtures in config)"`
	RunPattern   string   `short:"r" help:"Run only cases matching the regular expression"`
	DBConnection string   `long:"db" help:"SQLite database file or DSN (overrides config)"`
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	patterns := c.Files
	if len(patterns) == 0 {
		patterns = config.Fixtures
	}

	files, err := expandFixturePatterns(patterns)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Found %d fixture files", len(files))
	}

	total := &fixture.Summary{}

	for _, file := range files {
		summary, err := c.runFile(ctx, config, file)
		if err != nil {
			return err
		}

		total.Merge(summary)
	}

	if !ctx.Quiet {
		printCheckSummary(ctx.out(), total)
	}

	if total.Failed > 0 {
		return fmt.Errorf("%w: %d of %d cases", ErrChecksFailed, total.Failed, total.Total)
	}

	return nil
}

// runFile checks one fixture file against a fresh connection.
func (c *CheckCmd) runFile(ctx *Context, config *planexplain.Config, file string) (*fixture.Summary, error) {
	suite, err := fixture.Load(file)
	if err != nil {
		return nil, err
	}

	if err := suite.Filter(c.RunPattern); err != nil {
		return nil, err
	}

	runCtx, cancel := withTimeout(context.Background(), config.Explain.Timeout)
	defer cancel()

	driver, connection := databaseConnection(config, c.DBConnection)

	db, err := openDatabase(runCtx, driver, connection)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := suite.ApplySchema(runCtx, db); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	summary := suite.Run(runCtx, explain.New(db), config.AnalyzerOptions())

	if !ctx.Quiet {
		printCheckResults(ctx, summary)
	}

	return summary, nil
}

// expandFixturePatterns resolves globs. Plain paths are kept so a missing file is reported by the loader.
func expandFixturePatterns(patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			files = append(files, pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid fixture pattern %q: %w", pattern, err)
		}

		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, ErrNoFixtures
	}

	return files, nil
}

func printCheckResults(ctx *Context, summary *fixture.Summary) {
	out := ctx.out()
	passLabel := color.New(color.Bold, color.FgGreen).Sprint("PASS")
	failLabel := color.New(color.Bold, color.FgRed).Sprint("FAIL")

	for _, result := range summary.Results {
		if result.Passed() {
			if ctx.Verbose {
				fmt.Fprintf(out, "%s %s/%s (%s)\n", passLabel, result.Suite, result.Case, formatDuration(result.Duration))
			} else {
				fmt.Fprintf(out, "%s %s/%s\n", passLabel, result.Suite, result.Case)
			}

			continue
		}

		fmt.Fprintf(out, "%s %s/%s\n", failLabel, result.Suite, result.Case)

		if result.Error != nil {
			fmt.Fprintf(out, "    Error: %v\n", result.Error)
		}

		if result.Mismatch != "" {
			for line := range strings.SplitSeq(result.Mismatch, "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}

		for _, assertion := range result.FailedAssertions {
			fmt.Fprintf(out, "    Assertion failed: %s\n", assertion)
		}
	}
}

func printCheckSummary(out io.Writer, summary *fixture.Summary) {
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "=== Plan Check Summary ===\n")
	fmt.Fprintf(out, "Cases: %d total, %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(summary.TotalDuration))

	if summary.Failed == 0 {
		fmt.Fprintf(out, "\nAll plan checks passed! ✅\n")
	} else {
		fmt.Fprintf(out, "\nSome plan checks failed! ❌\n")
	}
}
