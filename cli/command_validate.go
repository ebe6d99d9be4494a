package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/planexplain/fixture"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Files  []string `arg:"" help:"Fixture files or glob patterns (defaults to fixtures in config)" optional:""`
	Format string   `help:"Output format" default:"text" enum:"text,json"`
}

type validationReport struct {
	File  string `json:"file"`
	Cases int    `json:"cases"`
	Error string `json:"error,omitempty"`
}

// Run parses fixture files without touching a database.
func (v *ValidateCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	patterns := v.Files
	if len(patterns) == 0 {
		patterns = config.Fixtures
	}

	files, err := expandFixturePatterns(patterns)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Validating %d fixture files", len(files))
	}

	reports := make([]validationReport, 0, len(files))
	failed := 0

	for _, file := range files {
		report := validationReport{File: file}

		suite, err := fixture.Load(file)
		if err != nil {
			report.Error = err.Error()
			failed++
		} else {
			report.Cases = len(suite.Cases)
		}

		reports = append(reports, report)
	}

	if err := v.print(ctx, reports); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d fixture files are invalid", fixture.ErrInvalidFixture, failed, len(files))
	}

	return nil
}

func (v *ValidateCmd) print(ctx *Context, reports []validationReport) error {
	out := ctx.out()

	if v.Format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(reports)
	}

	if ctx.Quiet {
		return nil
	}

	for _, report := range reports {
		if report.Error != "" {
			fmt.Fprintf(out, "%s %s\n    %s\n", color.New(color.Bold, color.FgRed).Sprint("INVALID"), report.File, report.Error)
			continue
		}

		fmt.Fprintf(out, "%s %s (%d cases)\n", color.New(color.Bold, color.FgGreen).Sprint("OK"), report.File, report.Cases)
	}

	return nil
}
