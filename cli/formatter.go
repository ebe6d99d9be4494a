package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/shibukawa/planexplain/explain"
)

// OutputFormat selects how a plan is printed
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsValidOutputFormat checks if the output format is valid
func IsValidOutputFormat(format string) bool {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// PlanReport is the printable form of one explained statement
type PlanReport struct {
	SQL      string          `json:"sql" yaml:"sql"`
	Plan     []string        `json:"plan" yaml:"plan"`
	Indexes  []string        `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Warnings []WarningReport `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// WarningReport mirrors explain.Warning with serialization tags
type WarningReport struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Message string   `json:"message" yaml:"message"`
	Detail  string   `json:"detail" yaml:"detail"`
	Tables  []string `json:"tables,omitempty" yaml:"tables,omitempty"`
}

func newPlanReport(sql string, plan explain.Plan, evaluation *explain.Evaluation) PlanReport {
	report := PlanReport{
		SQL:     sql,
		Plan:    plan.Details(),
		Indexes: plan.IndexesUsed(),
	}

	if evaluation != nil {
		for _, w := range evaluation.Warnings {
			report.Warnings = append(report.Warnings, WarningReport{
				Kind:    string(w.Kind),
				Message: w.Message,
				Detail:  w.Detail,
				Tables:  w.Tables,
			})
		}
	}

	return report
}

// Formatter formats plan reports
type Formatter struct {
	Format OutputFormat
}

// NewFormatter creates a new plan formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{
		Format: format,
	}
}

// Write writes report according to the selected format
func (f *Formatter) Write(report PlanReport, output io.Writer) error {
	switch f.Format {
	case FormatText, "":
		return f.formatAsText(report, output)
	case FormatJSON:
		return f.formatAsJSON(report, output)
	case FormatYAML:
		return f.formatAsYAML(report, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.Format)
	}
}

// formatAsText prints one plan row per line. Warnings are printed separately.
func (f *Formatter) formatAsText(report PlanReport, output io.Writer) error {
	for _, detail := range report.Plan {
		if _, err := fmt.Fprintln(output, detail); err != nil {
			return err
		}
	}

	return nil
}

func (f *Formatter) formatAsJSON(report PlanReport, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	return encoder.Encode(report)
}

func (f *Formatter) formatAsYAML(report PlanReport, output io.Writer) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal plan to YAML: %w", err)
	}

	_, err = output.Write(data)

	return err
}
