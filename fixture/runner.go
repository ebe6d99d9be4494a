package fixture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/shibukawa/planexplain/explain"
)

// ErrPlanMismatch marks a result whose plan differs from expect.
var ErrPlanMismatch = errors.New("fixture: plan mismatch")

// Execer runs schema statements.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Result represents the outcome of one case
type Result struct {
	Suite            string
	Case             string
	Plan             explain.Plan
	Warnings         []explain.Warning
	Mismatch         string
	FailedAssertions []string
	Error            error
	Duration         time.Duration
}

// Passed reports whether the case produced its expected plan and every assertion held.
func (r Result) Passed() bool {
	return r.Error == nil && r.Mismatch == "" && len(r.FailedAssertions) == 0
}

// Summary represents the outcome of a suite
type Summary struct {
	Total         int
	Passed        int
	Failed        int
	TotalDuration time.Duration
	Results       []Result
}

// Merge appends the results of other to s.
func (s *Summary) Merge(other *Summary) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.TotalDuration += other.TotalDuration
	s.Results = append(s.Results, other.Results...)
}

// ApplySchema executes the suite's schema statements in order.
func (s *Suite) ApplySchema(ctx context.Context, db Execer) error {
	for i, stmt := range s.Schema {
		if strings.TrimSpace(stmt) == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("fixture: schema statement %d failed: %w", i+1, err)
		}
	}

	return nil
}

// Filter keeps only the cases whose name matches pattern.
func (s *Suite) Filter(pattern string) error {
	if pattern == "" {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("fixture: invalid run pattern %q: %w", pattern, err)
	}

	s.Cases = slices.DeleteFunc(s.Cases, func(c Case) bool {
		return !re.MatchString(c.Name)
	})

	return nil
}

// Run explains every case in order. Per-case failures are recorded in the results;
// the returned summary is never nil.
func (s *Suite) Run(ctx context.Context, explainer *explain.Explainer, opts explain.AnalyzerOptions) *Summary {
	summary := &Summary{Results: make([]Result, 0, len(s.Cases))}
	start := time.Now()

	env, envErr := newAssertionEnv()

	for _, c := range s.Cases {
		result := Result{Suite: s.Name, Case: c.Name}
		caseStart := time.Now()

		if envErr != nil {
			result.Error = envErr
		} else {
			runCase(ctx, explainer, opts, env, c, &result)
		}

		result.Duration = time.Since(caseStart)

		summary.Total++
		if result.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}

		summary.Results = append(summary.Results, result)
	}

	summary.TotalDuration = time.Since(start)

	return summary
}

func runCase(ctx context.Context, explainer *explain.Explainer, opts explain.AnalyzerOptions, env *cel.Env, c Case, result *Result) {
	plan, err := c.explain(ctx, explainer)
	if err != nil {
		result.Error = err
		return
	}

	result.Plan = plan
	eval := explain.Analyze(plan, opts)
	result.Warnings = eval.Warnings

	if c.Expect != nil && !slices.Equal(c.Expect, plan.Details()) {
		result.Mismatch = formatPlanDiff(c.Expect, plan.Details())
	}

	vars := assertionVars(plan, eval)
	for _, expression := range c.Assert {
		ok, err := evaluateAssertion(env, expression, vars)
		if err != nil {
			result.Error = err
			return
		}

		if !ok {
			result.FailedAssertions = append(result.FailedAssertions, expression)
		}
	}
}

func (c *Case) explain(ctx context.Context, explainer *explain.Explainer) (explain.Plan, error) {
	switch {
	case c.Select != nil:
		return explainer.ExplainSelect(ctx, c.Select.SelectStatement(c.Args))
	case c.Update != nil:
		stmt, err := c.Update.UpdateStatement(c.Args)
		if err != nil {
			return nil, err
		}

		return explainer.ExplainUpdate(ctx, stmt)
	default:
		return explainer.ExplainSQL(ctx, c.SQL, c.Args...)
	}
}

// formatPlanDiff lists the differing steps as "-expected" / "+actual" lines.
func formatPlanDiff(expected, actual []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: expected %d steps, got %d\n", ErrPlanMismatch, len(expected), len(actual))

	for i := range max(len(expected), len(actual)) {
		var want, got string

		hasWant, hasGot := i < len(expected), i < len(actual)
		if hasWant {
			want = expected[i]
		}

		if hasGot {
			got = actual[i]
		}

		if hasWant && hasGot && want == got {
			fmt.Fprintf(&b, "   %s\n", want)
			continue
		}

		if hasWant {
			fmt.Fprintf(&b, " - %s\n", want)
		}

		if hasGot {
			fmt.Fprintf(&b, " + %s\n", got)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
