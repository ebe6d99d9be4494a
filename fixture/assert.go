package fixture

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/shibukawa/planexplain/explain"
)

var (
	// ErrAssertion wraps CEL compilation and evaluation failures.
	ErrAssertion = errors.New("fixture: assertion error")
	// ErrAssertionNotBool indicates an assertion whose result is not a bool.
	ErrAssertionNotBool = errors.New("fixture: assertion must evaluate to bool")
)

// newAssertionEnv declares the variables visible to assert expressions.
func newAssertionEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("plan", cel.ListType(cel.StringType)),
		cel.Variable("indexes", cel.ListType(cel.StringType)),
		cel.Variable("warnings", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create CEL environment: %w", ErrAssertion, err)
	}

	return env, nil
}

func assertionVars(plan explain.Plan, eval *explain.Evaluation) map[string]any {
	warnings := make([]string, 0, len(eval.Warnings))
	for _, w := range eval.Warnings {
		warnings = append(warnings, string(w.Kind))
	}

	indexes := plan.IndexesUsed()
	if indexes == nil {
		indexes = []string{}
	}

	return map[string]any{
		"plan":     plan.Details(),
		"indexes":  indexes,
		"warnings": warnings,
	}
}

// evaluateAssertion reports whether expression holds for vars.
func evaluateAssertion(env *cel.Env, expression string, vars map[string]any) (bool, error) {
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrAssertion, expression, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrAssertion, expression, err)
	}

	result, _, err := program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrAssertion, expression, err)
	}

	ok, isBool := result.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %s returned %T", ErrAssertionNotBool, expression, result.Value())
	}

	return ok, nil
}
