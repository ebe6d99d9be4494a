package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/shibukawa/planexplain/explain"
)

var (
	// ErrInvalidFixture marks fixture files that failed to load.
	ErrInvalidFixture = errors.New("fixture: invalid fixture file")
	// ErrNoCases indicates a fixture file without any case.
	ErrNoCases = errors.New("fixture: no cases defined")
	// ErrEmptyCase indicates a case without sql, select or update.
	ErrEmptyCase = errors.New("fixture: case needs one of sql, select or update")
	// ErrAmbiguousCase indicates a case with more than one statement form.
	ErrAmbiguousCase = errors.New("fixture: case must define only one of sql, select or update")
	// ErrNoExpectation indicates a case with neither expect nor assert.
	ErrNoExpectation = errors.New("fixture: case needs expect or assert")
)

// Suite is one fixture file: optional schema statements and the cases that run against it.
type Suite struct {
	Name   string   `yaml:"name"`
	Schema []string `yaml:"schema"`
	Cases  []Case   `yaml:"cases"`
}

// Case describes one statement and the plan it must produce.
type Case struct {
	Name   string      `yaml:"name"`
	SQL    string      `yaml:"sql"`
	Select *SelectSpec `yaml:"select"`
	Update *UpdateSpec `yaml:"update"`
	Args   []any       `yaml:"args"`
	Expect []string    `yaml:"expect"`
	Assert []string    `yaml:"assert"`
}

// SelectSpec mirrors explain.SelectStatement in YAML.
type SelectSpec struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
	Where   string   `yaml:"where"`
	GroupBy string   `yaml:"group_by"`
	Having  string   `yaml:"having"`
	OrderBy string   `yaml:"order_by"`
	Limit   any      `yaml:"limit"` // number or clause text such as "10 OFFSET 5"
}

// UpdateSpec mirrors explain.UpdateStatement in YAML. Set keeps document order.
type UpdateSpec struct {
	Table string        `yaml:"table"`
	Set   yaml.MapSlice `yaml:"set"`
	Where string        `yaml:"where"`
}

// Load reads and validates a fixture file. The suite name defaults to the file name.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", path, err)
	}

	suite, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFixture, path, err)
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return suite, nil
}

// Parse decodes a fixture document, rejecting unknown keys.
func Parse(data []byte) (*Suite, error) {
	var suite Suite

	if err := yaml.UnmarshalWithOptions(data, &suite, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("fixture: failed to parse: %w", err)
	}

	if len(suite.Cases) == 0 {
		return nil, ErrNoCases
	}

	for i := range suite.Cases {
		c := &suite.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}

		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
	}

	return &suite, nil
}

func (c *Case) validate() error {
	forms := 0

	if c.SQL != "" {
		forms++
	}

	if c.Select != nil {
		forms++
	}

	if c.Update != nil {
		forms++
	}

	switch {
	case forms == 0:
		return ErrEmptyCase
	case forms > 1:
		return ErrAmbiguousCase
	case c.Expect == nil && len(c.Assert) == 0:
		return ErrNoExpectation
	}

	return nil
}

// SelectStatement converts the YAML form into an explain.SelectStatement.
func (s *SelectSpec) SelectStatement(args []any) explain.SelectStatement {
	stmt := explain.SelectStatement{
		Table:   s.Table,
		Columns: s.Columns,
		Where:   s.Where,
		Args:    args,
		GroupBy: s.GroupBy,
		Having:  s.Having,
		OrderBy: s.OrderBy,
	}

	if s.Limit != nil {
		stmt.Limit = fmt.Sprint(s.Limit)
	}

	return stmt
}

// UpdateStatement converts the YAML form into an explain.UpdateStatement, keeping set order.
func (u *UpdateSpec) UpdateStatement(args []any) (explain.UpdateStatement, error) {
	stmt := explain.UpdateStatement{
		Table: u.Table,
		Where: u.Where,
		Args:  args,
	}

	for _, item := range u.Set {
		value, err := explain.ValueOf(item.Value)
		if err != nil {
			return explain.UpdateStatement{}, fmt.Errorf("fixture: set %v: %w", item.Key, err)
		}

		stmt.Set = append(stmt.Set, explain.Set(fmt.Sprint(item.Key), value))
	}

	return stmt, nil
}
