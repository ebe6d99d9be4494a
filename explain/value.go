package explain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the tag of an assignment Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the right hand side of an UPDATE assignment. The zero Value is NULL.
type Value struct {
	kind Kind
	b    bool
	text string // number literal for KindNumber, raw text for KindText
}

// Null returns the SQL NULL value.
func Null() Value { return Value{} }

// Bool returns a boolean value, rendered as 1 or 0.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Float returns a floating point value. It renders in plain decimal notation, never with an exponent.
// NaN and infinities have no SQL literal and become NULL; ValueOf rejects them instead.
func Float(f float64) Value {
	if !isFinite(f) {
		return Null()
	}

	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Decimal returns an arbitrary precision numeric value.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindNumber, text: d.String()}
}

// Text returns a string value, rendered single-quoted.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// SQL renders v as a SQL literal.
// Embedded single quotes in text are doubled so the literal stays valid.
func (v Value) SQL() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		if v.b {
			return "1"
		}

		return "0"
	case KindNumber:
		return v.text
	case KindText:
		return "'" + strings.ReplaceAll(v.text, "'", "''") + "'"
	default:
		panic(fmt.Sprintf("explain: unknown value kind %d", v.kind))
	}
}

func (v Value) String() string {
	return v.SQL()
}

// Interface returns v as a bind argument: nil, bool, int64, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}

		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}

		return v.text
	case KindText:
		return v.text
	default:
		return nil
	}
}

// ValueOf maps a decoded Go value (from YAML, JSON or flags) onto a Value.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Value{kind: KindNumber, text: strconv.FormatUint(uint64(t), 10)}, nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Value{kind: KindNumber, text: strconv.FormatUint(t, 10)}, nil
	case float32:
		if !isFinite(float64(t)) {
			return Value{}, fmt.Errorf("%w: non-finite float %v", ErrUnsupportedValue, t)
		}

		return Value{kind: KindNumber, text: strconv.FormatFloat(float64(t), 'f', -1, 32)}, nil
	case float64:
		if !isFinite(t) {
			return Value{}, fmt.Errorf("%w: non-finite float %v", ErrUnsupportedValue, t)
		}

		return Float(t), nil
	case decimal.Decimal:
		return Decimal(t), nil
	case *decimal.Decimal:
		if t == nil {
			return Null(), nil
		}

		return Decimal(*t), nil
	case string:
		return Text(t), nil
	case []byte:
		return Text(string(t)), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, x)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseValue interprets a command line literal: NULL, true/false, a number,
// a 'quoted' string, or otherwise plain text. Surrounding whitespace is dropped;
// quote the literal to keep it.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)

	switch {
	case strings.EqualFold(trimmed, "null"):
		return Null()
	case strings.EqualFold(trimmed, "true"):
		return Bool(true)
	case strings.EqualFold(trimmed, "false"):
		return Bool(false)
	}

	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		return Text(strings.ReplaceAll(trimmed[1:len(trimmed)-1], "''", "'"))
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}

	if d, err := decimal.NewFromString(trimmed); err == nil {
		return Decimal(d)
	}

	return Text(trimmed)
}

// Assignment is one "column = value" pair of an UPDATE's SET clause.
type Assignment struct {
	Column string
	Value  Value
}

// Set is a shorthand for building an Assignment.
func Set(column string, value Value) Assignment {
	return Assignment{Column: column, Value: value}
}
