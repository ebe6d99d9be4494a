package explain

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestValueSQL(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
		kind     Kind
	}{
		{"zero value is null", Value{}, "NULL", KindNull},
		{"null", Null(), "NULL", KindNull},
		{"true", Bool(true), "1", KindBool},
		{"false", Bool(false), "0", KindBool},
		{"int", Int(42), "42", KindNumber},
		{"negative int", Int(-7), "-7", KindNumber},
		{"float", Float(0.25), "0.25", KindNumber},
		{"large float has no exponent", Float(1e21), "1000000000000000000000", KindNumber},
		{"NaN float is null", Float(math.NaN()), "NULL", KindNull},
		{"infinite float is null", Float(math.Inf(-1)), "NULL", KindNull},
		{"decimal", Decimal(decimal.RequireFromString("3.14159")), "3.14159", KindNumber},
		{"text", Text("hello"), "'hello'", KindText},
		{"numeric looking text stays quoted", Text("1"), "'1'", KindText},
		{"embedded quote is doubled", Text("O'Brien"), "'O''Brien'", KindText},
		{"empty text", Text(""), "''", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.SQL())
			assert.Equal(t, tt.kind, tt.value.Kind())
		})
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "NULL"},
		{true, "1"},
		{false, "0"},
		{int(3), "3"},
		{int8(-3), "-3"},
		{int32(12), "12"},
		{int64(math.MaxInt64), "9223372036854775807"},
		{uint64(math.MaxUint64), "18446744073709551615"},
		{uint8(255), "255"},
		{float32(0.5), "0.5"},
		{float64(2.75), "2.75"},
		{decimal.NewFromInt(99), "99"},
		{"abc", "'abc'"},
		{[]byte("raw"), "'raw'"},
		{Bool(true), "1"},
	}

	for _, tt := range tests {
		v, err := ValueOf(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, v.SQL(), "input %#v", tt.input)
	}

	var nilDecimal *decimal.Decimal

	v, err := ValueOf(nilDecimal)
	assert.NoError(t, err)
	assert.Equal(t, KindNull, v.Kind())

	_, err = ValueOf(struct{}{})
	assert.IsError(t, err, ErrUnsupportedValue)

	_, err = ValueOf([]int{1})
	assert.IsError(t, err, ErrUnsupportedValue)

	for _, f := range []any{math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		_, err = ValueOf(f)
		assert.IsError(t, err, ErrUnsupportedValue)
	}
}

func TestValueRenderingDependsOnKindOnly(t *testing.T) {
	assert.Equal(t, Int(1).SQL(), Bool(true).SQL())
	assert.NotEqual(t, Int(1).SQL(), Text("1").SQL())

	a, err := ValueOf(int16(5))
	assert.NoError(t, err)
	b, err := ValueOf(uint32(5))
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"NULL", Null()},
		{"null", Null()},
		{"true", Bool(true)},
		{"FALSE", Bool(false)},
		{"1", Int(1)},
		{"-15", Int(-15)},
		{"1.5", Decimal(decimal.RequireFromString("1.5"))},
		{"'1'", Text("1")},
		{"''", Text("")},
		{"'it''s'", Text("it's")},
		{"hello", Text("hello")},
		{"1 OR 1=1", Text("1 OR 1=1")},
		{" abc ", Text("abc")},
		{" 1 ", Int(1)},
		{"' abc '", Text(" abc ")},
		{"NaN", Text("NaN")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected.SQL(), ParseValue(tt.input).SQL())
			assert.Equal(t, tt.expected.Kind(), ParseValue(tt.input).Kind())
		})
	}
}

func TestValueInterface(t *testing.T) {
	assert.Equal(t, any(nil), Null().Interface())
	assert.Equal(t, any(true), Bool(true).Interface())
	assert.Equal(t, any(int64(42)), Int(42).Interface())
	assert.Equal(t, any(1.5), ParseValue("1.5").Interface())
	assert.Equal(t, any(1e20), ParseValue("100000000000000000000").Interface())
	assert.Equal(t, any("abc"), Text("abc").Interface())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
