package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueFalsey(t *testing.T) {
	cases := []struct {
		name    string
		value   Value
		falsey  bool
	}{
		{"nil", nilValue(), true},
		{"false", boolValue(false), true},
		{"true", boolValue(true), false},
		{"zero", numberValue(0), false},
		{"empty string", objectValue(&Object{Type: ObjTypeString, Data: &ObjString{Chars: ""}}), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.falsey, tc.value.IsFalsey())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, nilValue().Equal(nilValue()))
	assert.True(t, numberValue(3).Equal(numberValue(3)))
	assert.False(t, numberValue(3).Equal(numberValue(4)))
	assert.False(t, numberValue(3).Equal(boolValue(false)))

	nan := numberValue(math.NaN())
	assert.False(t, nan.Equal(nan), "NaN must not equal itself")

	a := &Object{Type: ObjTypeString, Data: &ObjString{Chars: "hi"}}
	b := &Object{Type: ObjTypeString, Data: &ObjString{Chars: "hi"}}
	assert.False(t, objectValue(a).Equal(objectValue(b)), "distinct objects with equal content are not Equal without interning")
	assert.True(t, objectValue(a).Equal(objectValue(a)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "13", FormatNumber(13))
	assert.Equal(t, "1.5", FormatNumber(1.5))
	assert.Equal(t, "nan", FormatNumber(math.NaN()))
	assert.Equal(t, "inf", FormatNumber(math.Inf(1)))
	assert.Equal(t, "-inf", FormatNumber(math.Inf(-1)))
}

func TestValuePrint(t *testing.T) {
	assert.Equal(t, "nil", nilValue().String())
	assert.Equal(t, "true", boolValue(true).String())
	assert.Equal(t, "13", numberValue(13).String())
}
