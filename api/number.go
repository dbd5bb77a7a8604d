package api

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Float is a float64 request field that also accepts a numeric string.
type Float float64

// Integer is an int request field that also accepts an integral float
// (1800.0) or a numeric string ("1800").
type Integer int

var (
	floatType = reflect.TypeOf(float64(0))
	intType   = reflect.TypeOf(int(0))
)

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		return typeError(data, floatType)
	}
	*f = Float(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Integer) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return typeError(data, intType)
	}
	*n = Integer(v)
	return nil
}

// parseNumber reads a finite number from a JSON number or a JSON string
// holding one.
func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	} else if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// typeError is filled in with the field name by the json decoder.
func typeError(data []byte, t reflect.Type) error {
	value := "number"
	switch {
	case len(data) > 0 && data[0] == '"':
		value = "string"
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		value = "bool"
	case len(data) > 0 && data[0] == '{':
		value = "object"
	case len(data) > 0 && data[0] == '[':
		value = "array"
	}
	return &json.UnmarshalTypeError{Value: value, Type: t}
}
