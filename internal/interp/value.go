package interp

import (
	"fmt"
	"math"
	"strconv"
)

// Lox values are represented by Go values:
//
//	nil       nil
//	boolean   bool
//	number    float64
//	string    string
//	function  *Function or *Native
//	class     *Class
//	instance  *Instance

// IsTruthy reports the truthiness of v: nil and false are false,
// everything else is true.
func IsTruthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// IsEqual reports whether a and b are equal. It never fails: values of
// different types are unequal, numbers and strings compare by value and
// functions, classes and instances by identity.
func IsEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// Stringify returns the printed form of v.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// formatNumber prints integral numbers without a fractional part and other
// numbers in their shortest exact form.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
