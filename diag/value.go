package diag

import (
	"fmt"
	"strconv"
)

// ValueKind is the closed set of scalar kinds a Value can carry.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindIdentifier
)

// Value is a small sum type over the scalar kinds reported in diagnostics.
// It exists purely for rendering: values never drive control flow. Two Values
// are equal only when both the kind and the payload match, so an integer 5
// never equates with the string "5".
type Value struct {
	kind ValueKind
	str  string
	num  int64
	fl   float64
	b    bool
}

// Absent marks a value that is not present at all.
func Absent() Value {
	return Value{kind: KindAbsent}
}

func String(v string) Value {
	return Value{kind: KindString, str: v}
}

func Int(v int) Value {
	return Value{kind: KindInt, num: int64(v)}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, fl: v}
}

func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Identifier wraps machine-readable identifiers such as linkIds, coding
// systems and URLs; they render quoted like strings but carry their own kind.
func Identifier(v string) Value {
	return Value{kind: KindIdentifier, str: v}
}

// ValueOf unwraps optional-like layers (nil interfaces, nil or non-nil
// pointers) until a concrete scalar is reached, or yields Absent when nothing
// is present. Anything outside the closed scalar set falls back to its
// fmt.Stringer or %v rendering as a string.
func ValueOf(v any) Value {
	switch value := v.(type) {
	case nil:
		return Absent()
	case Value:
		return value
	case string:
		return String(value)
	case int:
		return Int(value)
	case int32:
		return Int(int(value))
	case int64:
		return Value{kind: KindInt, num: value}
	case float64:
		return Float(value)
	case bool:
		return Bool(value)
	case *string:
		if value == nil {
			return Absent()
		}
		return ValueOf(*value)
	case *int:
		if value == nil {
			return Absent()
		}
		return ValueOf(*value)
	case *float64:
		if value == nil {
			return Absent()
		}
		return ValueOf(*value)
	case *bool:
		if value == nil {
			return Absent()
		}
		return ValueOf(*value)
	case fmt.Stringer:
		return String(value.String())
	default:
		return String(fmt.Sprintf("%v", value))
	}
}

// IsAbsent reports whether the value carries nothing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Kind returns the scalar kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Equal requires both the kind and the payload to match.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String renders the value for inclusion in a diagnostic message.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "absent"
	case KindString, KindIdentifier:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.fl, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "absent"
	}
}
