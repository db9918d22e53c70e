package xpjson

import (
	"math"
)

// floatEpsilon bounds the absolute difference allowed between two Float
// values for them to compare equal.
const floatEpsilon = 1e-9

// Equal reports whether v and other hold the same value: Values of
// different Kind are never equal, and same-Kind Values compare by content,
// with Float compared within floatEpsilon and Object/Array compared
// structurally (element by element, key by key).
//
// go-cmp (wired in from _examples/rhogenson-ccl's stack; see equality_test.go)
// auto-detects this method and uses it instead of reflecting into Value's
// unexported fields, so deep-comparing *Value trees in tests goes through
// the codec's own equality rather than a generic field-by-field diff.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return math.Abs(v.f-other.f) < floatEpsilon
	case KindString:
		return v.s.String() == other.s.String()
	case KindArray:
		a, b := v.arr.Values(), other.arr.Values()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		equal := true
		v.obj.Range(func(key string, val *Value) bool {
			ov, ok := other.obj.Get(key)
			if !ok || !val.Equal(ov) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		return false
	}
}

// EqualBool reports whether v is a Bool Value equal to b. Comparing a Value
// against a primitive is equivalent to comparing it against a Value built
// from that primitive.
func (v *Value) EqualBool(b bool) bool { return v.Equal(NewBool(b)) }

// EqualInt reports whether v is an Int Value equal to i.
func (v *Value) EqualInt(i int64) bool { return v.Equal(NewInt(i)) }

// EqualFloat reports whether v is a Float Value equal to f (within
// floatEpsilon).
func (v *Value) EqualFloat(f float64) bool { return v.Equal(NewFloat(f)) }

// EqualString reports whether v is a String Value equal to s.
func (v *Value) EqualString(s string) bool { return v.Equal(NewString(s)) }

// number is the set of Go types the generic coercion in Get can target.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Get returns v coerced to T: Null yields def; Bool, Int, Float, and String
// sources coerce by the usual JSON rules, falling back to def only when a
// String's content doesn't parse as the requested type. T must be bool, a
// numeric type, or string.
//
// An Object or Array source has no place in that table at all — xpjson's
// internal_type_casting raises a hard assertion rather than inventing a
// default for it (xpjson.hpp:996-1017), so Get panics with a
// TypeMismatchError in that case instead of silently returning def the way
// an unparsable String would. Callers that might hand Get a structural
// Value and want an error instead of a panic should check v.Kind() first.
func Get[T bool | number | string](v *Value, def T) T {
	if v == nil || v.kind == KindNull {
		return def
	}
	if v.kind == KindObject || v.kind == KindArray {
		panic(newTypeMismatch(expectedKindFor(def), v.kind))
	}
	switch any(def).(type) {
	case bool:
		b, ok := coerceToBool(v)
		if !ok {
			return def
		}
		return any(b).(T)
	case string:
		s, ok := coerceToString(v)
		if !ok {
			return def
		}
		return any(s).(T)
	default:
		f, ok := coerceToFloat(v)
		if !ok {
			return def
		}
		return numberAs[T](f)
	}
}

// GetField returns the per-key coercion of v's Object field named key, or
// def if v is not an Object or the key is absent. It can panic the same way
// Get does, if the field named key holds an Object or Array.
func GetField[T bool | number | string](v *Value, key string, def T) T {
	if v == nil || v.kind != KindObject {
		return def
	}
	val, ok := v.obj.Get(key)
	if !ok {
		return def
	}
	return Get(val, def)
}

// expectedKindFor reports the Kind Get's target type T corresponds to, for
// the TypeMismatchError it raises against an Object/Array source. Kind
// doesn't distinguish between the numeric Go types number permits, so every
// numeric T is reported as Float.
func expectedKindFor[T any](def T) Kind {
	switch any(def).(type) {
	case bool:
		return KindBool
	case string:
		return KindString
	default:
		return KindFloat
	}
}

func coerceToBool(v *Value) (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt:
		return v.i != 0, true
	case KindFloat:
		return v.f != 0, true
	case KindString:
		if f, ok := coerceToFloat(v); ok {
			return f != 0, true
		}
		return false, false
	default:
		return false, false
	}
}

func coerceToFloat(v *Value) (float64, bool) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		s := v.s.String()
		switch s {
		case "true":
			return 1, true
		case "false":
			return 0, true
		}
		n, consumed, err := scanNumber(s, 0)
		if err != nil || consumed != len(s) {
			return 0, false
		}
		if n.isInt {
			return float64(n.intVal), true
		}
		return n.fltVal, true
	default:
		return 0, false
	}
}

func coerceToString(v *Value) (string, bool) {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true", true
		}
		return "false", true
	case KindInt:
		return formatInt(v.i), true
	case KindFloat:
		s, err := formatFloat(v.f)
		if err != nil {
			return "", false
		}
		return s, true
	case KindString:
		return v.s.String(), true
	default:
		return "", false
	}
}

// numberAs converts f to T via a plain numeric conversion. f is not
// range-checked; a value outside T's range converts as Go's own
// float-to-integer conversion does. T is constrained to number|bool|
// string by Get's signature but this helper is only reached for the number
// branch.
func numberAs[T any](f float64) T {
	var zero T
	switch any(zero).(type) {
	case int:
		return any(int(f)).(T)
	case int8:
		return any(int8(f)).(T)
	case int16:
		return any(int16(f)).(T)
	case int32:
		return any(int32(f)).(T)
	case int64:
		return any(int64(f)).(T)
	case uint:
		return any(uint(f)).(T)
	case uint8:
		return any(uint8(f)).(T)
	case uint16:
		return any(uint16(f)).(T)
	case uint32:
		return any(uint32(f)).(T)
	case uint64:
		return any(uint64(f)).(T)
	case float32:
		return any(float32(f)).(T)
	case float64:
		return any(f).(T)
	default:
		return zero
	}
}
