package xpjson

import "strconv"

// Value is the tagged-union in-memory JSON node. Exactly one payload field
// is live, selected by kind; accessors that don't match kind fail with
// TypeMismatch, except that the mutable forms auto-promote a Null receiver.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    stringVal
	obj  *Object
	arr  *Array
}

// NewNull returns a Value of Kind Null.
func NewNull() *Value { return &Value{kind: KindNull} }

// NewBool returns a Value of Kind Bool holding v.
func NewBool(v bool) *Value { return &Value{kind: KindBool, b: v} }

// NewInt returns a Value of Kind Int holding v.
func NewInt(v int64) *Value { return &Value{kind: KindInt, i: v} }

// NewFloat returns a Value of Kind Float holding v.
func NewFloat(v float64) *Value { return &Value{kind: KindFloat, f: v} }

// NewString returns a Value of Kind String holding an inline or owned copy
// of s, depending on length.
func NewString(s string) *Value {
	return &Value{kind: KindString, s: newInlineOrOwnedString(s)}
}

// NewBorrowedString returns a Value of Kind String that views s without
// copying. The caller must keep the memory backing s alive for at least as
// long as the returned Value.
func NewBorrowedString(s string) *Value {
	return &Value{kind: KindString, s: newBorrowString(s)}
}

// NewObjectValue returns a Value of Kind Object wrapping obj. A nil obj is
// treated as an empty Object.
func NewObjectValue(obj *Object) *Value {
	if obj == nil {
		obj = NewObject()
	}
	return &Value{kind: KindObject, obj: obj}
}

// NewArrayValue returns a Value of Kind Array wrapping arr. A nil arr is
// treated as an empty Array.
func NewArrayValue(arr *Array) *Value {
	if arr == nil {
		arr = NewArray()
	}
	return &Value{kind: KindArray, arr: arr}
}

// NewOfKind returns a Value of the given kind with a zero/empty payload.
func NewOfKind(k Kind) *Value {
	v := &Value{kind: k}
	v.zeroPayload()
	return v
}

func (v *Value) zeroPayload() {
	switch v.kind {
	case KindObject:
		v.obj = NewObject()
	case KindArray:
		v.arr = NewArray()
	case KindString:
		v.s = stringVal{}
	}
}

// Kind returns the discriminant of v.
func (v *Value) Kind() Kind { return v.kind }

// Clear reinitializes v in place as newKind with an empty payload,
// releasing any owned storage not compatible with newKind. newKind defaults
// to Null if omitted.
func (v *Value) Clear(newKind ...Kind) {
	k := KindNull
	if len(newKind) > 0 {
		k = newKind[0]
	}
	*v = Value{kind: k}
	v.zeroPayload()
}

// Clone returns a deep copy of v. A borrowed string remains borrowed,
// pointing at the same underlying memory as the original: cloning copies
// the tree structure, not the bytes a borrow view already shares.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := *v
	switch v.kind {
	case KindObject:
		out.obj = v.obj.Clone()
	case KindArray:
		out.arr = v.arr.Clone()
	}
	return &out
}

// Swap exchanges the payloads of v and other in place, in O(1). This is the
// primitive move construction/assignment in xpjson.hpp is built from
// (operator=(ValueT&&)).
func (v *Value) Swap(other *Value) {
	*v, *other = *other, *v
}

// Move transfers ownership of other's payload into v and resets other to
// Null, leaving other in the same moved-from state xpjson's move assignment
// does.
func (v *Value) Move(other *Value) {
	v.Swap(other)
	other.Clear()
}

// ---- typed reference accessors ----
//
// The *Mut forms promote a Null receiver to the requested Kind (with a
// zero/empty payload) and return a mutable reference; they fail with
// TypeMismatch if the receiver is a non-Null Kind that disagrees. The plain
// (const) forms never mutate the receiver and fail with TypeMismatch
// whenever the Kind does not already match.

func (v *Value) promote(k Kind) error {
	if v.kind == k {
		return nil
	}
	if v.kind != KindNull {
		return newTypeMismatch(k, v.kind)
	}
	v.kind = k
	v.zeroPayload()
	return nil
}

// AsBool returns v's boolean value. Fails with TypeMismatch if v is not Bool.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, newTypeMismatch(KindBool, v.kind)
	}
	return v.b, nil
}

// AsBoolMut promotes a Null v to Bool(false) and returns a mutable pointer
// to its payload.
func (v *Value) AsBoolMut() (*bool, error) {
	if err := v.promote(KindBool); err != nil {
		return nil, err
	}
	return &v.b, nil
}

// AsInt returns v's integer value. Fails with TypeMismatch if v is not Int.
func (v *Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, newTypeMismatch(KindInt, v.kind)
	}
	return v.i, nil
}

// AsIntMut promotes a Null v to Int(0) and returns a mutable pointer to its
// payload.
func (v *Value) AsIntMut() (*int64, error) {
	if err := v.promote(KindInt); err != nil {
		return nil, err
	}
	return &v.i, nil
}

// AsFloat returns v's float value. Fails with TypeMismatch if v is not
// Float.
func (v *Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, newTypeMismatch(KindFloat, v.kind)
	}
	return v.f, nil
}

// AsFloatMut promotes a Null v to Float(0) and returns a mutable pointer to
// its payload.
func (v *Value) AsFloatMut() (*float64, error) {
	if err := v.promote(KindFloat); err != nil {
		return nil, err
	}
	return &v.f, nil
}

// AsString returns v's string content. Fails with TypeMismatch if v is not
// String. It never mutates v, regardless of storage mode (see the design
// notes on avoiding self-mutating const accessors).
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", newTypeMismatch(KindString, v.kind)
	}
	return v.s.String(), nil
}

// AsStringMut promotes a Null v to an empty String and materializes its
// storage to Owned (since the caller intends to mutate it), returning a
// mutable pointer to the underlying Go string. Any existing Inline/Borrow
// storage is eagerly materialized into Owned here, and needsEscape is
// conservatively set to true since the caller may alter the bytes.
func (v *Value) AsStringMut() (*string, error) {
	if err := v.promote(KindString); err != nil {
		return nil, err
	}
	v.s.materialize()
	v.s.needsEscape = true
	return &v.s.owned, nil
}

// AsObject returns v's Object. Fails with TypeMismatch if v is not Object.
func (v *Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, newTypeMismatch(KindObject, v.kind)
	}
	return v.obj, nil
}

// AsObjectMut promotes a Null v to an empty Object and returns it.
func (v *Value) AsObjectMut() (*Object, error) {
	if err := v.promote(KindObject); err != nil {
		return nil, err
	}
	return v.obj, nil
}

// AsArray returns v's Array. Fails with TypeMismatch if v is not Array.
func (v *Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, newTypeMismatch(KindArray, v.kind)
	}
	return v.arr, nil
}

// AsArrayMut promotes a Null v to an empty Array and returns it.
func (v *Value) AsArrayMut() (*Array, error) {
	if err := v.promote(KindArray); err != nil {
		return nil, err
	}
	return v.arr, nil
}

// CStr and Length give String values pointer/length-style access regardless
// of storage mode, matching xpjson's c_str()/length(). CStr returns the Go
// string itself (Go strings are already a read-only pointer+length view, so
// there is no separate NUL-terminated representation to expose).
func (v *Value) CStr() (string, error) {
	return v.AsString()
}

// Length returns the byte length of a String value. Fails with TypeMismatch
// if v is not String.
func (v *Value) Length() (int, error) {
	if v.kind != KindString {
		return 0, newTypeMismatch(KindString, v.kind)
	}
	return v.s.Len(), nil
}

// ---- indexing ----

// Index returns the element at i, auto-promoting a Null receiver to Array
// and auto-extending it with Null fillers if i is past the current length.
// Fails with IndexUnderflow on a negative i, or TypeMismatch if v is a
// non-Null Kind other than Array.
func (v *Value) Index(i int) (*Value, error) {
	if i < 0 {
		return nil, ErrIndexUnderflow
	}
	if err := v.promote(KindArray); err != nil {
		return nil, err
	}
	if i >= v.arr.Len() {
		v.arr.Set(i, NewNull())
	}
	return v.arr.Get(i), nil
}

// SetIndex assigns val to index i of v, with the same auto-promotion and
// auto-extension rules as Index.
func (v *Value) SetIndex(i int, val *Value) error {
	if i < 0 {
		return ErrIndexUnderflow
	}
	if err := v.promote(KindArray); err != nil {
		return err
	}
	v.arr.Set(i, val)
	return nil
}

// Field returns the value stored under key, auto-promoting a Null receiver
// to Object. Fails with TypeMismatch if v is a non-Null Kind other than
// Object. A missing key yields a fresh Null Value (not an error), so chained
// lookups on unknown paths fail at the final type assertion instead of at
// every intermediate step.
func (v *Value) Field(key string) (*Value, error) {
	if err := v.promote(KindObject); err != nil {
		return nil, err
	}
	if val, ok := v.obj.Get(key); ok {
		return val, nil
	}
	return NewNull(), nil
}

// SetField assigns val under key in v's Object, auto-promoting a Null
// receiver to Object.
func (v *Value) SetField(key string, val *Value) error {
	if err := v.promote(KindObject); err != nil {
		return err
	}
	v.obj.Set(key, val)
	return nil
}

// ---- cast operators ----
//
// These are const-only convenience casts equivalent to the As* accessors,
// mirroring xpjson's operator T() overloads; they never promote Null.

// Bool is a const cast to bool; it fails with TypeMismatch if v is not Bool.
func (v *Value) Bool() (bool, error) { return v.AsBool() }

// Int is a const cast to int64; it fails with TypeMismatch if v is not Int.
func (v *Value) Int() (int64, error) { return v.AsInt() }

// Float is a const cast to float64; it fails with TypeMismatch if v is not
// Float.
func (v *Value) Float() (float64, error) { return v.AsFloat() }

// Str is a const cast to string; it fails with TypeMismatch if v is not
// String.
func (v *Value) Str() (string, error) { return v.AsString() }

// ObjVal is a const cast to *Object; it fails with TypeMismatch if v is not
// Object.
func (v *Value) ObjVal() (*Object, error) { return v.AsObject() }

// ArrVal is a const cast to *Array; it fails with TypeMismatch if v is not
// Array.
func (v *Value) ArrVal() (*Array, error) { return v.AsArray() }

// goString renders v using Go-syntax-adjacent debug formatting (NOT valid
// JSON output; use Serialize for that). Kept under an unexported name since
// %v/fmt.Stringer already covers this via the exported String method below.
func (v *Value) goString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return formatInt(v.i)
	case KindFloat:
		s, err := formatFloat(v.f)
		if err != nil {
			return "NaN"
		}
		return s
	case KindString:
		return strconv.Quote(v.s.String())
	case KindArray:
		str := "["
		for i, e := range v.arr.Values() {
			if i > 0 {
				str += ", "
			}
			str += e.goString()
		}
		return str + "]"
	case KindObject:
		str := "{"
		first := true
		v.obj.Range(func(k string, e *Value) bool {
			if !first {
				str += ", "
			}
			first = false
			str += strconv.Quote(k) + ": " + e.goString()
			return true
		})
		return str + "}"
	default:
		return "<unknown>"
	}
}

// String implements fmt.Stringer with a debug rendering of v. This is NOT
// valid JSON output — use Serialize or (*Value).Write for that.
func (v *Value) String() string { return v.goString() }
