package xpjson

import "strings"

// Serializer recursively walks a Value and appends its JSON representation
// to an internal buffer. It never overwrites previously written bytes;
// callers may call Grow first to avoid reallocation on large trees,
// mirroring xpjson's reserve-capacity writer and rsms-go-json's Builder
// embedding its own buffer type for the same reason.
//
// The zero Serializer writes into its own buffer. A Serializer built via
// Write(*Value, *strings.Builder)'s internal use instead targets a caller's
// strings.Builder directly through buf, since strings.Builder panics if
// copied by value after its first write.
type Serializer struct {
	own strings.Builder
	buf *strings.Builder
}

// builder returns the strings.Builder this serializer writes to, lazily
// falling back to its own.
func (s *Serializer) builder() *strings.Builder {
	if s.buf == nil {
		s.buf = &s.own
	}
	return s.buf
}

// Grow reserves at least n more bytes of capacity in the output buffer.
func (s *Serializer) Grow(n int) { s.builder().Grow(n) }

// String returns the JSON text written so far.
func (s *Serializer) String() string { return s.builder().String() }

// Reset clears the serializer's buffer for reuse.
func (s *Serializer) Reset() { s.builder().Reset() }

// Write appends the JSON representation of v to s's buffer.
func (s *Serializer) Write(v *Value) error {
	buf := s.builder()
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt:
		buf.WriteString(formatInt(v.i))
	case KindFloat:
		str, err := formatFloat(v.f)
		if err != nil {
			return err
		}
		buf.WriteString(str)
	case KindString:
		s.writeString(&v.s)
	case KindObject:
		return s.writeObject(v.obj)
	case KindArray:
		return s.writeArray(v.arr)
	default:
		return newTypeMismatch(KindNull, v.kind)
	}
	return nil
}

// writeString writes a quoted JSON string body for sv, escaping only when
// needsEscape is set — the fast path the data model's cached flag exists
// for.
func (s *Serializer) writeString(sv *stringVal) {
	buf := s.builder()
	buf.WriteByte('"')
	if sv.needsEscape {
		escapeString(buf, sv.String())
	} else {
		buf.WriteString(sv.String())
	}
	buf.WriteByte('"')
}

func (s *Serializer) writeKey(key string) {
	sv := newInlineOrOwnedString(key)
	s.writeString(&sv)
}

func (s *Serializer) writeObject(o *Object) error {
	buf := s.builder()
	buf.WriteByte('{')
	first := true
	var rangeErr error
	o.Range(func(key string, val *Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		s.writeKey(key)
		buf.WriteByte(':')
		if err := s.Write(val); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	buf.WriteByte('}')
	return nil
}

func (s *Serializer) writeArray(a *Array) error {
	buf := s.builder()
	buf.WriteByte('[')
	for i, val := range a.Values() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := s.Write(val); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// Write appends v's JSON representation to an externally managed
// strings.Builder; most callers want Serialize instead.
func (v *Value) Write(buf *strings.Builder) error {
	s := Serializer{buf: buf}
	return s.Write(v)
}

// Serialize returns the JSON text for v.
func Serialize(v *Value) (string, error) {
	var s Serializer
	if err := s.Write(v); err != nil {
		return "", err
	}
	return s.String(), nil
}
