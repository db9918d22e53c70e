package xpjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalarsInsideArray(t *testing.T) {
	v, n, err := Parse(`[null,2147483647,68719476735,1.3e-12,true,false,"test\"\\\/\b\f\n\r\t","test"]`)
	require.NoError(t, err)
	assert.Equal(t, 78, n)

	arr, err := v.AsArray()
	require.NoError(t, err)
	require.Equal(t, 8, arr.Len())
	assert.Equal(t, KindNull, arr.Get(0).Kind())

	i, err := arr.Get(1).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2147483647), i)

	i, err = arr.Get(2).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(68719476735), i)

	f, err := arr.Get(3).AsFloat()
	require.NoError(t, err)
	assert.InDelta(t, 1.3e-12, f, 1e-24)

	b, err := arr.Get(4).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = arr.Get(5).AsBool()
	require.NoError(t, err)
	assert.False(t, b)

	s, err := arr.Get(6).AsString()
	require.NoError(t, err)
	assert.Equal(t, "test\"\\/\b\f\n\r\t", s)

	s, err = arr.Get(7).AsString()
	require.NoError(t, err)
	assert.Equal(t, "test", s)
}

func TestParseWhitespaceAndNesting(t *testing.T) {
	input := "  \r\n\t{\"ver\":123,\r\n \"o\":\tnull,\"flag\":true,\"data\":[[0,0.1,1.3e2]\r\n]\t  }"
	v, _, err := Parse(input)
	require.NoError(t, err)

	ver, err := v.Field("ver")
	require.NoError(t, err)
	n, err := ver.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(123), n)

	o, err := v.Field("o")
	require.NoError(t, err)
	assert.Equal(t, KindNull, o.Kind())

	flag, err := v.Field("flag")
	require.NoError(t, err)
	b, err := flag.AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	data, err := v.Field("data")
	require.NoError(t, err)
	arr, err := data.AsArray()
	require.NoError(t, err)
	require.Equal(t, 1, arr.Len())
	inner, err := arr.Get(0).AsArray()
	require.NoError(t, err)
	require.Equal(t, 3, inner.Len())
	f, err := inner.Get(2).AsFloat()
	require.NoError(t, err)
	assert.InDelta(t, 130, f, 1e-9)
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	v, _, err := Parse(`{"a":1,"a":2}`)
	require.NoError(t, err)
	a, err := v.Field("a")
	require.NoError(t, err)
	n, err := a.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	obj, err := v.AsObject()
	require.NoError(t, err)
	assert.Equal(t, 1, obj.Len())
}

func TestParseConsumedCountIgnoresTrailingContent(t *testing.T) {
	v, n, err := Parse(`{"a":1} garbage`)
	require.NoError(t, err)
	assert.Equal(t, KindObject, v.Kind())
	assert.Equal(t, 7, n)
}

func TestParseRejectsTrailingCommaByDefault(t *testing.T) {
	_, _, err := Parse(`{"a":1,}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	_, _, err = Parse(`[1,2,]`)
	require.Error(t, err)
}

func TestParseWithTrailingCommaAccepted(t *testing.T) {
	v, _, err := Parse(`{"a":1,}`, WithTrailingComma())
	require.NoError(t, err)
	obj, _ := v.AsObject()
	assert.Equal(t, 1, obj.Len())

	v, _, err = Parse(`[1,2,]`, WithTrailingComma())
	require.NoError(t, err)
	arr, _ := v.AsArray()
	assert.Equal(t, 2, arr.Len())
}

func TestParseEmptyObjectAndArray(t *testing.T) {
	v, _, err := Parse(`{}`)
	require.NoError(t, err)
	obj, _ := v.AsObject()
	assert.Equal(t, 0, obj.Len())

	v, _, err = Parse(`[]`)
	require.NoError(t, err)
	arr, _ := v.AsArray()
	assert.Equal(t, 0, arr.Len())
}

func TestParseRejectsTopLevelScalar(t *testing.T) {
	_, _, err := Parse(`42`)
	require.Error(t, err)
}

func TestParseRejectsUnterminatedStructures(t *testing.T) {
	for _, input := range []string{`{"a":1`, `[1,2`, `{"a"`, `"unterminated`} {
		t.Run(input, func(t *testing.T) {
			_, _, err := Parse(input)
			require.Error(t, err)
		})
	}
}

func TestParseRejectsControlCharInString(t *testing.T) {
	_, _, err := Parse("[\"a\x01b\"]")
	require.Error(t, err)
}

func TestParseRejectsInvalidUTF8InString(t *testing.T) {
	_, _, err := Parse("[\"\xff\xfe\"]")
	require.Error(t, err)
}

func TestParseRejectsInvalidUTF8InBorrowedString(t *testing.T) {
	_, _, err := Parse("[\"\xff\xfe\"]", WithBorrow())
	require.Error(t, err)
}

func TestParseRejectsInvalidUTF8InObjectKey(t *testing.T) {
	_, _, err := Parse("{\"\xff\":1}")
	require.Error(t, err)
}

func TestParseBorrowMode(t *testing.T) {
	input := `{"name":"plain"}`
	v, _, err := Parse(input, WithBorrow())
	require.NoError(t, err)
	name, err := v.Field("name")
	require.NoError(t, err)
	assert.Equal(t, stringBorrow, name.s.storage)
	s, err := name.AsString()
	require.NoError(t, err)
	assert.Equal(t, "plain", s)
}

func TestParseBorrowModeFallsBackToOwnedWhenEscaped(t *testing.T) {
	input := `{"name":"a\nb"}`
	v, _, err := Parse(input, WithBorrow())
	require.NoError(t, err)
	name, err := v.Field("name")
	require.NoError(t, err)
	assert.NotEqual(t, stringBorrow, name.s.storage)
	s, err := name.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", s)
}

func TestParseStringAndParseBytesAgree(t *testing.T) {
	v1, n1, err1 := ParseString(`[1,2,3]`)
	v2, n2, err2 := ParseBytes([]byte(`[1,2,3]`))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, n1, n2)
	assert.True(t, v1.Equal(v2))
}

func TestReadReusesExistingValue(t *testing.T) {
	v := NewInt(5)
	_, err := v.Read(`{"x":1}`)
	require.NoError(t, err)
	assert.Equal(t, KindObject, v.Kind())
}

func TestReadOnErrorClearsValue(t *testing.T) {
	v := NewInt(5)
	_, err := v.Read(`{"x":}`)
	require.Error(t, err)
	assert.Equal(t, KindNull, v.Kind())
}

func TestReadNullBooleanNumberString(t *testing.T) {
	n, err := ReadNull("  null", 0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	b, n, err := ReadBoolean("true,", 0)
	require.NoError(t, err)
	assert.True(t, b)
	assert.Equal(t, 4, n)

	v, n, err := ReadNumber("42,", 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(42), i)
	assert.Equal(t, 2, n)

	s, n, err := ReadString(`"hi"`, 0)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	assert.Equal(t, 4, n)
}

func TestParseErrorReportsOffsetAndFragment(t *testing.T) {
	_, _, err := Parse(`{"a":}`)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 5, pe.Offset)
	assert.NotEmpty(t, pe.Fragment)
}
