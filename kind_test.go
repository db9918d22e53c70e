package xpjson

import (
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	for _, test := range []struct {
		input    Kind
		expected string
	}{
		{KindNull, "null"},
		{KindBool, "boolean"},
		{KindInt, "integer"},
		{KindFloat, "float"},
		{KindString, "string"},
		{KindObject, "object"},
		{KindArray, "array"},
		{numKinds, "<unknown>"},
		{100, "<unknown>"},
		{-1, "<unknown>"},
	} {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if actual := test.input.String(); actual != test.expected {
				t.Errorf("expected %v got %v", test.expected, actual)
			}
		})
	}
}
