package xpjson

// Kind is the discriminant of a Value. Exactly one Kind is live on any given
// Value, and only the accessors matching that Kind may read its payload.
type Kind int8

// The seven JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
	numKinds
)

var kindStrings = [numKinds]string{
	"null",
	"boolean",
	"integer",
	"float",
	"string",
	"object",
	"array",
}

// String returns a human-readable name for k, or "<unknown>" if k is not one
// of the defined Kinds.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}
