package xpjson

// stringStorage is the discriminant for how a String Value's bytes are kept:
// inline inside the Value, on an independently-owned heap buffer, or
// borrowed (a view into memory the caller owns, typically a slice of the
// original parse buffer).
//
// This is the three-way "small-string / owned / borrow" split called for by
// the design notes: the distinction is observable through materialization
// cost, not through Kind.
type stringStorage int8

const (
	stringInline stringStorage = iota
	stringOwned
	stringBorrow
)

// maxInline is the largest string length kept inline in a stringVal without
// a separate heap allocation.
const maxInline = 15

// stringVal is the payload of a String Value. Exactly one of the inline
// buffer, owned, or borrow fields is meaningful, selected by storage.
type stringVal struct {
	storage     stringStorage
	inline      [maxInline]byte
	inlineLen   uint8
	owned       string
	borrow      string
	needsEscape bool
}

// newInlineOrOwnedString builds a stringVal from s, choosing inline storage
// for short strings and an owned copy otherwise. needsEscape is computed by
// a single scan, as the data model requires.
func newInlineOrOwnedString(s string) stringVal {
	sv := stringVal{needsEscape: stringNeedsEscape(s)}
	if len(s) <= maxInline {
		sv.storage = stringInline
		sv.inlineLen = uint8(len(s))
		copy(sv.inline[:], s)
		return sv
	}
	sv.storage = stringOwned
	sv.owned = s
	return sv
}

// newBorrowString builds a stringVal that views s without copying. The
// caller must keep the memory backing s alive for at least as long as the
// resulting Value, since s is typically a slice of a larger input buffer
// that is not independently retained.
func newBorrowString(s string) stringVal {
	return stringVal{
		storage:     stringBorrow,
		borrow:      s,
		needsEscape: stringNeedsEscape(s),
	}
}

// String returns the string content regardless of storage mode. It does not
// allocate for owned or borrow storage; inline content is copied out into a
// new string.
func (sv *stringVal) String() string {
	switch sv.storage {
	case stringInline:
		return string(sv.inline[:sv.inlineLen])
	case stringBorrow:
		return sv.borrow
	default:
		return sv.owned
	}
}

// Len returns the length of the string content in bytes.
func (sv *stringVal) Len() int {
	switch sv.storage {
	case stringInline:
		return int(sv.inlineLen)
	case stringBorrow:
		return len(sv.borrow)
	default:
		return len(sv.owned)
	}
}

// materialize ensures the stringVal is in Owned storage, copying out of
// Inline/Borrow storage if needed. Any caller about to hand out a mutable
// reference to the string bytes, or about to mutate them, must call this
// first — per the data model, Inline and Borrow storage are read-only views.
//
// The design notes flag the legacy pattern of materializing lazily inside a
// const accessor as a thread-safety hazard; this package instead performs
// materialization only from the non-const accessors (see
// (*Value).AsStringMut), never from a read-only path, so const accessors
// stay side-effect-free.
func (sv *stringVal) materialize() {
	if sv.storage == stringOwned {
		return
	}
	sv.owned = sv.String()
	sv.storage = stringOwned
	sv.inlineLen = 0
}

// stringNeedsEscape reports whether s contains any character that requires
// escaping on JSON output: a control character, '"', '\\', or '/'.
func stringNeedsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' || c == '/' {
			return true
		}
	}
	return false
}
