// Package xpjson is a small, header-only-style JSON codec: a tagged Value
// representation plus a streaming parser and a serializer that operate
// directly on it. It is meant to be embedded in programs that need to read,
// build, and emit JSON without pulling in a full framework.
//
// Values are built either by parsing (Parse, ParseString, ParseBytes) or
// programmatically (NewString, NewInt, NewObjectValue, ...), inspected with
// the As* accessors and Get, mutated in place through indexing, and written
// back out with Serialize or (*Value).Write.
package xpjson
