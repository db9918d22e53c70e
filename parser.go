package xpjson

import "strings"

// parseState names the grammar position the iterative parser is in. Not
// every named state corresponds to a pause point in this implementation —
// ObjectKeyQuote is never entered, and ObjectKeyDone and ObjectColon are
// passed through within a single step call rather than being re-entered
// character by character, since keys and values are scanned atomically by
// dedicated scanners (readString, scanNumber, ...) rather than fed through
// the driver one byte at a time. They are kept as named constants so the
// state set mirrors the object/array grammar positions; a ParseError
// reports an offset and message, not the state.
type parseState int8

const (
	stateObjectOpen    parseState = iota // just saw '{' or ',' in object
	stateObjectKeyQuote                  // scanning a key's characters
	stateObjectKeyDone                   // scanned the key, awaiting ':'
	stateObjectColon                     // just saw ':', awaiting value
	stateObjectValue                     // just finished a value in object, awaiting ',' or '}'
	stateArrayOpen                       // just saw '['
	stateArrayElem                       // just finished an element, awaiting ',' or ']'
	stateArrayComma                      // just saw ',' in array
)

// ParseOption configures Parse/Value.Read.
type ParseOption func(*parseConfig)

type parseConfig struct {
	borrow         bool
	allowTrailingComma bool
}

// WithBorrow enables borrow mode: strings containing no escape-significant
// characters are installed as non-owning views over the input buffer
// instead of being copied. The caller must keep that buffer alive at least
// as long as the resulting Value.
func WithBorrow() ParseOption {
	return func(c *parseConfig) { c.borrow = true }
}

// WithTrailingComma relaxes the default no-trailing-comma grammar to accept
// a single trailing comma before the closing '}' or ']' of any object or
// array.
func WithTrailingComma() ParseOption {
	return func(c *parseConfig) { c.allowTrailingComma = true }
}

// frame is one entry of the parser's explicit container stack, replacing
// recursion with iteration so nesting depth is bounded only by memory, per
// the design notes' "iterative parse with explicit stack" guidance.
type frame struct {
	container  *Value
	isObject   bool
	state      parseState
	key        string
	afterComma bool
}

// parser holds the state of one Read call.
type parser struct {
	buf    string
	pos    int
	cfg    parseConfig
	stack  []*frame
}

// Parse reads a single top-level JSON object or array from buf, returning
// the parsed Value and the number of bytes consumed (the offset of the
// first character after the value's closing bracket). Trailing content
// after that point is ignored; callers can detect it by comparing the
// consumed count to len(buf).
func Parse(buf string, opts ...ParseOption) (*Value, int, error) {
	root := NewNull()
	n, err := root.Read(buf, opts...)
	return root, n, err
}

// ParseString is an alias for Parse, for parity with callers used to a
// type-specific entry point name.
func ParseString(s string, opts ...ParseOption) (*Value, int, error) {
	return Parse(s, opts...)
}

// ParseBytes parses b as JSON. The returned Value never borrows b's memory
// even if WithBorrow is passed, since a byte slice is copied to a string
// first; pass a string and WithBorrow together to actually avoid copying.
func ParseBytes(b []byte, opts ...ParseOption) (*Value, int, error) {
	return Parse(string(b), opts...)
}

// Read parses a single top-level JSON object or array from buf into v,
// overwriting v's prior content, and returns the number of bytes consumed.
// On error, v's state is undefined (the data model explicitly allows
// leaving it empty/Null); callers should not rely on partial results.
func (v *Value) Read(buf string, opts ...ParseOption) (int, error) {
	p := &parser{buf: buf}
	for _, o := range opts {
		o(&p.cfg)
	}

	n, err := p.run(v)
	if err != nil {
		v.Clear()
		return n, err
	}
	return n, nil
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\n', '\r', '\t':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errAt(offset int, msg string) error {
	return newParseError(p.buf, offset, msg)
}

// run drives the whole parse. v receives the parsed top-level value.
func (p *parser) run(v *Value) (int, error) {
	p.skipWhitespace()
	if p.pos >= len(p.buf) {
		return p.pos, p.errAt(p.pos, "unexpected end of input")
	}

	switch p.buf[p.pos] {
	case '{':
		v.Clear(KindObject)
		p.pos++
		p.stack = append(p.stack, &frame{container: v, isObject: true, state: stateObjectOpen})
	case '[':
		v.Clear(KindArray)
		p.pos++
		p.stack = append(p.stack, &frame{container: v, isObject: false, state: stateArrayOpen})
	default:
		return p.pos, p.errAt(p.pos, "expected '{' or '[' to start the top-level value")
	}

	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if err := p.step(top); err != nil {
			return p.pos, err
		}
	}
	return p.pos, nil
}

// step advances the container at the top of the stack by exactly one
// grammar decision: either it consumes a closing bracket and pops the
// frame, or it reads the next key/value and, if that value opens a new
// container, pushes a frame for it (leaving the current frame's state
// advanced so popping resumes correctly).
func (p *parser) step(top *frame) error {
	if top.isObject {
		return p.stepObject(top)
	}
	return p.stepArray(top)
}

func (p *parser) stepObject(top *frame) error {
	p.skipWhitespace()
	if p.pos >= len(p.buf) {
		return p.errAt(p.pos, "unterminated object")
	}
	c := p.buf[p.pos]

	switch top.state {
	case stateObjectOpen:
		if c == '}' {
			if top.afterComma && !p.cfg.allowTrailingComma {
				return p.errAt(p.pos, "trailing comma not allowed before '}'")
			}
			p.pos++
			p.popFrame()
			return nil
		}
		if c != '"' {
			return p.errAt(p.pos, "expected string key")
		}
		key, next, err := p.readString(p.pos)
		if err != nil {
			return err
		}
		p.pos = next
		top.key = key
		top.state = stateObjectKeyDone
		return p.stepObject(top)

	case stateObjectKeyDone:
		if c != ':' {
			return p.errAt(p.pos, "expected ':' after object key")
		}
		p.pos++
		top.state = stateObjectColon
		return p.stepObject(top)

	case stateObjectColon:
		p.skipWhitespace()
		val, next, err := p.readValue(p.pos)
		if err != nil {
			return err
		}
		p.pos = next
		obj, _ := top.container.AsObjectMut()
		obj.Set(top.key, val)
		top.state = stateObjectValue
		return nil

	case stateObjectValue:
		switch c {
		case ',':
			p.pos++
			top.state = stateObjectOpen
			top.afterComma = true
			return nil
		case '}':
			p.pos++
			p.popFrame()
			return nil
		default:
			return p.errAt(p.pos, "expected ',' or '}'")
		}
	}
	return p.errAt(p.pos, "invalid parser state")
}

func (p *parser) stepArray(top *frame) error {
	p.skipWhitespace()
	if p.pos >= len(p.buf) {
		return p.errAt(p.pos, "unterminated array")
	}
	c := p.buf[p.pos]

	switch top.state {
	case stateArrayOpen, stateArrayComma:
		if c == ']' {
			if top.state == stateArrayComma && !p.cfg.allowTrailingComma {
				return p.errAt(p.pos, "trailing comma not allowed before ']'")
			}
			p.pos++
			p.popFrame()
			return nil
		}
		val, next, err := p.readValue(p.pos)
		if err != nil {
			return err
		}
		p.pos = next
		arr, _ := top.container.AsArrayMut()
		arr.Push(val)
		top.state = stateArrayElem
		return nil

	case stateArrayElem:
		switch c {
		case ',':
			p.pos++
			top.state = stateArrayComma
			return nil
		case ']':
			p.pos++
			p.popFrame()
			return nil
		default:
			return p.errAt(p.pos, "expected ',' or ']'")
		}
	}
	return p.errAt(p.pos, "invalid parser state")
}

// popFrame removes the top container frame. If the closed container was
// itself the value of a pending key/element in its parent, that bookkeeping
// already happened when the container was pushed (see readValue), so
// popping here is just stack maintenance.
func (p *parser) popFrame() {
	p.stack = p.stack[:len(p.stack)-1]
}

// readValue reads one JSON value starting at offset start: a scalar (which
// is returned immediately), or the opening bracket of a nested object/array,
// in which case a new frame is pushed onto the parser's stack and an empty
// container Value is returned immediately (to be filled in by subsequent
// step calls) so the caller can attach it into the parent container right
// away — matching the pattern of "at most one child object is on the stack
// for a container at any time" used by table-driven JSON PDAs.
func (p *parser) readValue(start int) (*Value, int, error) {
	if start >= len(p.buf) {
		return nil, start, p.errAt(start, "expected value")
	}
	switch c := p.buf[start]; {
	case c == '{':
		v := NewOfKind(KindObject)
		p.stack = append(p.stack, &frame{container: v, isObject: true, state: stateObjectOpen})
		return v, start + 1, nil
	case c == '[':
		v := NewOfKind(KindArray)
		p.stack = append(p.stack, &frame{container: v, isObject: false, state: stateArrayOpen})
		return v, start + 1, nil
	case c == '"':
		return p.readStringValue(start)
	case c == 't' || c == 'f':
		return p.readBooleanValue(start)
	case c == 'n':
		return p.readNullValue(start)
	case c == '-' || isDigit(c):
		return p.readNumberValue(start)
	default:
		return nil, start, p.errAt(start, "unexpected character, expected a value")
	}
}

// ---- primitive scanners ----
//
// Each consumes leading whitespace, scans exactly one token, and returns
// the offset just past it. ReadNull/ReadBoolean/ReadNumber/ReadString are
// exported so callers can parse a single primitive directly, bypassing the
// object/array driver — e.g. to validate a bare number.

// ReadNull scans "null" at buf[start:] (after skipping whitespace) and
// returns the offset just past it. Only the exact lowercase token is
// accepted.
func ReadNull(buf string, start int) (int, error) {
	p := &parser{buf: buf}
	_, n, err := p.readNullValue(p.skipTo(start))
	return n, err
}

// ReadBoolean scans "true" or "false" at buf[start:] and returns the
// decoded value and the offset just past it.
func ReadBoolean(buf string, start int) (bool, int, error) {
	p := &parser{buf: buf}
	v, n, err := p.readBooleanValue(p.skipTo(start))
	if err != nil {
		return false, n, err
	}
	b, _ := v.AsBool()
	return b, n, nil
}

// ReadNumber scans a JSON number at buf[start:] and returns it as a Value
// (Kind Int if the literal is an integer that fits int64, Kind Float
// otherwise) and the offset just past it.
func ReadNumber(buf string, start int) (*Value, int, error) {
	p := &parser{buf: buf}
	return p.readNumberValue(p.skipTo(start))
}

// ReadString scans a quoted JSON string at buf[start:], decoding escapes,
// and returns the decoded content and the offset just past the closing
// quote.
func ReadString(buf string, start int) (string, int, error) {
	p := &parser{buf: buf}
	start = p.skipTo(start)
	if start >= len(buf) || buf[start] != '"' {
		return "", start, p.errAt(start, "expected '\"'")
	}
	return p.readString(start)
}

func (p *parser) skipTo(start int) int {
	p.pos = start
	p.skipWhitespace()
	return p.pos
}

func (p *parser) readNullValue(start int) (*Value, int, error) {
	const tok = "null"
	if !strings.HasPrefix(p.buf[start:], tok) {
		return nil, start, p.errAt(start, "invalid literal, expected 'null'")
	}
	return NewNull(), start + len(tok), nil
}

func (p *parser) readBooleanValue(start int) (*Value, int, error) {
	if strings.HasPrefix(p.buf[start:], "true") {
		return NewBool(true), start + 4, nil
	}
	if strings.HasPrefix(p.buf[start:], "false") {
		return NewBool(false), start + 5, nil
	}
	return nil, start, p.errAt(start, "invalid literal, expected 'true' or 'false'")
}

func (p *parser) readNumberValue(start int) (*Value, int, error) {
	res, next, err := scanNumber(p.buf, start)
	if err != nil {
		return nil, next, err
	}
	if res.isInt {
		return NewInt(res.intVal), next, nil
	}
	return NewFloat(res.fltVal), next, nil
}

func (p *parser) readStringValue(start int) (*Value, int, error) {
	body, bodyEnd, clean, err := p.scanStringBody(start)
	if err != nil {
		return nil, bodyEnd, err
	}
	if p.cfg.borrow && clean {
		if !validUTF8(body) {
			return nil, bodyEnd, p.errAt(start, "invalid UTF-8 in string literal")
		}
		return NewBorrowedString(body), bodyEnd, nil
	}
	decoded, err := decodeString(body, start+1)
	if err != nil {
		return nil, bodyEnd, err
	}
	if !validUTF8(decoded) {
		return nil, bodyEnd, p.errAt(start, "invalid UTF-8 in string literal")
	}
	return NewString(decoded), bodyEnd, nil
}

// readString is the key-scanning counterpart of readStringValue: keys are
// always decoded and owned (the Object container owns its keys as plain Go
// strings, not Values — borrow mode applies only to String Values).
func (p *parser) readString(start int) (string, int, error) {
	body, bodyEnd, _, err := p.scanStringBody(start)
	if err != nil {
		return "", bodyEnd, err
	}
	decoded, err := decodeString(body, start+1)
	if err != nil {
		return "", bodyEnd, err
	}
	if !validUTF8(decoded) {
		return "", bodyEnd, p.errAt(start, "invalid UTF-8 in string literal")
	}
	return decoded, bodyEnd, nil
}

// scanStringBody scans a quoted string starting at buf[start] == '"' and
// returns its raw (still-escaped) body, the offset just past the closing
// quote, and whether the body is clean (contains no escape sequences, so it
// is eligible for borrow-mode or escape-free fast paths).
func (p *parser) scanStringBody(start int) (string, int, bool, error) {
	if start >= len(p.buf) || p.buf[start] != '"' {
		return "", start, false, p.errAt(start, "expected '\"'")
	}
	i := start + 1
	clean := true
	for i < len(p.buf) {
		c := p.buf[i]
		if c == '"' {
			return p.buf[start+1 : i], i + 1, clean, nil
		}
		if c == '\\' {
			clean = false
			i += 2
			continue
		}
		if c < 0x20 {
			return "", i, false, p.errAt(i, "control character in string literal")
		}
		i++
	}
	return "", i, false, p.errAt(i, "unterminated string literal")
}
