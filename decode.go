// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sjson

import (
	"errors"
	"io"
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/creachadair/sjson/internal/escape"
	"github.com/creachadair/sjson/scan"
)

// DefaultMaxDepth is the default limit on the nesting depth of arrays and
// objects, for both decoding and encoding.
const DefaultMaxDepth = 10000

// A Decoder decodes JSON text into values.
// A zero value is ready for use with default settings.
type Decoder struct {
	maxDepth int  // 0 means DefaultMaxDepth, < 0 means unlimited
	combine  bool // merge escaped surrogate pairs
}

// MaxDepth sets the maximum nesting depth of arrays and objects the decoder
// will accept. If n == 0, DefaultMaxDepth is used; if n < 0, nesting depth is
// not limited.
func (d *Decoder) MaxDepth(n int) { d.maxDepth = n }

// CombineSurrogates configures the decoder to merge (true) or preserve
// (false) escaped UTF-16 surrogate pairs. By default each \u escape decodes to
// a single code unit, so "\ud83d\ude00" yields two surrogate units. When
// merging is enabled, a high surrogate escape immediately followed by a low
// surrogate escape decodes as the single code point they represent.
func (d *Decoder) CombineSurrogates(ok bool) { d.combine = ok }

// Decode decodes a single JSON value from text. Leading and trailing
// whitespace is ignored. It reports an error if text contains anything other
// than whitespace after the value.
//
// In case of error, the concrete type of the error is *SyntaxError.
func (d *Decoder) Decode(text string) (Value, error) {
	src := []rune(text)
	v, end, err := d.decodeOne(src, 0)
	if err != nil {
		return nil, err
	}
	if end = skipSpace(src, end); end != len(src) {
		return nil, rangeError("Extra data", src, end, len(src), nil)
	}
	return v, nil
}

// DecodeOne decodes a single JSON value from the front of text, ignoring
// leading whitespace. It returns the value and the offset in text
// immediately after it. Any data after the value is not examined, so it can
// be used to decode a document embedded at the front of a larger input.
//
// Offsets count Unicode code points, not bytes.
func (d *Decoder) DecodeOne(text string) (Value, int, error) {
	return d.decodeOne([]rune(text), 0)
}

// Load reads all of r and decodes its contents as Decode.
func (d *Decoder) Load(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(string(data))
}

func (d *Decoder) decodeOne(src []rune, pos int) (Value, int, error) {
	st := &decodeState{maxDepth: d.maxDepth, combine: d.combine}
	if st.maxDepth == 0 {
		st.maxDepth = DefaultMaxDepth
	}
	return scanValue(src, skipSpace(src, pos), st)
}

var std Decoder

// Decode decodes a single JSON value from text using default settings.
// See [Decoder.Decode].
func Decode(text string) (Value, error) { return std.Decode(text) }

// DecodeOne decodes a single JSON value from the front of text using default
// settings. See [Decoder.DecodeOne].
func DecodeOne(text string) (Value, int, error) { return std.DecodeOne(text) }

// Load reads and decodes a single JSON value from r using default settings.
// See [Decoder.Load].
func Load(r io.Reader) (Value, error) { return std.Load(r) }

// decodeState carries the settings and nesting depth of one decoding.
type decodeState struct {
	depth    int
	maxDepth int
	combine  bool
}

// enter records the start of an array or object at pos in src.
func (st *decodeState) enter(src []rune, pos int) error {
	st.depth++
	if st.maxDepth > 0 && st.depth > st.maxDepth {
		return &SyntaxError{
			Message:  "Maximum nesting depth exceeded",
			Location: locate(src, pos, pos),
			err:      ErrMaxDepth,
		}
	}
	return nil
}

func (st *decodeState) leave() { st.depth-- }

type lexeme = scan.Rule[Value, *decodeState]

// lexicon is the table of rules for JSON values. Keywords precede the
// patterns that could otherwise claim their text. It is initialized by init
// because the array and object handlers refer to it.
var lexicon *scan.Scanner[Value, *decodeState]

func init() {
	lexicon = scan.MustNew(
		lexeme{Pattern: `true`, Handler: constant(Bool(true))},
		lexeme{Pattern: `false`, Handler: constant(Bool(false))},
		lexeme{Pattern: `null`, Handler: constant(Null{})},
		lexeme{Pattern: `NaN`, Handler: constant(Float(math.NaN()))},
		lexeme{Pattern: `Infinity`, Handler: constant(Float(math.Inf(1)))},
		lexeme{Pattern: `-Infinity`, Handler: constant(Float(math.Inf(-1)))},
		lexeme{Pattern: `(-?(?:0|[1-9][0-9]*))(\.[0-9]+)?([eE][-+]?[0-9]+)?`, Handler: decodeNumber},
		lexeme{Pattern: `"`, Handler: decodeString},
		lexeme{Pattern: `\[`, Handler: decodeArray},
		lexeme{Pattern: `\{`, Handler: decodeObject},
		lexeme{Pattern: `[ \t\n\r]+`}, // insignificant whitespace
	)
}

func constant(v Value) scan.Handler[Value, *decodeState] {
	return func(*scan.Match, *decodeState) (Value, int, error) { return v, -1, nil }
}

func decodeNumber(m *scan.Match, _ *decodeState) (Value, int, error) {
	lit := m.String()
	_, frac := m.Group(2)
	_, exp := m.Group(3)
	if frac || exp {
		// Magnitudes beyond the range of float64 become infinite.
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, 0, rangeError("Invalid number", m.Source(), m.Pos(), m.End(), err)
		}
		return Float(f), -1, nil
	}
	z, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, 0, rangeError("Integer out of range", m.Source(), m.Pos(), m.End(), err)
	}
	return Int(z), -1, nil
}

func decodeString(m *scan.Match, st *decodeState) (Value, int, error) {
	s, end, err := scanString(m.Source(), m.End(), st)
	if err != nil {
		return nil, 0, err
	}
	return s, end, nil
}

// scanString decodes the body of a string from src beginning at pos, the
// offset after its opening quotation mark. It returns the decoded string and
// the offset after the closing quotation mark.
func scanString(src []rune, pos int, st *decodeState) (String, int, error) {
	var buf []byte
	i := pos
	for {
		// Copy a run of unescaped characters.
		j := i
		for j < len(src) && src[j] != '"' && src[j] != '\\' {
			j++
		}
		buf = escape.AppendRunes(buf, src[i:j])
		if j == len(src) {
			return "", 0, syntaxError("Unterminated string starting at", src, pos-1)
		} else if src[j] == '"' {
			return String(buf), j + 1, nil
		}

		// Reaching here, src[j] == '\\'.
		i = j + 1
		if i == len(src) {
			return "", 0, syntaxError("Invalid \\escape", src, i)
		}
		switch c := src[i]; c {
		case '"', '\\', '/':
			buf = append(buf, byte(c))
		case 'b':
			buf = append(buf, '\b')
		case 'f':
			buf = append(buf, '\f')
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case 'u':
			r, ok := parseHex4(src[i+1:])
			if !ok {
				return "", 0, syntaxError("Invalid \\escape", src, i)
			}
			i += 4
			if st.combine && utf16.IsSurrogate(r) && r < 0xdc00 && hasPrefix(src[i+1:], '\\', 'u') {
				if lo, ok := parseHex4(src[i+3:]); ok && 0xdc00 <= lo && lo <= 0xdfff {
					r = utf16.DecodeRune(r, lo)
					i += 6
				}
			}
			buf = escape.AppendRune(buf, r)
		default:
			return "", 0, syntaxError("Invalid \\escape", src, i)
		}
		i++
	}
}

// parseHex4 decodes the four hexadecimal digits at the front of src.
func parseHex4(src []rune) (rune, bool) {
	if len(src) < 4 {
		return 0, false
	}
	var v rune
	for _, c := range src[:4] {
		v <<= 4
		switch {
		case '0' <= c && c <= '9':
			v += c - '0'
		case 'a' <= c && c <= 'f':
			v += c - 'a' + 10
		case 'A' <= c && c <= 'F':
			v += c - 'A' + 10
		default:
			return 0, false
		}
	}
	return v, true
}

func decodeArray(m *scan.Match, st *decodeState) (Value, int, error) {
	src := m.Source()
	if err := st.enter(src, m.Pos()); err != nil {
		return nil, 0, err
	}
	defer st.leave()

	end := skipSpace(src, m.End())
	if at(src, end, ']') {
		return Array{}, end + 1, nil // empty array
	}
	var arr Array
	for {
		v, next, err := scanValue(src, end, st)
		if err != nil {
			return nil, 0, err
		}
		arr = append(arr, v)

		end = skipSpace(src, next)
		if at(src, end, ']') {
			return arr, end + 1, nil
		} else if !at(src, end, ',') {
			return nil, 0, syntaxError("Expecting , delimiter", src, end)
		}
		end = skipSpace(src, end+1)
	}
}

func decodeObject(m *scan.Match, st *decodeState) (Value, int, error) {
	src := m.Source()
	if err := st.enter(src, m.Pos()); err != nil {
		return nil, 0, err
	}
	defer st.leave()

	end := skipSpace(src, m.End())
	if at(src, end, '}') {
		return Object{}, end + 1, nil // empty object
	} else if !at(src, end, '"') {
		return nil, 0, syntaxError("Expecting property name", src, end)
	}

	var obj Object
	index := make(map[String]int) // key → position in obj
	for {
		key, next, err := scanString(src, end+1, st)
		if err != nil {
			return nil, 0, err
		}
		end = skipSpace(src, next)
		if !at(src, end, ':') {
			return nil, 0, syntaxError("Expecting : delimiter", src, end)
		}
		end = skipSpace(src, end+1)
		v, next, err := scanValue(src, end, st)
		if err != nil {
			return nil, 0, err
		}

		// On a duplicate key the last value wins, in the position of the first.
		if i, ok := index[key]; ok {
			obj[i].Value = v
		} else {
			index[key] = len(obj)
			obj = append(obj, &Member{Key: key, Value: v})
		}

		end = skipSpace(src, next)
		if at(src, end, '}') {
			return obj, end + 1, nil
		} else if !at(src, end, ',') {
			return nil, 0, syntaxError("Expecting , delimiter", src, end)
		}
		end = skipSpace(src, end+1)
		if !at(src, end, '"') {
			return nil, 0, syntaxError("Expecting property name", src, end)
		}
	}
}

// scanValue decodes the value beginning at pos in src, and returns the value
// and the offset immediately after it.
func scanValue(src []rune, pos int, st *decodeState) (Value, int, error) {
	it := lexicon.Scan(src, pos, st)
	if it.Next() {
		return it.Value(), it.End(), nil
	} else if err := it.Err(); err != nil {
		return nil, 0, err
	}
	return nil, 0, syntaxError("Expecting value", src, it.Pos())
}

func skipSpace(src []rune, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func at(src []rune, pos int, r rune) bool { return pos < len(src) && src[pos] == r }

func hasPrefix(src []rune, rs ...rune) bool {
	if len(src) < len(rs) {
		return false
	}
	for i, r := range rs {
		if src[i] != r {
			return false
		}
	}
	return true
}
