// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sjson

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/sjson/internal/escape"

	"go4.org/mem"
)

// A DefaultFunc converts a value the encoder does not support into a
// substitute that it does, or reports an error. Encoding continues with the
// substitute, which may itself be passed to the DefaultFunc.
type DefaultFunc func(v any) (any, error)

// An Encoder encodes values as JSON text.
//
// A zero value is ready for use with default settings: object keys that
// cannot be converted are an error, non-ASCII text is escaped, circular
// references are detected, NaN and infinite floats are permitted, nesting is
// limited to DefaultMaxDepth, and there is no DefaultFunc.
//
// The encoder accepts any Value, and the Go values nil, bool, string, the
// integer and floating-point kinds, []any, and map[string]any.  Map members
// are written in key order. A value of any other type is passed to the
// encoder's DefaultFunc, if one is set; otherwise encoding fails with a
// *TypeError.
//
// Arrays and objects are written with ", " between elements and ":" with no
// space between an object key and its value.
type Encoder struct {
	skipKeys   bool
	rawUnicode bool
	noCircular bool
	noNaN      bool
	maxDepth   int // 0 means DefaultMaxDepth, < 0 means unlimited
	def        DefaultFunc
}

// SkipKeys configures the encoder to omit (true) or reject (false) object
// members whose keys cannot be converted to strings. A key is converted if it
// is a string, number, Boolean, or null.
func (e *Encoder) SkipKeys(ok bool) { e.skipKeys = ok }

// EnsureASCII configures the encoder to escape (true) or copy unchanged
// (false) every code point outside printable ASCII in strings. Surrogate
// code units decoded from \u escapes have no UTF-8 form, and are escaped
// in either case.
func (e *Encoder) EnsureASCII(ok bool) { e.rawUnicode = !ok }

// CheckCircular configures the encoder to detect (true) or not detect
// (false) arrays and objects that contain themselves. If detection is
// disabled, encoding a circular value recurses until the depth limit, and
// without a depth limit, it does not terminate.
func (e *Encoder) CheckCircular(ok bool) { e.noCircular = !ok }

// AllowNaN configures the encoder to write (true) or reject (false) NaN and
// infinite floats. When allowed, they are written as the non-standard
// constants NaN, Infinity, and -Infinity.
func (e *Encoder) AllowNaN(ok bool) { e.noNaN = !ok }

// MaxDepth sets the maximum nesting depth of arrays and objects the encoder
// will write. If n == 0, DefaultMaxDepth is used; if n < 0, nesting depth is
// not limited.
func (e *Encoder) MaxDepth(n int) { e.maxDepth = n }

// Default sets the function used to convert values the encoder does not
// support. If f == nil, such values are an error.
func (e *Encoder) Default(f DefaultFunc) { e.def = f }

// Emit encodes v and passes each chunk of the output to sink as it is
// produced. If sink reports an error, encoding stops and that error is
// returned. If encoding fails, sink may already have received a prefix of
// the output.
func (e *Encoder) Emit(v any, sink func(chunk string) error) error {
	s := &encodeState{Encoder: e, sink: sink, maxDepth: e.maxDepth}
	if s.maxDepth == 0 {
		s.maxDepth = DefaultMaxDepth
	}
	if !e.noCircular {
		s.markers = mapset.New[marker]()
	}
	return s.encode(v)
}

var errStopped = errors.New("stopped")

// Chunks returns a sequence of the chunks of the encoding of v. Encoding
// proceeds as the sequence is consumed. If encoding fails, the last pair of
// the sequence reports the error.
func (e *Encoder) Chunks(v any) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := e.Emit(v, func(chunk string) error {
			if !yield(chunk, nil) {
				return errStopped
			}
			return nil
		})
		if err != nil && err != errStopped {
			yield("", err)
		}
	}
}

// Encode returns the complete encoding of v. In case of error, it returns no
// output.
func (e *Encoder) Encode(v any) (string, error) {
	var sb strings.Builder
	if err := e.Emit(v, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Dump writes the encoding of v to w, one chunk at a time as the chunks are
// produced. If encoding fails, w may have received a prefix of the output.
func (e *Encoder) Dump(w io.Writer, v any) error {
	return e.Emit(v, func(chunk string) error {
		_, err := io.WriteString(w, chunk)
		return err
	})
}

var stdEncoder Encoder

// Encode returns the encoding of v using default settings.
// See [Encoder.Encode].
func Encode(v any) (string, error) { return stdEncoder.Encode(v) }

// Dump writes the encoding of v to w using default settings.
// See [Encoder.Dump].
func Dump(w io.Writer, v any) error { return stdEncoder.Dump(w, v) }

// A marker identifies an array or object being encoded. Slices are
// identified by their first element and length, maps and pointers by their
// address.
type marker struct {
	ptr uintptr
	len int
}

func markerOf(v any) (marker, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return marker{ptr: rv.Pointer(), len: rv.Len()}, true
	case reflect.Map, reflect.Pointer:
		return marker{ptr: rv.Pointer()}, true
	}
	return marker{}, false
}

// encodeState carries the settings and progress of one encoding.
type encodeState struct {
	*Encoder
	sink     func(string) error
	markers  mapset.Set[marker] // nil if not checking for cycles
	depth    int
	maxDepth int
}

func (s *encodeState) put(chunk string) error { return s.sink(chunk) }

// push records entry into v, an array, an object, or a value passed to the
// DefaultFunc, and returns a function that records its exit.
func (s *encodeState) push(v any) (func(), error) {
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		return nil, &ValueError{Value: v, err: ErrMaxDepth, detail: strconv.Itoa(s.maxDepth)}
	}
	s.depth++
	if s.markers == nil {
		return s.pop, nil
	}
	id, ok := markerOf(v)
	if !ok {
		return s.pop, nil
	}
	if s.markers.Has(id) {
		s.depth--
		return nil, &ValueError{Value: v, err: ErrCircular}
	}
	s.markers.Add(id)
	return func() { s.markers.Remove(id); s.pop() }, nil
}

func (s *encodeState) pop() { s.depth-- }

func (s *encodeState) encode(v any) error {
	switch t := v.(type) {
	case Null:
		return s.put("null")
	case Bool:
		return s.put(strconv.FormatBool(bool(t)))
	case Int:
		return s.put(strconv.FormatInt(int64(t), 10))
	case Float:
		return s.encodeFloat(float64(t), 64)
	case String:
		return s.put(s.quote(string(t)))
	case Array:
		if len(t) == 0 {
			return s.put("[]")
		}
		return s.encodeList(t, len(t), func(i int) any { return t[i] })
	case Object:
		if len(t) == 0 {
			return s.put("{}")
		}
		return s.encodeMembers(t, len(t), func(i int) (key, val any, ok bool) {
			if m := t[i]; m != nil {
				return m.Key, m.Value, true
			}
			return nil, nil, false
		})

	case nil:
		return s.put("null")
	case bool:
		return s.put(strconv.FormatBool(t))
	case string:
		return s.put(s.quote(t))
	case float32:
		return s.encodeFloat(float64(t), 32)
	case float64:
		return s.encodeFloat(t, 64)
	case int, int8, int16, int32, int64:
		return s.put(strconv.FormatInt(reflect.ValueOf(t).Int(), 10))
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return s.put(strconv.FormatUint(reflect.ValueOf(t).Uint(), 10))
	case []any:
		if len(t) == 0 {
			return s.put("[]")
		}
		return s.encodeList(t, len(t), func(i int) any { return t[i] })
	case map[string]any:
		if len(t) == 0 {
			return s.put("{}")
		}
		keys := slices.Sorted(maps.Keys(t))
		return s.encodeMembers(t, len(keys), func(i int) (key, val any, ok bool) {
			return keys[i], t[keys[i]], true
		})

	default:
		return s.encodeDefault(v)
	}
}

// encodeList encodes the n elements of the array v.
func (s *encodeState) encodeList(v any, n int, elem func(int) any) error {
	pop, err := s.push(v)
	if err != nil {
		return err
	}
	defer pop()

	if err := s.put("["); err != nil {
		return err
	}
	for i := range n {
		if i > 0 {
			if err := s.put(", "); err != nil {
				return err
			}
		}
		if err := s.encode(elem(i)); err != nil {
			return err
		}
	}
	return s.put("]")
}

// encodeMembers encodes the n members of the object v. The member function
// reports false for members that should be ignored.
func (s *encodeState) encodeMembers(v any, n int, member func(int) (key, val any, ok bool)) error {
	pop, err := s.push(v)
	if err != nil {
		return err
	}
	defer pop()

	if err := s.put("{"); err != nil {
		return err
	}
	first := true
	for i := range n {
		key, val, ok := member(i)
		if !ok {
			continue
		}
		text, ok, err := s.keyText(key)
		if err != nil {
			return err
		} else if !ok {
			continue // skipped key
		}
		if !first {
			if err := s.put(", "); err != nil {
				return err
			}
		}
		first = false
		if err := s.put(s.quote(text)); err != nil {
			return err
		} else if err := s.put(":"); err != nil {
			return err
		} else if err := s.encode(val); err != nil {
			return err
		}
	}
	return s.put("}")
}

// keyText converts an object key to the text of a string. It reports false
// if the key should be skipped.
func (s *encodeState) keyText(key any) (string, bool, error) {
	switch t := key.(type) {
	case String:
		return string(t), true, nil
	case string:
		return t, true, nil
	case Float:
		text, err := s.floatText(float64(t), 64)
		return text, err == nil, err
	case Int:
		return strconv.FormatInt(int64(t), 10), true, nil
	case Bool:
		return strconv.FormatBool(bool(t)), true, nil
	case Null, nil:
		return "null", true, nil
	}
	if s.skipKeys {
		return "", false, nil
	}
	return "", false, &ValueError{Value: key, err: ErrKey, detail: fmt.Sprintf("%T", key)}
}

func (s *encodeState) encodeFloat(f float64, bits int) error {
	text, err := s.floatText(f, bits)
	if err != nil {
		return err
	}
	return s.put(text)
}

func (s *encodeState) floatText(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if s.noNaN {
			return "", &ValueError{Value: f, err: ErrNaN, detail: strconv.FormatFloat(f, 'g', -1, 64)}
		}
		switch {
		case math.IsNaN(f):
			return "NaN", nil
		case f > 0:
			return "Infinity", nil
		default:
			return "-Infinity", nil
		}
	}
	return formatFloat(f, bits), nil
}

// formatFloat renders a finite float in the shortest form that parses back to
// the same value. Very large and very small magnitudes use an exponent.
// The result always has a fraction or exponent, so that it decodes as a
// Float and not an Int.
func formatFloat(f float64, bits int) string {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent: 1e-07 → 1e-7.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	if !slices.ContainsFunc(b, func(c byte) bool { return c == '.' || c == 'e' }) {
		b = append(b, '.', '0')
	}
	return string(b)
}

func (s *encodeState) quote(text string) string {
	return string(escape.Quote(mem.S(text), !s.rawUnicode))
}

func (s *encodeState) encodeDefault(v any) error {
	if s.def == nil {
		return &TypeError{Value: v}
	}
	pop, err := s.push(v)
	if err != nil {
		return err
	}
	defer pop()

	sub, err := s.def(v)
	if err != nil {
		return err
	}
	return s.encode(sub)
}
