// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sjson

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Kind is the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind   Kind = iota // null
	BoolKind               // true or false
	IntKind                // number with no fraction or exponent
	FloatKind              // number with fraction and/or exponent, NaN, ±Infinity
	StringKind             // string
	ArrayKind              // array
	ObjectKind             // object
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	IntKind:    "int",
	FloatKind:  "float",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The concrete type is one of Null, Bool,
// Int, Float, String, Array, or Object.
type Value interface {
	Kind() Kind

	isValue()
}

// Null represents the null constant.
type Null struct{}

// A Bool is a Boolean constant, true or false.
type Bool bool

// An Int is an integer value, decoded from a number with no fraction or
// exponent.
type Int int64

// A Float is a floating-point value, decoded from a number with a fraction or
// exponent, or from one of the constants NaN, Infinity, and -Infinity.
type Float float64

// A String is a string value with its escapes resolved.
//
// A \u escape yields a single UTF-16 code unit, so a code point outside the
// Basic Multilingual Plane written as an escaped surrogate pair decodes as two
// separate surrogate units. UTF-8 cannot represent these, so each is stored as
// a three-byte generalized UTF-8 sequence, which ordinary UTF-8 decoding
// reports as invalid. The encoder recognizes these sequences and escapes them
// individually.
type String string

// An Array is an ordered sequence of values.
type Array []Value

// An Object is a collection of key-value members in insertion order.
//
// Objects produced by the decoder have String keys that are unique within the
// object. An object constructed by other means may have keys of other kinds,
// which the encoder converts or rejects (see Encoder).
type Object []*Member

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   Value
	Value Value
}

func (Null) Kind() Kind   { return NullKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Int) Kind() Kind    { return IntKind }
func (Float) Kind() Kind  { return FloatKind }
func (String) Kind() Kind { return StringKind }
func (Array) Kind() Kind  { return ArrayKind }
func (Object) Kind() Kind { return ObjectKind }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

func (Null) String() string { return "null" }

// IsNaN reports whether f is a floating-point NaN.
func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o whose key is the string key, or nil.
// Nil members are ignored.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m == nil {
			continue
		}
		if s, ok := m.Key.(String); ok && string(s) == key {
			return m
		}
	}
	return nil
}

// Get returns the value of the first member of o whose key is the string
// key, and reports whether such a member was found.
func (o Object) Get(key string) (Value, bool) {
	if m := o.Find(key); m != nil {
		return m.Value, true
	}
	return nil, false
}

// Keys returns the string keys of o in order. Keys that are not strings, and
// nil members, are omitted.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, m := range o {
		if m == nil {
			continue
		}
		if s, ok := m.Key.(String); ok {
			keys = append(keys, string(s))
		}
	}
	return keys
}

// Field constructs an object member with the given key and value.
// The value must be acceptable to ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: String(key), Value: ToValue(value)}
}

// ArrayOf constructs an array of the given values.
// Each value must be acceptable to ToValue.
func ArrayOf(vs ...any) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

// ToValue converts a Go value into a Value. The value must be a Value, nil,
// a bool, a string, an integer or floating-point number, a []any, or a
// map[string]any whose contents are likewise acceptable. Map members are
// ordered by key. ToValue panics if v does not have one of those types.
func ToValue(v any) Value {
	if t, ok := v.(Value); ok {
		return t
	}
	if t, ok := nativeScalar(v); ok {
		return t
	}
	switch t := v.(type) {
	case []any:
		return ArrayOf(t...)
	case map[string]any:
		out := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out = append(out, Field(key, t[key]))
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// nativeScalar converts a Go scalar into a Value, and reports whether it was
// able to do so.
func nativeScalar(v any) (Value, bool) {
	switch t := v.(type) {
	case nil:
		return Null{}, true
	case bool:
		return Bool(t), true
	case string:
		return String(t), true
	case int:
		return Int(t), true
	case int8:
		return Int(t), true
	case int16:
		return Int(t), true
	case int32:
		return Int(t), true
	case int64:
		return Int(t), true
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return Int(t), true
	case uint16:
		return Int(t), true
	case uint32:
		return Int(t), true
	case uint64:
		return uintValue(t)
	case float32:
		return Float(t), true
	case float64:
		return Float(t), true
	}
	return nil, false
}

func uintValue(z uint64) (Value, bool) {
	if z > math.MaxInt64 {
		return nil, false
	}
	return Int(z), true
}

// Equal reports whether a and b are structurally equal. Objects are equal if
// they have the same members regardless of order. A NaN is not equal to
// anything, including itself.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || len(x) != len(y) {
			return false
		}
	nextMember:
		for _, xm := range x {
			for _, ym := range y {
				if Equal(xm.Key, ym.Key) {
					if !Equal(xm.Value, ym.Value) {
						return false
					}
					continue nextMember
				}
			}
			return false
		}
		return true
	case Null, Bool, Int, Float, String:
		return a == b
	default:
		return false
	}
}
