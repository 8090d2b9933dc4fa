// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a decoded JSON
// value.
package cursor

import (
	"fmt"

	"github.com/creachadair/sjson"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T sjson.Value](v sjson.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of an sjson.Value.
type Cursor struct {
	org sjson.Value
	stk []step
	err error
}

// A step is one position reached by a cursor. The member is set if the
// value was reached through an object member.
type step struct {
	val sjson.Value
	mem *sjson.Member
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin sjson.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() sjson.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() sjson.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1].val
}

// Member reports the object member whose value is under the cursor, or nil
// if the current value was not reached through an object member.
func (c *Cursor) Member() *sjson.Member {
	if c.AtOrigin() {
		return nil
	}
	return c.stk[len(c.stk)-1].mem
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []sjson.Value {
	out := make([]sjson.Value, 0, len(c.stk)+1)
	out = append(out, c.org)
	for _, s := range c.stk {
		out = append(out, s.val)
	}
	return out
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays and objects), functions (see
// below), or nil. If the path is valid, the element reached is returned. If
// the path cannot be completely consumed, traversal stops and an error is
// recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves the value of the first object member with that
// key. Use Member to recover the member itself.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an index in the array or object.
// Negative indices count backward from the end (-1 is last, -2 second last).
// An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(sjson.Value) (sjson.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
// A nil path element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			switch e := cur.(type) {
			case sjson.Object:
				m := e.Find(t)
				if m == nil {
					return c.setErrorf("key %q not found", t)
				}
				cur = c.push(m.Value, m)
			default:
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}

		case int:
			switch e := cur.(type) {
			case sjson.Array:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, len(e))
				}
				cur = c.push(e[i], nil)
			case sjson.Object:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", i, len(e))
				} else if e[i] == nil {
					return c.setErrorf("object member %d is nil", i)
				}
				cur = c.push(e[i].Value, e[i])
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}

		case func(sjson.Value) (sjson.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next, nil)

		case nil:
			// Do nothing.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v sjson.Value, m *sjson.Member) sjson.Value {
	c.stk = append(c.stk, step{val: v, mem: m})
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
