// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sjson

import (
	"errors"
	"fmt"
)

var (
	// ErrCircular is reported when a value being encoded contains itself.
	ErrCircular = errors.New("circular reference detected")

	// ErrNaN is reported when encoding a NaN or infinite float while such
	// values are not allowed.
	ErrNaN = errors.New("out of range float values are not JSON compliant")

	// ErrKey is reported when an object key has no JSON key representation.
	ErrKey = errors.New("key is not a string")

	// ErrMaxDepth is reported when a value is nested more deeply than the
	// configured limit, whether decoding or encoding.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Message  string
	Location Location

	err error
}

// Error satisfies the error interface. A zero-width location is reported as
// a single point, otherwise the range is reported.
func (s *SyntaxError) Error() string {
	loc := s.Location
	if loc.End <= loc.Pos {
		return fmt.Sprintf("%s: line %d column %d (char %d)",
			s.Message, loc.First.Line, loc.First.Column, loc.Pos)
	}
	return fmt.Sprintf("%s: line %d column %d - line %d column %d (char %d - %d)",
		s.Message, loc.First.Line, loc.First.Column, loc.Last.Line, loc.Last.Column, loc.Pos, loc.End)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func syntaxError(msg string, src []rune, pos int) *SyntaxError {
	return &SyntaxError{Message: msg, Location: locate(src, pos, pos)}
}

func rangeError(msg string, src []rune, pos, end int, err error) *SyntaxError {
	return &SyntaxError{Message: msg, Location: locate(src, pos, end), err: err}
}

// TypeError is the concrete type of errors reported when encoding a value
// that has no JSON representation.
type TypeError struct {
	Value any // the value that could not be encoded
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("%#v (%T) is not JSON serializable", t.Value, t.Value)
}

// ValueError is the concrete type of errors reported when encoding a value
// whose type is supported but whose content cannot be encoded. Use errors.Is
// to check for ErrCircular, ErrNaN, ErrKey, or ErrMaxDepth.
type ValueError struct {
	Value any // the value that could not be encoded

	err    error
	detail string
}

// Error satisfies the error interface.
func (v *ValueError) Error() string {
	if v.detail == "" {
		return v.err.Error()
	}
	return v.err.Error() + ": " + v.detail
}

// Unwrap supports error wrapping.
func (v *ValueError) Unwrap() error { return v.err }
