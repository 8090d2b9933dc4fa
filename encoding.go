// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sjson

import (
	"errors"

	"github.com/creachadair/sjson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value, as the default Encoder writes
// it. The contents are escaped, non-ASCII code points are written as \u
// escapes, and double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src), true)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error if src is not exactly one string literal. In case
// of a malformed literal, the concrete type of the error is *SyntaxError.
func Unquote(src string) (string, error) {
	text := []rune(src)
	if len(text) < 2 || text[0] != '"' {
		return "", errors.New("missing quotations")
	}
	s, end, err := scanString(text, 1, &decodeState{})
	if err != nil {
		return "", err
	} else if end != len(text) {
		return "", rangeError("Extra data", text, end, len(text), nil)
	}
	return string(s), nil
}
