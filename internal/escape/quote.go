// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and the storage of string
// text decoded from escape sequences.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string, including the enclosing double
// quotation marks. Quotation marks, backslashes, and control characters are
// always escaped.
//
// If ascii is true, every code point outside printable ASCII is written as a
// \u escape, with supplementary code points written as a surrogate pair.
// Otherwise, the bytes of non-ASCII code points are copied unchanged.
//
// Surrogate code units stored by AppendRune are recognized and always
// escaped individually, so the result is valid UTF-8 in either mode.
func Quote(src mem.RO, ascii bool) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := DecodeRune(src)
		switch {
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = appendHex4(buf, r)
			}
		case r < utf8.RuneSelf && r != 0x7f:
			buf = append(buf, byte(r))
		case IsSurrogate(r):
			buf = appendHex4(buf, r) // not representable in UTF-8
		case !ascii:
			buf = mem.Append(buf, src.SliceTo(n))
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			buf = appendHex4(appendHex4(buf, hi), lo)
		default:
			buf = appendHex4(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}

func appendHex4(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
}
