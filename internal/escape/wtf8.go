// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

const (
	surrMin = 0xd800
	surrMax = 0xdfff
)

// IsSurrogate reports whether r is a UTF-16 surrogate code unit.
func IsSurrogate(r rune) bool { return surrMin <= r && r <= surrMax }

// AppendRune appends the encoding of r to buf. Ordinary code points are
// encoded as UTF-8. A surrogate code unit, which UTF-8 cannot represent, is
// encoded as its three-byte generalized UTF-8 form so that it survives as a
// single unit rather than being replaced.
func AppendRune(buf []byte, r rune) []byte {
	if IsSurrogate(r) {
		return append(buf, 0xe0|byte(r>>12), 0x80|byte(r>>6)&0x3f, 0x80|byte(r)&0x3f)
	}
	return utf8.AppendRune(buf, r)
}

// AppendRunes appends the encoding of each rune in rs to buf, as AppendRune.
func AppendRunes(buf []byte, rs []rune) []byte {
	for _, r := range rs {
		buf = AppendRune(buf, r)
	}
	return buf
}

// DecodeRune decodes the first code point of src and reports its size in
// bytes. It recognizes the surrogate encoding written by AppendRune.
// Otherwise, it behaves as utf8.DecodeRune.
func DecodeRune(src mem.RO) (rune, int) {
	r, n := mem.DecodeRune(src)
	if r != utf8.RuneError || n != 1 || src.Len() < 3 {
		return r, n
	}
	b0, b1, b2 := src.At(0), src.At(1), src.At(2)
	if b0 == 0xed && b1&0xe0 == 0xa0 && b2&0xc0 == 0x80 {
		return rune(b0&0x0f)<<12 | rune(b1&0x3f)<<6 | rune(b2&0x3f), 3
	}
	return r, n
}
