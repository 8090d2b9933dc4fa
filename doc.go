// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package sjson implements a JSON text codec for message payloads.
//
// # Decoding
//
// The Decode function parses a complete JSON document into a Value. The
// concrete type of the result is one of Null, Bool, Int, Float, String,
// Array, or Object:
//
//	v, err := sjson.Decode(`{"user": "alice", "message": "hi"}`)
//	if err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//	obj := v.(sjson.Object)
//
// A number with a fraction or exponent decodes as a Float, otherwise as an
// Int, so "3" and "3.0" yield different types. The decoder also accepts the
// constants NaN, Infinity, and -Infinity.
//
// To decode one value from the front of a larger input, use DecodeOne. It
// reports the offset immediately after the value, and does not examine the
// rest of the input:
//
//	v, end, err := sjson.DecodeOne(line)
//	rest := string([]rune(line)[end:])
//
// Malformed input is reported as an error of concrete type *SyntaxError,
// which records the location of the offending text.
//
// # Encoding
//
// An Encoder writes values as JSON text in chunks as they are produced. The
// zero Encoder is ready for use; see its methods for the available settings.
//
//	var enc sjson.Encoder
//	enc.EnsureASCII(false)
//	for chunk, err := range enc.Chunks(v) {
//	   if err != nil {
//	      log.Fatalf("Encode failed: %v", err)
//	   }
//	   send(chunk)
//	}
//
// Encoding a value with no JSON form reports a *TypeError. Encoding a value
// whose content cannot be written, such as a circular array or a disallowed
// NaN, reports a *ValueError.
//
// The encoding of an object writes "," followed by a space between members,
// and ":" with no space between each key and value:
//
//	{"a":1, "b":[1, 2]}
package sjson
