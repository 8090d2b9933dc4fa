// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sjson_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/sjson"
	"github.com/creachadair/sjson/internal/escape"
	"github.com/creachadair/sjson/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  sjson.Value
	}{
		{" \t {} \n ", sjson.Object{}},
		{"[]", sjson.Array{}},
		{"[ \n ]", sjson.Array{}},
		{"null", sjson.Null{}},
		{"true", sjson.Bool(true)},
		{"false", sjson.Bool(false)},
		{"123", sjson.Int(123)},
		{"-0", sjson.Int(0)},
		{"123.0", sjson.Float(123)},
		{"1e2", sjson.Float(100)},
		{"-2.5E-1", sjson.Float(-0.25)},
		{"1e999", sjson.Float(math.Inf(1))},
		{"9223372036854775807", sjson.Int(math.MaxInt64)},
		{"-9223372036854775808", sjson.Int(math.MinInt64)},
		{"NaN", sjson.Float(math.NaN())},
		{"Infinity", sjson.Float(math.Inf(1))},
		{"-Infinity", sjson.Float(math.Inf(-1))},
		{`"a\nb"`, sjson.String("a\nb")},
		{`""`, sjson.String("")},
		{`"\"\\\/\b\f\n\r\t"`, sjson.String("\"\\/\b\f\n\r\t")},
		{`"étÉ"`, sjson.String("étÉ")},
		{`"é😀"`, sjson.String("é😀")},
		{`[1, 2.0, "three", [null], {}]`, sjson.Array{
			sjson.Int(1), sjson.Float(2), sjson.String("three"),
			sjson.Array{sjson.Null{}}, sjson.Object{},
		}},
		{`{"a": {"b": [true]}, "c" : -1}`, sjson.Object{
			sjson.Field("a", sjson.Object{sjson.Field("b", sjson.ArrayOf(true))}),
			sjson.Field("c", -1),
		}},
		{`[NaN, -Infinity]`, sjson.Array{sjson.Float(math.NaN()), sjson.Float(math.Inf(-1))}},

		// The last value for a duplicate key wins, in the first position.
		{`{"a":1, "b":2, "a":3}`, sjson.Object{sjson.Field("a", 3), sjson.Field("b", 2)}},
	}
	for _, tc := range tests {
		got, err := sjson.Decode(tc.input)
		if err != nil {
			t.Errorf("Decode %q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got, testutil.ValueOpts); diff != "" {
			t.Errorf("Decode %q: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestNumberKinds(t *testing.T) {
	for input, want := range map[string]sjson.Kind{
		"3":    sjson.IntKind,
		"3.0":  sjson.FloatKind,
		"3e0":  sjson.FloatKind,
		"-30":  sjson.IntKind,
		"NaN":  sjson.FloatKind,
		"0.25": sjson.FloatKind,
	} {
		v, err := sjson.Decode(input)
		if err != nil {
			t.Fatalf("Decode %q: %v", input, err)
		}
		if got := v.Kind(); got != want {
			t.Errorf("Decode %q: got %v, want %v", input, got, want)
		}
	}
	if v, err := sjson.Decode("NaN"); err != nil || !v.(sjson.Float).IsNaN() {
		t.Errorf("Decode NaN: got %v, %v; want NaN", v, err)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input    string
		message  string
		pos, end int
	}{
		{``, "Expecting value", 0, 0},
		{`   `, "Expecting value", 3, 3},
		{`tru`, "Expecting value", 0, 0},
		{`-`, "Expecting value", 0, 0},
		{`[`, "Expecting value", 1, 1},
		{`[1,]`, "Expecting value", 3, 3},
		{`[1 2]`, "Expecting , delimiter", 3, 3},
		{`[1`, "Expecting , delimiter", 2, 2},
		{`{"a":1,}`, "Expecting property name", 7, 7},
		{`{1:2}`, "Expecting property name", 1, 1},
		{`{"a" 1}`, "Expecting : delimiter", 5, 5},
		{`{"a":}`, "Expecting value", 5, 5},
		{`{"a":1 "b":2}`, "Expecting , delimiter", 7, 7},
		{`{} x`, "Extra data", 3, 4},
		{`01`, "Extra data", 1, 2},
		{`"abc`, "Unterminated string starting at", 0, 0},
		{`["x", "abc]`, "Unterminated string starting at", 6, 6},
		{`"a\x"`, "Invalid \\escape", 3, 3},
		{`"\u12"`, "Invalid \\escape", 2, 2},
		{`"\u12g4"`, "Invalid \\escape", 2, 2},
		{`"abc\`, "Invalid \\escape", 5, 5},
		{`99999999999999999999`, "Integer out of range", 0, 20},
		{`[-9223372036854775809]`, "Integer out of range", 1, 21},
		{`"é" é`, "Extra data", 4, 5}, // offsets count code points
	}
	for _, tc := range tests {
		v, err := sjson.Decode(tc.input)
		var serr *sjson.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Decode %q: got %v, %v; want *SyntaxError", tc.input, v, err)
			continue
		}
		if v != nil {
			t.Errorf("Decode %q: got partial value %v", tc.input, v)
		}
		if serr.Message != tc.message || serr.Location.Pos != tc.pos || serr.Location.End != tc.end {
			t.Errorf("Decode %q: got %q at %v, want %q at %d-%d",
				tc.input, serr.Message, serr.Location.Span, tc.message, tc.pos, tc.end)
		}
	}
}

func TestErrorLocation(t *testing.T) {
	_, err := sjson.Decode("[\n  1,\n]")
	var serr *sjson.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Decode: got %v, want *SyntaxError", err)
	}
	if got, want := serr.Error(), "Expecting value: line 3 column 1 (char 7)"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if got, want := serr.Location.String(), "3:1-1"; got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}

	_, err = sjson.Decode("{}\n x y")
	if !errors.As(err, &serr) {
		t.Fatalf("Decode: got %v, want *SyntaxError", err)
	}
	if got, want := serr.Error(), "Extra data: line 2 column 2 - line 2 column 5 (char 4 - 7)"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestDecodeOne(t *testing.T) {
	tests := []struct {
		input string
		want  sjson.Value
		end   int
	}{
		{`{} x`, sjson.Object{}, 2},
		{"  [1]\r\n", sjson.ArrayOf(1), 5},
		{`"é"tail`, sjson.String("é"), 3},
		{`12 34`, sjson.Int(12), 2},
		{`{"user":"u"}{"user":"v"}`, sjson.Object{sjson.Field("user", "u")}, 12},
	}
	for _, tc := range tests {
		got, end, err := sjson.DecodeOne(tc.input)
		if err != nil {
			t.Errorf("DecodeOne %q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("DecodeOne %q: (-want, +got)\n%s", tc.input, diff)
		}
		if end != tc.end {
			t.Errorf("DecodeOne %q: got end %d, want %d", tc.input, end, tc.end)
		}
	}

	if _, _, err := sjson.DecodeOne(` ] `); err == nil {
		t.Error("DecodeOne: got nil, want error")
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 5) + strings.Repeat("]", 5)
	mixed := `{"a":[{"b":[]}]}`

	var dec sjson.Decoder
	dec.MaxDepth(5)
	if _, err := dec.Decode(deep); err != nil {
		t.Errorf("Decode depth 5: unexpected error: %v", err)
	}
	dec.MaxDepth(4)
	_, err := dec.Decode(deep)
	var serr *sjson.SyntaxError
	if !errors.Is(err, sjson.ErrMaxDepth) || !errors.As(err, &serr) || serr.Location.Pos != 4 {
		t.Errorf("Decode depth 4: got %v, want ErrMaxDepth at 4", err)
	}
	dec.MaxDepth(3)
	if _, err := dec.Decode(mixed); !errors.Is(err, sjson.ErrMaxDepth) {
		t.Errorf("Decode mixed depth 3: got %v, want ErrMaxDepth", err)
	}

	dec.MaxDepth(-1)
	huge := strings.Repeat("[", sjson.DefaultMaxDepth+1) + strings.Repeat("]", sjson.DefaultMaxDepth+1)
	if _, err := dec.Decode(huge); err != nil {
		t.Errorf("Decode unlimited: unexpected error: %v", err)
	}
	if _, err := sjson.Decode(huge); !errors.Is(err, sjson.ErrMaxDepth) {
		t.Errorf("Decode default limit: got %v, want ErrMaxDepth", err)
	}
}

func TestSurrogates(t *testing.T) {
	const input = `"\ud83d\ude00 \ud83d"`

	// By default each escape is a separate code unit.
	v, err := sjson.Decode(input)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := sjson.String(escape.AppendRunes(nil, []rune{0xd83d, 0xde00, ' ', 0xd83d}))
	if v != want {
		t.Errorf("Decode: got %+q, want %+q", v, want)
	}
	if got, err := sjson.Encode(v); err != nil || got != input {
		t.Errorf("Encode: got %#q, %v; want %#q", got, err, input)
	}

	// When combining, a valid pair becomes one code point and an unpaired
	// surrogate is kept.
	var dec sjson.Decoder
	dec.CombineSurrogates(true)
	v, err = dec.Decode(input)
	if err != nil {
		t.Fatalf("Decode combined: %v", err)
	}
	want = sjson.String(escape.AppendRunes(nil, []rune{0x1f600, ' ', 0xd83d}))
	if v != want {
		t.Errorf("Decode combined: got %+q, want %+q", v, want)
	}
	if v, err := dec.Decode(`"\ude00\ud83d"`); err != nil || len(string(v.(sjson.String))) != 6 {
		t.Errorf("Decode reversed pair: got %+q, %v; want two units", v, err)
	}
}

func TestLoad(t *testing.T) {
	v, err := sjson.Load(strings.NewReader(" [true] \n"))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if diff := cmp.Diff(sjson.ArrayOf(true), v); diff != "" {
		t.Errorf("Load: (-want, +got)\n%s", diff)
	}

	bad := errors.New("bad reader")
	if _, err := sjson.Load(iotest.ErrReader(bad)); !errors.Is(err, bad) {
		t.Errorf("Load: got %v, want %v", err, bad)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{`""`, "", true},
		{`"a\nb"`, "a\nb", true},
		{`"café"`, "café", true},
		{`abc`, "", false},
		{`"`, "", false},
		{`"a" `, "", false},
		{`"a\qb"`, "", false},
	}
	for _, tc := range tests {
		got, err := sjson.Unquote(tc.input)
		if (err == nil) != tc.ok {
			t.Errorf("Unquote %#q: got error %v, want ok=%v", tc.input, err, tc.ok)
		} else if got != tc.want {
			t.Errorf("Unquote %#q: got %q, want %q", tc.input, got, tc.want)
		}
	}
	if got, want := sjson.Quote("café \"x\"\n"), `"caf\u00e9 \"x\"\n"`; got != want {
		t.Errorf("Quote: got %#q, want %#q", got, want)
	}
}
