// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package payload_test

import (
	"errors"
	"testing"

	"github.com/creachadair/sjson"
	"github.com/creachadair/sjson/payload"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func TestEncode(t *testing.T) {
	m := payload.New("héllo")
	if m.User != payload.DefaultUser {
		t.Errorf("New: got user %q, want %q", m.User, payload.DefaultUser)
	}

	got, err := payload.Encode(m, nil)
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	if want := `{"user":"symbian-s60", "message":"h\u00e9llo"}`; got != want {
		t.Errorf("Encode:\n got: %s\nwant: %s", got, want)
	}
	if msg := gjson.Get(got, "message").String(); msg != "héllo" {
		t.Errorf("gjson message: got %q, want %q", msg, "héllo")
	}

	var raw sjson.Encoder
	raw.EnsureASCII(false)
	got, err = payload.Encode(m.WithUser("bob"), &raw)
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	if want := `{"user":"bob", "message":"héllo"}`; got != want {
		t.Errorf("Encode raw:\n got: %s\nwant: %s", got, want)
	}
}

func TestDecode(t *testing.T) {
	want := payload.Message{User: "alice", Text: "a\nb"}
	got, rest, err := payload.Decode(`{"user":"alice","message":"a\nb","extra":[1]}` + "\r\n")
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode: (-want, +got)\n%s", diff)
	}
	if rest != "\r\n" {
		t.Errorf("Decode rest: got %q, want %q", rest, "\r\n")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, m := range []payload.Message{
		payload.New(""),
		payload.New(`quote " and backslash \`),
		payload.New("tab\tnew\nline").WithUser("ünïcode"),
	} {
		text, err := payload.Encode(m, nil)
		if err != nil {
			t.Fatalf("Encode %+v: %v", m, err)
		}
		got, rest, err := payload.Decode(text)
		if err != nil {
			t.Fatalf("Decode %q: %v", text, err)
		}
		if got != m || rest != "" {
			t.Errorf("Round trip: got %+v, %q; want %+v", got, rest, m)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`[]`,
		`"text"`,
		`{"user":"alice"}`,
		`{"message":"hi"}`,
		`{"user":1, "message":"hi"}`,
		`{"user":"alice", "message":null}`,
	}
	for _, input := range tests {
		v, err := sjson.Decode(input)
		if err != nil {
			t.Fatalf("Decode %q: %v", input, err)
		}
		if m, err := payload.Parse(v); !errors.Is(err, payload.ErrNotPayload) {
			t.Errorf("Parse %q: got %+v, %v; want ErrNotPayload", input, m, err)
		}
	}

	var serr *sjson.SyntaxError
	if _, _, err := payload.Decode(`{"user":`); !errors.As(err, &serr) {
		t.Errorf("Decode truncated: got %v, want *SyntaxError", err)
	}
}
