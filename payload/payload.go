// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package payload defines the message payload carried inside the encrypted
// envelope exchanged between two endpoints.
//
// A payload is a JSON object with two string members:
//
//	{"user":"symbian-s60", "message":"hello"}
//
// Encryption and transport framing are applied by the caller to the text
// this package produces, and removed before the text is passed back.
package payload

import (
	"errors"
	"fmt"

	"github.com/creachadair/sjson"
	"github.com/creachadair/sjson/cursor"
)

// DefaultUser is the user name attributed to a message that does not set one.
const DefaultUser = "symbian-s60"

// A Message is a single message payload.
type Message struct {
	User string // the name of the sender
	Text string // the message body
}

// New returns a message with the given text from DefaultUser.
func New(text string) Message { return Message{User: DefaultUser, Text: text} }

// WithUser returns a copy of m attributed to user.
func (m Message) WithUser(user string) Message { m.User = user; return m }

// Value returns the JSON object representing m.
func (m Message) Value() sjson.Object {
	return sjson.Object{
		sjson.Field("user", m.User),
		sjson.Field("message", m.Text),
	}
}

// Encode encodes m as JSON text using enc. If enc == nil, default encoder
// settings are used.
func Encode(m Message, enc *sjson.Encoder) (string, error) {
	if enc == nil {
		enc = new(sjson.Encoder)
	}
	return enc.Encode(m.Value())
}

// ErrNotPayload is reported by Parse when a value is not a message payload.
var ErrNotPayload = errors.New("not a message payload")

// Parse extracts a message from a decoded payload value. The value must be
// an object with string members "user" and "message". Other members are
// ignored.
func Parse(v sjson.Value) (Message, error) {
	if _, ok := v.(sjson.Object); !ok {
		return Message{}, fmt.Errorf("%w: got %v", ErrNotPayload, v.Kind())
	}
	user, err := cursor.Path[sjson.String](v, "user")
	if err != nil {
		return Message{}, fmt.Errorf("%w: user: %w", ErrNotPayload, err)
	}
	text, err := cursor.Path[sjson.String](v, "message")
	if err != nil {
		return Message{}, fmt.Errorf("%w: message: %w", ErrNotPayload, err)
	}
	return Message{User: string(user), Text: string(text)}, nil
}

// Decode decodes a message from the front of text, and returns the message
// and the remainder of text following the payload, such as a line
// terminator appended by the transport.
func Decode(text string) (Message, string, error) {
	v, end, err := sjson.DecodeOne(text)
	if err != nil {
		return Message{}, "", err
	}
	m, err := Parse(v)
	if err != nil {
		return Message{}, "", err
	}
	return m, string([]rune(text)[end:]), nil
}
