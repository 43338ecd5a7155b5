// Package codec implements the wire encoding shared by every message on the
// game socket: a MessagePack-encoded array with two trailing "rolling
// padding" bytes whose value is derived from a per-socket counter advanced
// by a server-supplied prime (spec §4.1). The padding is a weak
// anti-scripting measure, not cryptography — prime must not be treated as a
// secret.
package codec

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrTooShort = errors.New("codec: message too short for a payload plus the 2-byte padding suffix")
	ErrNotArray = errors.New("codec: decoded message is not a non-empty array")
	ErrNoType   = errors.New("codec: decoded message has no leading type string")
)

// MsgpackError wraps a failure from the underlying MessagePack library.
type MsgpackError struct {
	Err error
}

func (e *MsgpackError) Error() string { return fmt.Sprintf("codec: msgpack error: %v", e.Err) }
func (e *MsgpackError) Unwrap() error { return e.Err }

// Rolling maintains the per-socket padding counter. The zero value starts at
// num=0, matching a freshly opened socket.
type Rolling struct {
	prime uint16
	num   uint16
}

// NewRolling returns a Rolling counter for the given session prime.
func NewRolling(prime uint16) *Rolling {
	return &Rolling{prime: prime}
}

// Prime returns the session prime this counter rolls by.
func (r *Rolling) Prime() uint16 { return r.prime }

// Encode MessagePack-encodes v, advances the rolling counter, and appends
// the resulting 2-byte padding.
func (r *Rolling) Encode(v any) ([]byte, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, &MsgpackError{Err: err}
	}

	r.num = (r.num + r.prime) & 0xFF
	hi := byte((r.num >> 4) & 0xF)
	lo := byte(r.num & 0xF)

	return append(payload, hi, lo), nil
}

// Message is a decoded tagged array: a type string followed by its argument
// sequence.
type Message struct {
	Type string
	Args []any
}

// Decode truncates the trailing 2 padding bytes unconditionally, MessagePack
// decodes the remainder, and requires the result to be a non-empty array
// headed by a string type.
func Decode(raw []byte) (Message, error) {
	if len(raw) < 3 {
		return Message{}, ErrTooShort
	}

	var value any
	if err := msgpack.Unmarshal(raw[:len(raw)-2], &value); err != nil {
		return Message{}, &MsgpackError{Err: err}
	}

	decoded, ok := value.([]any)
	if !ok {
		return Message{}, ErrNotArray
	}
	if len(decoded) == 0 {
		return Message{}, ErrNotArray
	}

	typ, ok := decoded[0].(string)
	if !ok {
		return Message{}, ErrNoType
	}

	return Message{Type: typ, Args: decoded[1:]}, nil
}
