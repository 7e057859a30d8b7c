// Package wire implements the byte-oriented request/response protocol shared by
// the Soundcore Q30 device family: parser combinators (this file), structure
// codecs for domain value types, and packet codecs layered on top of both.
package wire

import (
	"encoding/binary"
	"errors"
)

// Parser decodes a T from the front of input, returning the unconsumed remainder.
// Parsers never allocate beyond the produced value and never consume input on failure.
type Parser[T any] func(input []byte) (rest []byte, value T, err error)

// Take consumes exactly n bytes.
func Take(n int) Parser[[]byte] {
	return func(input []byte) ([]byte, []byte, error) {
		if len(input) < n {
			return input, nil, newParseError(0, "need %d bytes, have %d", n, len(input))
		}
		return input[n:], input[:n], nil
	}
}

// TakeBool consumes one byte, true iff it is non-zero.
func TakeBool() Parser[bool] {
	return Map(Take(1), func(b []byte) bool { return b[0] != 0 })
}

// LEU8 consumes one byte as an unsigned integer.
func LEU8() Parser[uint8] {
	return Map(Take(1), func(b []byte) uint8 { return b[0] })
}

// LEU16 consumes two little-endian bytes as an unsigned integer.
func LEU16() Parser[uint16] {
	return Map(Take(2), func(b []byte) uint16 { return binary.LittleEndian.Uint16(b) })
}

// LEI16 consumes two little-endian bytes as a signed integer.
func LEI16() Parser[int16] {
	return Map(Take(2), func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) })
}

// Map transforms a successfully parsed value without affecting the remainder.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(input []byte) ([]byte, B, error) {
		rest, a, err := p(input)
		if err != nil {
			var zero B
			return input, zero, err
		}
		return rest, f(a), nil
	}
}

// Opt runs p; on failure it returns a nil value without consuming input instead
// of propagating the error.
func Opt[T any](p Parser[T]) Parser[*T] {
	return func(input []byte) ([]byte, *T, error) {
		rest, v, err := p(input)
		if err != nil {
			return input, nil, nil
		}
		return rest, &v, nil
	}
}

// AllConsuming fails if p leaves any trailing bytes unconsumed.
func AllConsuming[T any](p Parser[T]) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		rest, v, err := p(input)
		if err != nil {
			return input, v, err
		}
		if len(rest) != 0 {
			var zero T
			return input, zero, newParseError(len(input)-len(rest), "%d trailing bytes", len(rest))
		}
		return rest, v, nil
	}
}

// Context attaches a label to any ParseError produced by p, building up a stack
// of labels as nested contexts fail.
func Context[T any](name string, p Parser[T]) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		rest, v, err := p(input)
		if err == nil {
			return rest, v, nil
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Stack = append([]string{name}, pe.Stack...)
			return input, v, pe
		}
		return input, v, &ParseError{Stack: []string{name}, Msg: err.Error()}
	}
}

// Tuple2 runs two parsers in sequence and pairs their results.
func Tuple2[A, B any](pa Parser[A], pb Parser[B]) Parser[struct {
	A A
	B B
}] {
	type pair = struct {
		A A
		B B
	}
	return func(input []byte) ([]byte, pair, error) {
		rest, a, err := pa(input)
		if err != nil {
			var zero pair
			return input, zero, err
		}
		rest, b, err := pb(rest)
		if err != nil {
			var zero pair
			return input, zero, err
		}
		return rest, pair{A: a, B: b}, nil
	}
}

// Tuple3 runs three parsers in sequence and groups their results.
func Tuple3[A, B, C any](pa Parser[A], pb Parser[B], pc Parser[C]) Parser[struct {
	A A
	B B
	C C
}] {
	type triple = struct {
		A A
		B B
		C C
	}
	return func(input []byte) ([]byte, triple, error) {
		rest, a, err := pa(input)
		if err != nil {
			var zero triple
			return input, zero, err
		}
		rest, b, err := pb(rest)
		if err != nil {
			var zero triple
			return input, zero, err
		}
		rest, c, err := pc(rest)
		if err != nil {
			var zero triple
			return input, zero, err
		}
		return rest, triple{A: a, B: b, C: c}, nil
	}
}

// Cursor is a convenience wrapper over the primitives above for decoding the
// long, mostly-flat packet bodies in this package's codecs and profile/*.go without
// nesting Tuple combinators many levels deep. Every method delegates to the
// corresponding Parser and records the first failure; once an error has been
// recorded, further calls are no-ops so callers can decode a whole struct and
// check Err() once at the end.
type Cursor struct {
	input []byte
	err   error
}

// NewCursor wraps input for sequential decoding.
func NewCursor(input []byte) *Cursor {
	return &Cursor{input: input}
}

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error { return c.err }

// Remaining returns the bytes not yet consumed.
func (c *Cursor) Remaining() []byte { return c.input }

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int { return len(c.input) }

func (c *Cursor) run(label string, rest []byte, err error) []byte {
	if c.err != nil {
		return c.input
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Stack = append([]string{label}, pe.Stack...)
			c.err = pe
		} else {
			c.err = &ParseError{Stack: []string{label}, Msg: err.Error()}
		}
		return c.input
	}
	c.input = rest
	return rest
}

// Take consumes and returns n raw bytes.
func (c *Cursor) Take(n int) []byte {
	if c.err != nil {
		return nil
	}
	rest, v, err := Take(n)(c.input)
	c.run("take", rest, err)
	return v
}

// Bool consumes one boolean byte.
func (c *Cursor) Bool() bool {
	if c.err != nil {
		return false
	}
	rest, v, err := TakeBool()(c.input)
	c.run("bool", rest, err)
	return v
}

// U8 consumes one byte.
func (c *Cursor) U8() uint8 {
	if c.err != nil {
		return 0
	}
	rest, v, err := LEU8()(c.input)
	c.run("u8", rest, err)
	return v
}

// U16 consumes a little-endian uint16.
func (c *Cursor) U16() uint16 {
	if c.err != nil {
		return 0
	}
	rest, v, err := LEU16()(c.input)
	c.run("u16", rest, err)
	return v
}

// I16 consumes a little-endian int16.
func (c *Cursor) I16() int16 {
	if c.err != nil {
		return 0
	}
	rest, v, err := LEI16()(c.input)
	c.run("i16", rest, err)
	return v
}

// Skip discards n bytes without interpreting them.
func (c *Cursor) Skip(n int) {
	c.Take(n)
}

// U32LE consumes a little-endian uint32.
func (c *Cursor) U32LE() uint32 {
	if c.err != nil {
		return 0
	}
	b := c.Take(4)
	if c.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func putU32LE(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
