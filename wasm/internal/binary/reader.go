package binary

import (
	"errors"
	"strings"
)

// Errors returned by Cursor reads. Callers attach position and section context.
var (
	ErrOverflow      = errors.New("leb128: overflow")
	ErrUnexpectedEOF = errors.New("unexpected end of buffer")
)

// maxU32Bytes is the longest valid unsigned LEB128 encoding of a uint32.
const maxU32Bytes = 5

// Cursor reads WASM primitives from an immutable byte slice at an explicit position.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a Cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Position returns the current byte position.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek moves the cursor to an absolute position.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return ErrUnexpectedEOF
	}
	c.pos = pos
	return nil
}

// Advance returns the next n bytes without copying.
func (c *Cursor) Advance(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadByte reads a single byte and advances the position.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrUnexpectedEOF
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadU32 reads an unsigned LEB128 encoded uint32.
// Encodings longer than five bytes, or whose fifth byte carries bits above 32, fail with ErrOverflow.
func (c *Cursor) ReadU32() (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < maxU32Bytes; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == maxU32Bytes-1 && b&0x70 != 0 {
			return 0, ErrOverflow
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, ErrOverflow
}

// ReadName reads a length-prefixed name. Invalid UTF-8 is replaced with U+FFFD.
func (c *Cursor) ReadName() (string, error) {
	length, err := c.ReadU32()
	if err != nil {
		return "", err
	}
	data, err := c.Advance(int(length))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
