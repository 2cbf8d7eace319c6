package binary

import (
	"encoding/binary"
)

// Writer appends module encodings in the form Cursor reads back.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteU32 writes v as unsigned LEB128, the inverse of Cursor.ReadU32.
func (w *Writer) WriteU32(v uint32) {
	w.buf = AppendU32(w.buf, v)
}

// WriteName writes a length-prefixed name. s is written as-is, valid UTF-8 or not.
func (w *Writer) WriteName(s string) {
	w.buf = AppendU32(w.buf, uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteU32LE writes the fixed-width fields of the module header.
func (w *Writer) WriteU32LE(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Section writes a section with the given id whose body is produced by body.
// The length prefix is computed after body returns.
func (w *Writer) Section(id byte, body func(*Writer)) {
	var sec Writer
	body(&sec)
	w.buf = append(w.buf, id)
	w.buf = AppendU32(w.buf, uint32(len(sec.buf)))
	w.buf = append(w.buf, sec.buf...)
}

// AppendU32 appends the shortest unsigned LEB128 encoding of v to dst.
func AppendU32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}
