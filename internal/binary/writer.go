package binary

import (
	"encoding/binary"
	"io"
)

// Writer writes big-endian values to a stream and counts the bytes written.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	n     int64
	buf   [2]byte
}

// NewWriter creates a writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		order: binary.BigEndian,
	}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.n
}

// WriteBytes writes the given bytes.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.n += int64(n)
	return err
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	w.order.PutUint16(w.buf[:2], v)
	return w.WriteBytes(w.buf[:2])
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}
