// Package binary provides low-level binary I/O operations for GDSII stream parsing.
package binary

import (
	"encoding/binary"
	"io"
)

// Reader reads big-endian values directly from a seekable stream.
//
// Reader does no read-ahead: after every call the underlying
// stream's cursor sits exactly past the bytes that were consumed, so callers
// may interleave their own Seek calls with Reader methods.
type Reader struct {
	r     io.ReadSeeker
	order binary.ByteOrder
	buf   [2]byte
}

// NewReader creates a reader over r. GDSII is always big-endian.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{
		r:     r,
		order: binary.BigEndian,
	}
}

// Pos returns the current position of the underlying stream.
func (r *Reader) Pos() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// Seek moves the underlying stream to an absolute offset.
func (r *Reader) Seek(offset int64) error {
	_, err := r.r.Seek(offset, io.SeekStart)
	return err
}

// ReadBytes reads exactly n bytes from the current position.
// A stream that ends partway through yields io.ErrUnexpectedEOF;
// a stream that is already exhausted yields io.EOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) fill(n int) ([]byte, error) {
	b := r.buf[:n]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// Skip advances the position by n bytes. The bytes must exist: a stream
// that ends inside the skipped range yields io.ErrUnexpectedEOF, and the
// position is then the end of the stream.
func (r *Reader) Skip(n int64) error {
	if n <= 0 {
		return nil
	}
	pos, err := r.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	end, err := r.r.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if end-pos < n {
		return io.ErrUnexpectedEOF
	}
	_, err = r.r.Seek(pos+n, io.SeekStart)
	return err
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
