package record

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
)

// WriteHeader writes a record header for a payload of size bytes.
func WriteHeader(w *binary.Writer, tag Tag, size int) error {
	if size > MaxPayload {
		return fmt.Errorf("%w: %v payload of %d bytes", ErrTooLarge, tag, size)
	}
	if err := w.WriteUint16(uint16(size + HeaderSize)); err != nil {
		return err
	}
	return w.WriteUint16(uint16(tag))
}

// write emits a full record and returns the number of bytes written.
func write(w *binary.Writer, tag Tag, data []byte) (int64, error) {
	start := w.Written()
	if err := WriteHeader(w, tag, len(data)); err != nil {
		return w.Written() - start, err
	}
	err := w.WriteBytes(data)
	return w.Written() - start, err
}

// WriteNoData writes a record without payload (ENDLIB, ENDEL, BOUNDARY, ...).
func WriteNoData(w *binary.Writer, tag Tag) (int64, error) {
	return write(w, tag, nil)
}

// WriteBitArray writes a 16-bit flag word.
func WriteBitArray(w *binary.Writer, tag Tag, v uint16) (int64, error) {
	data := make([]byte, 2)
	w.ByteOrder().PutUint16(data, v)
	return write(w, tag, data)
}

// WriteInt16s writes a list of signed 16-bit integers.
func WriteInt16s(w *binary.Writer, tag Tag, vals ...int16) (int64, error) {
	order := w.ByteOrder()
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		order.PutUint16(data[2*i:], uint16(v))
	}
	return write(w, tag, data)
}

// WriteInt32s writes a list of signed 32-bit integers.
func WriteInt32s(w *binary.Writer, tag Tag, vals ...int32) (int64, error) {
	order := w.ByteOrder()
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		order.PutUint32(data[4*i:], uint32(v))
	}
	return write(w, tag, data)
}

// WriteReal8s writes a list of reals in excess-64 format.
func WriteReal8s(w *binary.Writer, tag Tag, vals ...float64) (int64, error) {
	order := w.ByteOrder()
	data := make([]byte, 8*len(vals))
	for i, v := range vals {
		bits, err := EncodeReal8(v)
		if err != nil {
			return 0, fmt.Errorf("encoding %v: %w", tag, err)
		}
		order.PutUint64(data[8*i:], bits)
	}
	return write(w, tag, data)
}

// WriteASCII writes a string, NUL-padded to an even length.
func WriteASCII(w *binary.Writer, tag Tag, s string) (int64, error) {
	data := []byte(s)
	if len(data)%2 != 0 {
		data = append(data, 0)
	}
	return write(w, tag, data)
}

// WriteTimes writes timestamps as six int16 values each. Times are written
// in UTC with a full four digit year.
func WriteTimes(w *binary.Writer, tag Tag, times ...time.Time) (int64, error) {
	vals := make([]int16, 0, 6*len(times))
	for _, t := range times {
		t = t.UTC()
		vals = append(vals,
			int16(t.Year()), int16(t.Month()), int16(t.Day()),
			int16(t.Hour()), int16(t.Minute()), int16(t.Second()))
	}
	return WriteInt16s(w, tag, vals...)
}
