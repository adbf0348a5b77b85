package record

import (
	"bytes"
	"fmt"
	"time"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
)

// payload reads the payload of h after checking its data type and length.
func payload(r *binary.Reader, h Header, dt DataType) ([]byte, error) {
	if h.Tag.DataType() != dt {
		return nil, fmt.Errorf("%w: %v carries %v, not %v", ErrMalformed, h.Tag, h.Tag.DataType(), dt)
	}
	if w := dt.Width(); w > 1 && h.Size%w != 0 {
		return nil, fmt.Errorf("%w: %v payload of %d bytes is not a multiple of %d", ErrMalformed, h.Tag, h.Size, w)
	}
	data, err := r.ReadBytes(h.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %v payload: %w", ErrMalformed, h.Tag, err)
	}
	return data, nil
}

// DecodeNoData consumes the (normally empty) payload of a no-data record.
func DecodeNoData(r *binary.Reader, h Header) error {
	if h.Tag.DataType() != DataNone {
		return fmt.Errorf("%w: %v is not a no-data record", ErrMalformed, h.Tag)
	}
	return Skip(r, h)
}

// DecodeBitArray decodes a 16-bit flag word.
func DecodeBitArray(r *binary.Reader, h Header) (uint16, error) {
	data, err := payload(r, h, DataBitArray)
	if err != nil {
		return 0, err
	}
	if len(data) != 2 {
		return 0, fmt.Errorf("%w: %v expects 2 bytes, got %d", ErrMalformed, h.Tag, len(data))
	}
	return r.ByteOrder().Uint16(data), nil
}

// DecodeInt16s decodes a list of signed 16-bit integers.
func DecodeInt16s(r *binary.Reader, h Header) ([]int16, error) {
	data, err := payload(r, h, DataInt16)
	if err != nil {
		return nil, err
	}
	order := r.ByteOrder()
	vals := make([]int16, len(data)/2)
	for i := range vals {
		vals[i] = int16(order.Uint16(data[2*i:]))
	}
	return vals, nil
}

// DecodeInt32s decodes a list of signed 32-bit integers.
func DecodeInt32s(r *binary.Reader, h Header) ([]int32, error) {
	data, err := payload(r, h, DataInt32)
	if err != nil {
		return nil, err
	}
	order := r.ByteOrder()
	vals := make([]int32, len(data)/4)
	for i := range vals {
		vals[i] = int32(order.Uint32(data[4*i:]))
	}
	return vals, nil
}

// DecodeReal8s decodes a list of excess-64 eight byte reals.
func DecodeReal8s(r *binary.Reader, h Header) ([]float64, error) {
	data, err := payload(r, h, DataReal8)
	if err != nil {
		return nil, err
	}
	order := r.ByteOrder()
	vals := make([]float64, len(data)/8)
	for i := range vals {
		vals[i] = DecodeReal8(order.Uint64(data[8*i:]))
	}
	return vals, nil
}

// DecodeASCII decodes a string, dropping the trailing NUL padding.
func DecodeASCII(r *binary.Reader, h Header) (string, error) {
	data, err := payload(r, h, DataASCII)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(data, "\x00")), nil
}

// DecodeTimes decodes one or more timestamps stored as six int16 values each.
func DecodeTimes(r *binary.Reader, h Header) ([]time.Time, error) {
	vals, err := DecodeInt16s(r, h)
	if err != nil {
		return nil, err
	}
	if len(vals)%6 != 0 {
		return nil, fmt.Errorf("%w: %v holds %d values, not a multiple of 6", ErrMalformed, h.Tag, len(vals))
	}
	times := make([]time.Time, len(vals)/6)
	for i := range times {
		times[i] = decodeTime(vals[6*i : 6*i+6])
	}
	return times, nil
}

func decodeTime(v []int16) time.Time {
	year := int(v[0])
	// Some writers store the year as an offset from 1900.
	if year < 1900 {
		year += 1900
	}
	return time.Date(year, time.Month(v[1]), int(v[2]), int(v[3]), int(v[4]), int(v[5]), 0, time.UTC)
}

// ReadBitArray reads a record that must carry tag and decodes its flag word.
func ReadBitArray(r *binary.Reader, tag Tag) (uint16, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return 0, err
	}
	return DecodeBitArray(r, h)
}

// ReadInt16s reads a record that must carry tag and decodes its int16 values.
func ReadInt16s(r *binary.Reader, tag Tag) ([]int16, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return nil, err
	}
	return DecodeInt16s(r, h)
}

// ReadInt32s reads a record that must carry tag and decodes its int32 values.
func ReadInt32s(r *binary.Reader, tag Tag) ([]int32, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return nil, err
	}
	return DecodeInt32s(r, h)
}

// ReadReal8s reads a record that must carry tag and decodes its reals.
func ReadReal8s(r *binary.Reader, tag Tag) ([]float64, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return nil, err
	}
	return DecodeReal8s(r, h)
}

// ReadASCII reads a record that must carry tag and decodes its string.
func ReadASCII(r *binary.Reader, tag Tag) (string, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return "", err
	}
	return DecodeASCII(r, h)
}

// ReadTimes reads a record that must carry tag and decodes its timestamps.
func ReadTimes(r *binary.Reader, tag Tag) ([]time.Time, error) {
	h, err := Expect(r, tag)
	if err != nil {
		return nil, err
	}
	return DecodeTimes(r, h)
}
