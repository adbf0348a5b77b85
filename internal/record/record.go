package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
)

// HeaderSize is the size of the length+tag prefix of every record.
const HeaderSize = 4

// MaxPayload is the largest payload a record can carry. The length field is
// a uint16 covering the header, and record lengths are always even.
const MaxPayload = 0xFFFE - HeaderSize

// Errors
var (
	ErrMalformed     = errors.New("malformed stream")
	ErrUnexpectedTag = errors.New("unexpected record")
	ErrTooLarge      = errors.New("record payload too large")
)

// Header is a decoded record header.
type Header struct {
	// Size is the payload length in bytes, excluding the four header bytes.
	Size int
	Tag  Tag
}

// ReadHeader decodes the record header at the current position.
//
// A stream that is exhausted exactly at a record boundary yields io.EOF
// unwrapped, so callers can tell a clean end from a truncated record.
func ReadHeader(r *binary.Reader) (Header, error) {
	length, err := r.ReadUint16()
	if err != nil {
		if err == io.EOF {
			return Header{}, io.EOF
		}
		return Header{}, fmt.Errorf("%w: reading record length: %w", ErrMalformed, err)
	}
	tag, err := r.ReadUint16()
	if err != nil {
		return Header{}, fmt.Errorf("%w: truncated record header: %w", ErrMalformed, err)
	}
	if length < HeaderSize || length%2 != 0 {
		return Header{}, fmt.Errorf("%w: invalid length %d for %v", ErrMalformed, length, Tag(tag))
	}
	return Header{Size: int(length) - HeaderSize, Tag: Tag(tag)}, nil
}

// ReadHeaderStrict is ReadHeader with io.EOF reported as ErrMalformed.
// Use it wherever the grammar requires another record.
func ReadHeaderStrict(r *binary.Reader) (Header, error) {
	h, err := ReadHeader(r)
	if err == io.EOF {
		return Header{}, fmt.Errorf("%w: stream ended before end of library", ErrMalformed)
	}
	return h, err
}

// Skip advances past the payload of h.
func Skip(r *binary.Reader, h Header) error {
	if err := r.Skip(int64(h.Size)); err != nil {
		return fmt.Errorf("%w: skipping %v: %w", ErrMalformed, h.Tag, err)
	}
	return nil
}

// Expect reads the next record header and checks that it carries tag.
func Expect(r *binary.Reader, tag Tag) (Header, error) {
	h, err := ReadHeaderStrict(r)
	if err != nil {
		return Header{}, err
	}
	if h.Tag != tag {
		return Header{}, fmt.Errorf("%w: %w: expected %v, found %v", ErrMalformed, ErrUnexpectedTag, tag, h.Tag)
	}
	return h, nil
}

// SkipTo skips records until one carrying tag is found and returns its
// header with the payload unread. It returns false if ENDLIB or a clean end
// of stream is reached first; the ENDLIB record is consumed.
func SkipTo(r *binary.Reader, tag Tag) (Header, bool, error) {
	for {
		h, err := ReadHeader(r)
		if err == io.EOF {
			return Header{}, false, nil
		}
		if err != nil {
			return Header{}, false, err
		}
		if h.Tag == tag {
			return h, true, nil
		}
		if err := Skip(r, h); err != nil {
			return Header{}, false, err
		}
		if h.Tag == ENDLIB {
			return Header{}, false, nil
		}
	}
}

// SkipAndRead skips uninteresting records until one carrying tag is found and
// returns its header, leaving the payload unread. Reaching ENDLIB or the end
// of the stream first is an error.
func SkipAndRead(r *binary.Reader, tag Tag) (Header, error) {
	for {
		h, err := ReadHeaderStrict(r)
		if err != nil {
			return Header{}, err
		}
		if h.Tag == tag {
			return h, nil
		}
		if h.Tag == ENDLIB {
			return Header{}, fmt.Errorf("%w: %v not found before ENDLIB", ErrMalformed, tag)
		}
		if err := Skip(r, h); err != nil {
			return Header{}, err
		}
	}
}
