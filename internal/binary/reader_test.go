package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadUint16(t *testing.T) {
	// Big-endian: 0x0102 stored as [0x01, 0x02]
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0xFF, 0xFF}))

	v, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}

	v, err = r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0xFFFF {
		t.Errorf("expected 0xFFFF, got 0x%04x", v)
	}
}

func TestReaderEOF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.EOF},
		{"partial", []byte{0x01}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.data))
			_, err := r.ReadUint16()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xAA, 0xBB, 0xCC}))

	b, err := r.ReadBytes(0)
	if err != nil || b != nil {
		t.Errorf("ReadBytes(0) = %x, %v", b, err)
	}

	b, err = r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0xAA, 0xBB}) {
		t.Errorf("unexpected bytes: %x", b)
	}

	if _, err := r.ReadBytes(2); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderSkipAndPos(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(bytes.NewReader(data))

	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	pos, err := r.Pos()
	if err != nil {
		t.Fatalf("Pos failed: %v", err)
	}
	if pos != 3 {
		t.Errorf("expected pos 3, got %d", pos)
	}

	v, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0304 {
		t.Errorf("expected 0x0304, got 0x%04x", v)
	}

	if err := r.Seek(1); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	v, err = r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102 after Seek, got 0x%04x", v)
	}
}

func TestReaderLeavesCursorExact(t *testing.T) {
	// The caller's stream must see exactly the bytes consumed.
	src := bytes.NewReader([]byte{0x00, 0x04, 0x04, 0x00, 0x99})
	r := NewReader(src)

	if _, err := r.ReadUint16(); err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if _, err := r.ReadBytes(2); err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if src.Len() != 1 {
		t.Errorf("expected 1 byte left in source, got %d", src.Len())
	}
}

func TestReaderSkipPastEnd(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03}))

	if err := r.Skip(4); err != nil {
		t.Fatalf("Skip to end failed: %v", err)
	}
	if err := r.Seek(1); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if err := r.Skip(10); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
