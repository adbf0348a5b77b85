package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterWriteUint16(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteUint16(0x0102); err != nil {
		t.Fatalf("WriteUint16 failed: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), []byte{0x01, 0x02}) {
		t.Errorf("expected [01 02], got %x", buf.Bytes())
	}
	if w.Written() != 2 {
		t.Errorf("expected 2 bytes written, got %d", w.Written())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.WriteUint16(0xCAFE)
	w.WriteBytes([]byte("AB"))
	w.WriteBytes(nil)
	if w.Written() != 4 {
		t.Errorf("expected 4 bytes written, got %d", w.Written())
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))

	v16, err := r.ReadUint16()
	if err != nil || v16 != 0xCAFE {
		t.Errorf("uint16: got 0x%x, %v", v16, err)
	}
	b, err := r.ReadBytes(2)
	if err != nil || string(b) != "AB" {
		t.Errorf("bytes: got %q, %v", b, err)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterPropagatesErrors(t *testing.T) {
	w := NewWriter(failingWriter{})
	if err := w.WriteUint16(1); err == nil {
		t.Error("expected error from failing writer")
	}
	if w.Written() != 0 {
		t.Errorf("expected 0 bytes counted, got %d", w.Written())
	}
}
