package gdsii

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gdsii/internal/binary"
	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// stream builds a record stream by hand, including sequences that the
// package writers would never produce.
type stream struct {
	t   *testing.T
	buf bytes.Buffer
	w   *binary.Writer
}

func newStream(t *testing.T) *stream {
	t.Helper()
	s := &stream{t: t}
	s.w = binary.NewWriter(&s.buf)
	return s
}

func (s *stream) noData(tag record.Tag) *stream {
	s.t.Helper()
	_, err := record.WriteNoData(s.w, tag)
	require.NoError(s.t, err)
	return s
}

func (s *stream) bitArray(tag record.Tag, v uint16) *stream {
	s.t.Helper()
	_, err := record.WriteBitArray(s.w, tag, v)
	require.NoError(s.t, err)
	return s
}

func (s *stream) int16s(tag record.Tag, vals ...int16) *stream {
	s.t.Helper()
	_, err := record.WriteInt16s(s.w, tag, vals...)
	require.NoError(s.t, err)
	return s
}

func (s *stream) int32s(tag record.Tag, vals ...int32) *stream {
	s.t.Helper()
	_, err := record.WriteInt32s(s.w, tag, vals...)
	require.NoError(s.t, err)
	return s
}

func (s *stream) ascii(tag record.Tag, v string) *stream {
	s.t.Helper()
	_, err := record.WriteASCII(s.w, tag, v)
	require.NoError(s.t, err)
	return s
}

func (s *stream) real8s(tag record.Tag, vals ...float64) *stream {
	s.t.Helper()
	_, err := record.WriteReal8s(s.w, tag, vals...)
	require.NoError(s.t, err)
	return s
}

func (s *stream) times(tag record.Tag, ts ...time.Time) *stream {
	s.t.Helper()
	_, err := record.WriteTimes(s.w, tag, ts...)
	require.NoError(s.t, err)
	return s
}

// raw appends bytes as given, for records whose framing lies.
func (s *stream) raw(b ...byte) *stream {
	s.buf.Write(b)
	return s
}

// header writes a valid library prologue named LIB.
func (s *stream) header() *stream {
	s.t.Helper()
	_, err := NewFileHeader("LIB", 0.001, 1e-9).Write(&s.buf)
	require.NoError(s.t, err)
	return s
}

// begin opens a structure.
func (s *stream) begin(name string) *stream {
	return s.times(record.BGNSTR, DefaultTime, DefaultTime).ascii(record.STRNAME, name)
}

func (s *stream) end() *stream {
	return s.noData(record.ENDSTR)
}

func (s *stream) sref(name string) *stream {
	return s.noData(record.SREF).
		ascii(record.SNAME, name).
		int32s(record.XY, 0, 0).
		noData(record.ENDEL)
}

func (s *stream) aref(name string, cols, rows int16) *stream {
	return s.noData(record.AREF).
		ascii(record.SNAME, name).
		int16s(record.COLROW, cols, rows).
		int32s(record.XY, 0, 0, 100*int32(cols), 0, 0, 100*int32(rows)).
		noData(record.ENDEL)
}

func (s *stream) boundary() *stream {
	return s.noData(record.BOUNDARY).
		int16s(record.LAYER, 1).
		int16s(record.DATATYPE, 0).
		int32s(record.XY, 0, 0, 10, 0, 10, 10, 0, 0).
		noData(record.ENDEL)
}

func (s *stream) endLib() *stream {
	return s.noData(record.ENDLIB)
}

func (s *stream) reader() *bytes.Reader {
	return bytes.NewReader(s.buf.Bytes())
}

func (s *stream) bytes() []byte {
	return s.buf.Bytes()
}

func square(x, y, size int32) []Point {
	return []Point{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}
}
